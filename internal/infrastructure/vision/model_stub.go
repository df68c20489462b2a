//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"errors"

	"frame-classifier/internal/domain/entity"
)

type BlobPreprocessor struct {
	Size int
}

// NewBlobPreprocessor создаёт заглушку (без OpenCV).
func NewBlobPreprocessor(size int) *BlobPreprocessor {
	return &BlobPreprocessor{Size: size}
}

func (p *BlobPreprocessor) Tensor(frame entity.Frame) (entity.Tensor, error) {
	return entity.Tensor{}, errors.New("gocv build tag is not enabled")
}

type NetModel struct{}

// LoadNetModel возвращает ошибку, если сборка без тега gocv.
func LoadNetModel(path string, size int) (*NetModel, error) {
	return nil, errors.New("gocv build tag is not enabled")
}

func (m *NetModel) Forward(ctx context.Context, input entity.Tensor) ([]float32, error) {
	return nil, errors.New("gocv build tag is not enabled")
}

func (m *NetModel) OutputSize() int { return 0 }

func (m *NetModel) Close() error { return nil }
