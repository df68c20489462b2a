//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"errors"

	"frame-classifier/internal/domain/entity"
)

type Camera struct{}

// OpenCamera возвращает ошибку, если сборка без тега gocv.
func OpenCamera(device string, width, height, rotation int) (*Camera, error) {
	return nil, errors.New("gocv build tag is not enabled")
}

func (c *Camera) Read(ctx context.Context) (entity.Frame, error) {
	return entity.Frame{}, errors.New("gocv build tag is not enabled")
}

func (c *Camera) Close() error { return nil }
