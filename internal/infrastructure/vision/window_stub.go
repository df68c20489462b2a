//go:build !gocv
// +build !gocv

package vision

import (
	"errors"

	"frame-classifier/internal/domain/entity"
)

type WindowRenderer struct{}

// NewWindowRenderer создаёт заглушку (без OpenCV).
func NewWindowRenderer(title string) *WindowRenderer {
	return &WindowRenderer{}
}

func (r *WindowRenderer) Render(frame *entity.Frame, prediction *entity.Prediction) error {
	return errors.New("gocv build tag is not enabled")
}

func (r *WindowRenderer) Close() error { return nil }
