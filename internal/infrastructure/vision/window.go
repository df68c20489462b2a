//go:build gocv
// +build gocv

package vision

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"frame-classifier/internal/domain/entity"
	"frame-classifier/internal/ui"
)

const (
	keyEsc = 27
	keyQ   = 'q'
)

// WindowRenderer окно предпросмотра с подписью класса.
// Создавать и использовать только в главной горутине.
type WindowRenderer struct {
	window *gocv.Window
	canvas gocv.Mat
}

func NewWindowRenderer(title string) *WindowRenderer {
	return &WindowRenderer{
		window: gocv.NewWindow(title),
		canvas: gocv.NewMat(),
	}
}

func (r *WindowRenderer) Render(frame *entity.Frame, prediction *entity.Prediction) error {
	if frame != nil && frame.Image != nil {
		mat, err := gocv.ImageToMatRGB(frame.Image)
		if err != nil {
			return fmt.Errorf("image to mat: %w", err)
		}
		r.canvas.Close()
		r.canvas = mat
	}
	if r.canvas.Empty() {
		return r.poll()
	}

	view := r.canvas.Clone()
	defer view.Close()

	if prediction != nil {
		green := color.RGBA{G: 255, A: 255}
		for i, line := range ui.Caption(*prediction) {
			gocv.PutText(&view, line, image.Pt(10, 30+i*30), gocv.FontHersheySimplex, 0.8, green, 2)
		}
	}

	r.window.IMShow(view)
	return r.poll()
}

func (r *WindowRenderer) poll() error {
	switch r.window.WaitKey(1) {
	case keyEsc, keyQ:
		return ui.ErrClosed
	}
	if !r.window.IsOpen() {
		return ui.ErrClosed
	}
	return nil
}

func (r *WindowRenderer) Close() error {
	r.canvas.Close()
	return r.window.Close()
}

var _ ui.Renderer = (*WindowRenderer)(nil)
