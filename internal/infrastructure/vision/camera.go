//go:build gocv
// +build gocv

package vision

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gocv.io/x/gocv"

	"frame-classifier/internal/domain/entity"
	"frame-classifier/internal/domain/port"
)

// Camera источник кадров на gocv.VideoCapture
type Camera struct {
	capture  *gocv.VideoCapture
	mat      gocv.Mat
	rotation int
	seq      uint64
}

// OpenCamera открывает устройство по индексу ("0") или адресу потока.
// Отказ в доступе к камере проявляется здесь как ошибка открытия.
func OpenCamera(device string, width, height, rotation int) (*Camera, error) {
	var source interface{} = device
	if id, err := strconv.Atoi(device); err == nil {
		source = id
	}

	capture, err := gocv.OpenVideoCapture(source)
	if err != nil {
		return nil, fmt.Errorf("open camera %s: %w", device, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, fmt.Errorf("open camera %s: device is not available", device)
	}

	if width > 0 {
		capture.Set(gocv.VideoCaptureFrameWidth, float64(width))
	}
	if height > 0 {
		capture.Set(gocv.VideoCaptureFrameHeight, float64(height))
	}

	return &Camera{
		capture:  capture,
		mat:      gocv.NewMat(),
		rotation: rotation,
	}, nil
}

// Read читает следующий кадр. Чтение не прерывается контекстом посреди кадра.
func (c *Camera) Read(ctx context.Context) (entity.Frame, error) {
	if err := ctx.Err(); err != nil {
		return entity.Frame{}, err
	}

	if ok := c.capture.Read(&c.mat); !ok {
		return entity.Frame{}, port.ErrSourceClosed
	}
	if c.mat.Empty() {
		return entity.Frame{}, errors.New("empty frame")
	}

	img, err := c.mat.ToImage()
	if err != nil {
		return entity.Frame{}, fmt.Errorf("convert frame: %w", err)
	}

	c.seq++
	return entity.Frame{
		Seq:        c.seq,
		CapturedAt: time.Now(),
		Rotation:   c.rotation,
		Image:      img,
	}, nil
}

func (c *Camera) Close() error {
	c.mat.Close()
	return c.capture.Close()
}

var _ port.FrameSource = (*Camera)(nil)
