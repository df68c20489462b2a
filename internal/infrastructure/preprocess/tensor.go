package preprocess

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	"github.com/nfnt/resize"

	"frame-classifier/internal/domain/entity"
	"frame-classifier/internal/domain/port"
)

// Нормализация torchvision (RGB)
var (
	TorchvisionMean = [3]float32{0.485, 0.456, 0.406}
	TorchvisionStd  = [3]float32{0.229, 0.224, 0.225}
)

// Converter готовит кадр для модели: поворот, центральный квадратный кроп,
// масштабирование до Size×Size и нормализация по каналам в NCHW.
type Converter struct {
	Size int
	Mean [3]float32
	Std  [3]float32
}

// NewConverter создаёт конвертер с нормализацией torchvision
func NewConverter(size int) *Converter {
	return &Converter{
		Size: size,
		Mean: TorchvisionMean,
		Std:  TorchvisionStd,
	}
}

// Tensor реализует port.Preprocessor
func (c *Converter) Tensor(frame entity.Frame) (entity.Tensor, error) {
	if frame.Image == nil {
		return entity.Tensor{}, errors.New("frame has no image")
	}
	if frame.Image.Bounds().Empty() {
		return entity.Tensor{}, errors.New("frame image is empty")
	}
	if c.Size <= 0 {
		return entity.Tensor{}, fmt.Errorf("invalid tensor size %d", c.Size)
	}

	img, err := rotate(frame.Image, frame.Rotation)
	if err != nil {
		return entity.Tensor{}, err
	}

	img = centerCrop(img)
	img = resize.Resize(uint(c.Size), uint(c.Size), img, resize.Bilinear)

	// Приводим к RGBA, чтобы читать пиксели напрямую, без интерфейсных вызовов
	rgba := image.NewRGBA(image.Rect(0, 0, c.Size, c.Size))
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)

	t := entity.NewTensor(c.Size)
	plane := c.Size * c.Size
	for y := 0; y < c.Size; y++ {
		for x := 0; x < c.Size; x++ {
			off := rgba.PixOffset(x, y)
			i := y*c.Size + x
			for ch := 0; ch < 3; ch++ {
				v := float32(rgba.Pix[off+ch]) / 255
				t.Data[ch*plane+i] = (v - c.Mean[ch]) / c.Std[ch]
			}
		}
	}

	return t, nil
}

// centerCrop вырезает квадрат по короткой стороне из центра
func centerCrop(img image.Image) image.Image {
	b := img.Bounds()
	side := minInt(b.Dx(), b.Dy())
	x0 := b.Min.X + (b.Dx()-side)/2
	y0 := b.Min.Y + (b.Dy()-side)/2

	// Копируем в новое изображение с началом в (0,0): resize ожидает такие границы
	dst := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(dst, dst.Bounds(), img, image.Pt(x0, y0), draw.Src)
	return dst
}

// rotate поворачивает изображение по часовой стрелке на degrees
func rotate(img image.Image, degrees int) (image.Image, error) {
	degrees = ((degrees % 360) + 360) % 360
	if degrees%90 != 0 {
		return nil, fmt.Errorf("rotation must be a multiple of 90, got %d", degrees)
	}
	if degrees == 0 {
		return img, nil
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	var dst *image.RGBA
	if degrees == 180 {
		dst = image.NewRGBA(image.Rect(0, 0, w, h))
	} else {
		dst = image.NewRGBA(image.Rect(0, 0, h, w))
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := img.At(b.Min.X+x, b.Min.Y+y)
			switch degrees {
			case 90:
				dst.Set(h-1-y, x, c)
			case 180:
				dst.Set(w-1-x, h-1-y, c)
			case 270:
				dst.Set(y, w-1-x, c)
			}
		}
	}

	return dst, nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

var _ port.Preprocessor = (*Converter)(nil)
