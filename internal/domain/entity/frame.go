package entity

import (
	"image"
	"time"
)

// Frame кадр с камеры (или загруженное фото), поступающий на анализ
type Frame struct {
	Seq        uint64      // порядковый номер кадра в сессии
	CapturedAt time.Time   // момент захвата
	Rotation   int         // поворот в градусах, кратен 90
	Image      image.Image // пиксели кадра
}

// Tensor входной тензор модели в раскладке NCHW
type Tensor struct {
	Shape []int64
	Data  []float32
}

// NewTensor выделяет тензор [1, 3, size, size]
func NewTensor(size int) Tensor {
	return Tensor{
		Shape: []int64{1, 3, int64(size), int64(size)},
		Data:  make([]float32, 3*size*size),
	}
}

// Len возвращает число элементов по форме тензора
func (t Tensor) Len() int {
	if len(t.Shape) == 0 {
		return 0
	}
	n := 1
	for _, d := range t.Shape {
		n *= int(d)
	}
	return n
}
