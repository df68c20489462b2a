//go:build gocv
// +build gocv

package vision

import (
	"context"
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"frame-classifier/internal/domain/entity"
	"frame-classifier/internal/domain/port"
)

// Нормализация torchvision (RGB)
var (
	mean = [3]float64{0.485, 0.456, 0.406}
	std  = [3]float32{0.229, 0.224, 0.225}
)

// BlobPreprocessor готовит тензор через gocv.BlobFromImage:
// масштаб до Size, центральный кроп, RGB, вычитание среднего, деление на std.
type BlobPreprocessor struct {
	Size int
}

func NewBlobPreprocessor(size int) *BlobPreprocessor {
	return &BlobPreprocessor{Size: size}
}

func (p *BlobPreprocessor) Tensor(frame entity.Frame) (entity.Tensor, error) {
	if frame.Image == nil {
		return entity.Tensor{}, errors.New("frame has no image")
	}
	if frame.Image.Bounds().Empty() {
		return entity.Tensor{}, errors.New("frame image is empty")
	}

	mat, err := gocv.ImageToMatRGB(frame.Image)
	if err != nil {
		return entity.Tensor{}, fmt.Errorf("image to mat: %w", err)
	}
	defer mat.Close()

	if err := rotateMat(&mat, frame.Rotation); err != nil {
		return entity.Tensor{}, err
	}

	// BlobFromImage считает (img - mean) * scale, mean задаётся в порядке RGB при swapRB
	blob := gocv.BlobFromImage(mat, 1.0/255.0, image.Pt(p.Size, p.Size),
		gocv.NewScalar(mean[0]*255, mean[1]*255, mean[2]*255, 0), true, true)
	defer blob.Close()

	data, err := blob.DataPtrFloat32()
	if err != nil {
		return entity.Tensor{}, fmt.Errorf("blob data: %w", err)
	}

	t := entity.NewTensor(p.Size)
	if len(data) != len(t.Data) {
		return entity.Tensor{}, fmt.Errorf("unexpected blob size %d, want %d", len(data), len(t.Data))
	}
	plane := p.Size * p.Size
	for ch := 0; ch < 3; ch++ {
		for i := 0; i < plane; i++ {
			t.Data[ch*plane+i] = data[ch*plane+i] / std[ch]
		}
	}

	return t, nil
}

func rotateMat(mat *gocv.Mat, degrees int) error {
	degrees = ((degrees % 360) + 360) % 360
	var code gocv.RotateFlag
	switch degrees {
	case 0:
		return nil
	case 90:
		code = gocv.Rotate90Clockwise
	case 180:
		code = gocv.Rotate180Clockwise
	case 270:
		code = gocv.Rotate90CounterClockwise
	default:
		return fmt.Errorf("rotation must be a multiple of 90, got %d", degrees)
	}

	rotated := gocv.NewMat()
	gocv.Rotate(*mat, &rotated, code)
	mat.Close()
	*mat = rotated
	return nil
}

// NetModel модель, загруженная через OpenCV DNN (ONNX, Caffe, TensorFlow)
type NetModel struct {
	net    gocv.Net
	size   int
	output int
}

// LoadNetModel читает модель из локального файла
func LoadNetModel(path string, size int) (*NetModel, error) {
	net := gocv.ReadNet(path, "")
	if net.Empty() {
		return nil, fmt.Errorf("load model %s: empty network", path)
	}

	return &NetModel{net: net, size: size}, nil
}

// Forward выполняет прямой проход. Не потокобезопасен.
func (m *NetModel) Forward(ctx context.Context, input entity.Tensor) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sizes := make([]int, len(input.Shape))
	for i, d := range input.Shape {
		sizes[i] = int(d)
	}
	blob := gocv.NewMatWithSizes(sizes, gocv.MatTypeCV32F)
	defer blob.Close()

	dst, err := blob.DataPtrFloat32()
	if err != nil {
		return nil, fmt.Errorf("input blob: %w", err)
	}
	if len(dst) != len(input.Data) {
		return nil, fmt.Errorf("input size %d does not match shape %v", len(input.Data), input.Shape)
	}
	copy(dst, input.Data)

	m.net.SetInput(blob, "")
	out := m.net.Forward("")
	defer out.Close()

	scores, err := out.DataPtrFloat32()
	if err != nil {
		return nil, fmt.Errorf("read output: %w", err)
	}

	// данные Mat живут до out.Close, поэтому копируем
	result := make([]float32, len(scores))
	copy(result, scores)
	m.output = len(result)

	return result, nil
}

// OutputSize известна только после первого прохода
func (m *NetModel) OutputSize() int {
	return m.output
}

func (m *NetModel) Close() error {
	return m.net.Close()
}

var (
	_ port.Preprocessor = (*BlobPreprocessor)(nil)
	_ port.Model        = (*NetModel)(nil)
)
