package onnx

import (
	"context"
	"fmt"

	ort "github.com/yalue/onnxruntime_go"

	"frame-classifier/internal/domain/entity"
	"frame-classifier/internal/domain/port"
)

// Options параметры сессии onnxruntime
type Options struct {
	LibraryPath string // путь к libonnxruntime; пусто, если библиотека в стандартном месте
	InputName   string
	OutputName  string
	InputSize   int // сторона квадратного входа
	NumClasses  int // размер выхода
}

// Session модель на onnxruntime с заранее выделенными тензорами
type Session struct {
	session      *ort.AdvancedSession
	inputTensor  *ort.Tensor[float32]
	outputTensor *ort.Tensor[float32]
	numClasses   int
}

// NewSession загружает модель. Входная форма [1,3,S,S], выходная [1,N].
func NewSession(modelPath string, opts Options) (*Session, error) {
	if opts.NumClasses <= 0 {
		return nil, fmt.Errorf("invalid number of classes %d", opts.NumClasses)
	}

	if opts.LibraryPath != "" {
		ort.SetSharedLibraryPath(opts.LibraryPath)
	}
	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("failed to initialize ONNX environment: %w", err)
	}

	size := int64(opts.InputSize)
	inputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(1, 3, size, size))
	if err != nil {
		ort.DestroyEnvironment()
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}

	outputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(opts.NumClasses)))
	if err != nil {
		inputTensor.Destroy()
		ort.DestroyEnvironment()
		return nil, fmt.Errorf("failed to create output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(modelPath,
		[]string{opts.InputName}, []string{opts.OutputName},
		[]ort.ArbitraryTensor{inputTensor}, []ort.ArbitraryTensor{outputTensor},
		nil)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		ort.DestroyEnvironment()
		return nil, fmt.Errorf("failed to create ONNX session: %w", err)
	}

	return &Session{
		session:      session,
		inputTensor:  inputTensor,
		outputTensor: outputTensor,
		numClasses:   opts.NumClasses,
	}, nil
}

// Forward копирует вход, запускает сессию и возвращает копию выхода
func (s *Session) Forward(ctx context.Context, input entity.Tensor) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dst := s.inputTensor.GetData()
	if len(input.Data) != len(dst) {
		return nil, fmt.Errorf("input size %d, model expects %d", len(input.Data), len(dst))
	}
	copy(dst, input.Data)

	if err := s.session.Run(); err != nil {
		return nil, fmt.Errorf("inference failed: %w", err)
	}

	out := s.outputTensor.GetData()
	scores := make([]float32, len(out))
	copy(scores, out)
	return scores, nil
}

func (s *Session) OutputSize() int {
	return s.numClasses
}

func (s *Session) Close() error {
	if s.inputTensor != nil {
		s.inputTensor.Destroy()
	}
	if s.outputTensor != nil {
		s.outputTensor.Destroy()
	}
	if s.session != nil {
		s.session.Destroy()
	}
	return ort.DestroyEnvironment()
}

var _ port.Model = (*Session)(nil)
