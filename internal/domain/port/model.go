package port

import (
	"context"

	"frame-classifier/internal/domain/entity"
)

// Preprocessor превращает кадр в нормализованный тензор
type Preprocessor interface {
	Tensor(frame entity.Frame) (entity.Tensor, error)
}

// Model предобученная модель классификации
type Model interface {
	// Forward выполняет один прямой проход и возвращает оценки классов
	Forward(ctx context.Context, input entity.Tensor) ([]float32, error)

	// OutputSize размерность выхода, 0 если неизвестна до первого прохода
	OutputSize() int

	Close() error
}
