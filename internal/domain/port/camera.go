package port

import (
	"context"
	"errors"

	"frame-classifier/internal/domain/entity"
)

// ErrSourceClosed источник кадров исчерпан или закрыт
var ErrSourceClosed = errors.New("frame source closed")

// FrameSource интерфейс источника кадров (камера)
type FrameSource interface {
	// Read блокируется до следующего кадра
	Read(ctx context.Context) (entity.Frame, error)

	// Close освобождает устройство
	Close() error
}
