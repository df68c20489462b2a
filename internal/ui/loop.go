package ui

import (
	"context"
	"errors"
	"time"

	"frame-classifier/internal/domain/entity"
	"frame-classifier/internal/domain/port"
	"frame-classifier/internal/mailbox"
)

// ErrClosed пользователь закрыл окно
var ErrClosed = errors.New("display closed")

// Renderer рисует кадр с подписью. Вызывается только из Loop.Run.
type Renderer interface {
	Render(frame *entity.Frame, prediction *entity.Prediction) error
	Close() error
}

// Loop очередь UI-обновлений. Preview и Post можно вызывать из любых горутин,
// отрисовка идёт только в той горутине, где запущен Run (главной).
type Loop struct {
	renderer Renderer
	interval time.Duration

	frames      *mailbox.Latest[entity.Frame]
	predictions *mailbox.Latest[entity.Prediction]
}

// NewLoop создаёт цикл отрисовки; interval ограничивает частоту кадров
func NewLoop(renderer Renderer, interval time.Duration) *Loop {
	if interval <= 0 {
		interval = 33 * time.Millisecond
	}
	return &Loop{
		renderer:    renderer,
		interval:    interval,
		frames:      mailbox.NewLatest[entity.Frame](),
		predictions: mailbox.NewLatest[entity.Prediction](),
	}
}

func (l *Loop) Preview(frame entity.Frame) {
	l.frames.Put(frame)
}

func (l *Loop) Post(prediction entity.Prediction) {
	l.predictions.Put(prediction)
}

// Run рисует до отмены ctx или закрытия окна. nil, если окно закрыто пользователем.
func (l *Loop) Run(ctx context.Context) error {
	defer l.renderer.Close()

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	var (
		frame      *entity.Frame
		prediction *entity.Prediction
	)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		dirty := false
		if f, ok := l.frames.TryTake(); ok {
			frame = &f
			dirty = true
		}
		if p, ok := l.predictions.TryTake(); ok {
			prediction = &p
			dirty = true
		}
		if !dirty {
			continue
		}

		if err := l.renderer.Render(frame, prediction); err != nil {
			if errors.Is(err, ErrClosed) {
				return nil
			}
			return err
		}
	}
}

var _ port.Display = (*Loop)(nil)
