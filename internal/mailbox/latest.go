package mailbox

import (
	"context"
	"sync/atomic"
)

// Latest ящик на одно значение: новое значение вытесняет недоставленное.
// Так реализуется политика "keep only latest" для кадров.
type Latest[T any] struct {
	ch      chan T
	dropped atomic.Uint64
}

func NewLatest[T any]() *Latest[T] {
	return &Latest[T]{ch: make(chan T, 1)}
}

// Put кладёт значение, не блокируясь. Возвращает true, если старое значение было выброшено.
func (l *Latest[T]) Put(v T) bool {
	dropped := false
	for {
		select {
		case l.ch <- v:
			return dropped
		default:
		}

		select {
		case <-l.ch:
			dropped = true
			l.dropped.Add(1)
		default:
		}
	}
}

// Take ждёт значение или отмену контекста
func (l *Latest[T]) Take(ctx context.Context) (T, bool) {
	select {
	case v := <-l.ch:
		return v, true
	case <-ctx.Done():
		var zero T
		return zero, false
	}
}

// TryTake забирает значение, если оно есть
func (l *Latest[T]) TryTake() (T, bool) {
	select {
	case v := <-l.ch:
		return v, true
	default:
		var zero T
		return zero, false
	}
}

// Ready канал для select; получение из него забирает значение
func (l *Latest[T]) Ready() <-chan T {
	return l.ch
}

// Dropped сколько значений было вытеснено
func (l *Latest[T]) Dropped() uint64 {
	return l.dropped.Load()
}
