package notify

import (
	"context"
	"errors"

	"frame-classifier/internal/domain/entity"
	"frame-classifier/internal/domain/port"
)

// Multi рассылает предупреждение всем получателям.
// Ошибка одного получателя не мешает остальным.
type Multi []port.Notifier

func (m Multi) Notify(ctx context.Context, alert entity.Alert) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, alert); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var _ port.Notifier = Multi(nil)
