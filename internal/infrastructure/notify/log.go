package notify

import (
	"context"

	"go.uber.org/zap"

	"frame-classifier/internal/domain/entity"
	"frame-classifier/internal/domain/port"
)

// Log пишет предупреждения в журнал
type Log struct {
	log *zap.Logger
}

func NewLog(log *zap.Logger) *Log {
	return &Log{log: log}
}

func (l *Log) Notify(ctx context.Context, alert entity.Alert) error {
	l.log.Warn("obstacle ahead",
		zap.String("label", alert.Label),
		zap.Int("class", alert.ClassID),
		zap.Int("count", alert.Count),
		zap.Int("window", alert.Window),
	)
	return nil
}

var _ port.Notifier = (*Log)(nil)
