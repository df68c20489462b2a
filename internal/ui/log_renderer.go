package ui

import (
	"go.uber.org/zap"

	"frame-classifier/internal/domain/entity"
)

// LogRenderer режим без окна: пишет метку в журнал, когда она меняется
type LogRenderer struct {
	log  *zap.Logger
	last string
}

func NewLogRenderer(log *zap.Logger) *LogRenderer {
	return &LogRenderer{log: log}
}

func (r *LogRenderer) Render(frame *entity.Frame, prediction *entity.Prediction) error {
	if prediction == nil || prediction.Label == r.last {
		return nil
	}
	r.last = prediction.Label

	r.log.Info("detected",
		zap.String("label", prediction.Label),
		zap.Float32("confidence", prediction.Confidence),
		zap.Duration("elapsed", prediction.Elapsed),
	)
	return nil
}

func (r *LogRenderer) Close() error { return nil }
