package port

import (
	"context"

	"frame-classifier/internal/domain/entity"
)

// Notifier доставляет предупреждения об опасности
type Notifier interface {
	Notify(ctx context.Context, alert entity.Alert) error
}

// PredictionSink получает каждый результат классификации
type PredictionSink interface {
	PublishPrediction(ctx context.Context, prediction entity.Prediction) error
}
