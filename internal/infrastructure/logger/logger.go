package logger

import (
	"go.uber.org/zap"
)

// New создаёт логгер под окружение: production, test или development.
func New(env string) (*zap.Logger, error) {
	switch env {
	case "production":
		return zap.NewProduction()
	case "test":
		return zap.NewExample(), nil
	default:
		return zap.NewDevelopment()
	}
}

func Must(env string) *zap.Logger {
	return zap.Must(New(env))
}
