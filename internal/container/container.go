package container

import (
	"go.uber.org/zap"

	app "frame-classifier/internal/application"
	"frame-classifier/internal/domain/entity"
	"frame-classifier/internal/domain/port"
)

type Container struct {
	UserService           *app.UserService
	ClassificationService *app.ClassificationService
	HazardMonitor         *app.HazardMonitor
	Pipeline              *app.Pipeline

	log *zap.Logger
}

// New собирает сервисы, которым не нужна камера
func New(userRepo port.UserRepository, pre port.Preprocessor, model port.Model, labels entity.Labels, softmax bool, log *zap.Logger) (*Container, error) {
	userService := app.NewUserService(userRepo)
	classificationService, err := app.NewClassificationService(pre, model, labels, softmax, log.Named("classifier"))
	if err != nil {
		return nil, err
	}

	return &Container{
		UserService:           userService,
		ClassificationService: classificationService,
		log:                   log,
	}, nil
}

// WirePipeline подключает камеру, экран и наблюдение за препятствиями.
// notifier может быть nil, тогда монитор не создаётся.
func (c *Container) WirePipeline(source port.FrameSource, display port.Display, hazard app.HazardConfig, notifier port.Notifier) *app.Pipeline {
	c.HazardMonitor = app.NewHazardMonitor(hazard, c.ClassificationService.Labels(), notifier, c.log.Named("hazard"))
	c.Pipeline = app.NewPipeline(source, c.ClassificationService, display, c.HazardMonitor, c.log.Named("pipeline"))
	return c.Pipeline
}
