package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"frame-classifier/config"
	telegram "frame-classifier/internal/api"
	app "frame-classifier/internal/application"
	"frame-classifier/internal/container"
	"frame-classifier/internal/domain/entity"
	"frame-classifier/internal/domain/port"
	"frame-classifier/internal/infrastructure/assets"
	"frame-classifier/internal/infrastructure/logger"
	"frame-classifier/internal/infrastructure/notify"
	"frame-classifier/internal/infrastructure/onnx"
	"frame-classifier/internal/infrastructure/preprocess"
	"frame-classifier/internal/infrastructure/storage"
	"frame-classifier/internal/infrastructure/vision"
	"frame-classifier/internal/ui"
)

// Окно OpenCV должно жить в главном потоке
func init() {
	runtime.LockOSThread()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.Must(zap.NewProduction()).Fatal("failed to load config", zap.Error(err))
	}

	log := logger.Must(cfg.Env).With(zap.String("run", uuid.NewString()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err = run(ctx, cfg, log)
	stop()
	if err != nil {
		log.Fatal("classifier failed", zap.Error(err))
	}
	_ = log.Sync()
}

// run собирает и запускает классификатор. Ресурсы, открытые до ошибки,
// закрываются до возврата.
func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	// Копируем модель в локальный каталог и читаем метки
	store := assets.NewStore(os.DirFS(cfg.AssetsDir), cfg.DataDir)
	modelAsset, err := store.CopyIfAbsent(cfg.ModelFile)
	if err != nil {
		return fmt.Errorf("copy model %s: %w", cfg.ModelFile, err)
	}
	log.Info("model ready",
		zap.String("path", modelAsset.Path),
		zap.String("blake3", modelAsset.Digest),
		zap.Bool("copied", modelAsset.Copied),
	)

	labels, err := store.Labels(cfg.LabelsFile)
	if err != nil {
		return fmt.Errorf("load labels %s: %w", cfg.LabelsFile, err)
	}
	log.Info("labels loaded", zap.Int("classes", labels.Len()))

	pre, model, err := loadBackend(cfg, modelAsset.Path, labels)
	if err != nil {
		return fmt.Errorf("load %s model: %w", cfg.Backend, err)
	}
	defer model.Close()

	// Собираем сервисы приложения
	userRepo := storage.NewMemoryUserRepository()
	appContainer, err := container.New(userRepo, pre, model, labels, cfg.ApplySoftmax, log)
	if err != nil {
		return fmt.Errorf("build services: %w", err)
	}

	notifiers := notify.Multi{notify.NewLog(log.Named("alert"))}
	var sinks []port.PredictionSink

	if cfg.MQTTBroker != "" {
		mqtt, err := notify.DialMQTT(cfg.MQTTBroker, cfg.MQTTTopicPrefix, log.Named("mqtt"))
		if err != nil {
			return fmt.Errorf("connect to mqtt %s: %w", cfg.MQTTBroker, err)
		}
		defer mqtt.Close()
		notifiers = append(notifiers, mqtt)
		sinks = append(sinks, mqtt)
	}

	var bot *telegram.Bot
	if cfg.TelegramToken != "" {
		bot, err = telegram.NewBot(cfg.TelegramToken, appContainer, log.Named("telegram"))
		if err != nil {
			return fmt.Errorf("create bot: %w", err)
		}
		notifiers = append(notifiers, bot)
	}

	camera, err := vision.OpenCamera(cfg.CameraDevice, cfg.FrameWidth, cfg.FrameHeight, cfg.Rotation)
	if err != nil {
		return fmt.Errorf("open camera %s: %w", cfg.CameraDevice, err)
	}
	defer camera.Close()

	var renderer ui.Renderer
	if cfg.Display == config.DisplayWindow {
		renderer = vision.NewWindowRenderer(cfg.WindowTitle)
	} else {
		renderer = ui.NewLogRenderer(log.Named("ui"))
	}
	loop := ui.NewLoop(renderer, 0)

	hazard := app.HazardConfig{
		Window:      cfg.HazardWindow,
		SafeClasses: cfg.HazardSafeClasses,
		Cooldown:    cfg.HazardCooldown,
	}
	pipeline := appContainer.WirePipeline(camera, loop, hazard, notifiers)
	for _, sink := range sinks {
		pipeline.AddSink(sink)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if bot != nil {
		go func() {
			if err := bot.Run(ctx); err != nil {
				log.Error("bot stopped", zap.Error(err))
			}
		}()
	}

	pipelineDone := make(chan struct{})
	go func() {
		defer close(pipelineDone)
		defer cancel()
		if err := pipeline.Run(ctx); err != nil {
			log.Error("pipeline stopped", zap.Error(err))
		}
	}()

	log.Info("classifier is running", zap.String("display", cfg.Display), zap.String("backend", cfg.Backend))
	if err := loop.Run(ctx); err != nil {
		log.Error("display stopped", zap.Error(err))
	}
	cancel()
	<-pipelineDone

	stats := pipeline.Stats()
	log.Info("stopped",
		zap.Uint64("captured", stats.Captured),
		zap.Uint64("dropped", stats.Dropped),
		zap.Uint64("processed", stats.Processed),
		zap.Uint64("failed", stats.Failed),
	)
	return nil
}

// loadBackend выбирает препроцессор и модель по MODEL_BACKEND
func loadBackend(cfg *config.Config, modelPath string, labels entity.Labels) (port.Preprocessor, port.Model, error) {
	switch cfg.Backend {
	case config.BackendONNXRuntime:
		session, err := onnx.NewSession(modelPath, onnx.Options{
			LibraryPath: cfg.ONNXLibPath,
			InputName:   cfg.ONNXInputName,
			OutputName:  cfg.ONNXOutputName,
			InputSize:   cfg.InputSize,
			NumClasses:  labels.Len(),
		})
		if err != nil {
			return nil, nil, err
		}
		return preprocess.NewConverter(cfg.InputSize), session, nil
	default:
		net, err := vision.LoadNetModel(modelPath, cfg.InputSize)
		if err != nil {
			return nil, nil, err
		}
		return vision.NewBlobPreprocessor(cfg.InputSize), net, nil
	}
}
