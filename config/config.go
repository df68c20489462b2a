package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Бэкенды инференса
const (
	BackendOpenCV      = "opencv"
	BackendONNXRuntime = "onnxruntime"
)

// Режимы отображения
const (
	DisplayWindow   = "window"
	DisplayHeadless = "headless"
)

type Config struct {
	Env string // development | production | test

	AssetsDir  string // каталог с поставляемыми файлами (модель, метки)
	DataDir    string // локальный каталог, куда копируется модель
	ModelFile  string
	LabelsFile string

	Backend        string
	InputSize      int
	ApplySoftmax   bool
	ONNXLibPath    string
	ONNXInputName  string
	ONNXOutputName string

	CameraDevice string
	FrameWidth   int
	FrameHeight  int
	Rotation     int

	Display     string
	WindowTitle string

	HazardWindow      int
	HazardSafeClasses []int
	HazardCooldown    time.Duration

	MQTTBroker      string
	MQTTTopicPrefix string

	TelegramToken string
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		Env:             getEnv("APP_ENV", "development"),
		AssetsDir:       getEnv("ASSETS_DIR", "assets"),
		DataDir:         getEnv("DATA_DIR", "data"),
		ModelFile:       getEnv("MODEL_FILE", "model.onnx"),
		LabelsFile:      getEnv("LABELS_FILE", "imagenet-classes.txt"),
		Backend:         getEnv("MODEL_BACKEND", BackendOpenCV),
		ONNXLibPath:     os.Getenv("ONNXRUNTIME_LIB"),
		ONNXInputName:   getEnv("ONNX_INPUT_NAME", "input"),
		ONNXOutputName:  getEnv("ONNX_OUTPUT_NAME", "output"),
		CameraDevice:    getEnv("CAMERA_DEVICE", "0"),
		Display:         getEnv("DISPLAY_MODE", DisplayWindow),
		WindowTitle:     getEnv("WINDOW_TITLE", "frame-classifier"),
		MQTTBroker:      os.Getenv("MQTT_BROKER"),
		MQTTTopicPrefix: getEnv("MQTT_TOPIC_PREFIX", "frame-classifier"),
		TelegramToken:   os.Getenv("TELEGRAM_TOKEN"),
	}

	var err error
	if cfg.InputSize, err = getInt("INPUT_SIZE", 224); err != nil {
		return nil, err
	}
	if cfg.FrameWidth, err = getInt("FRAME_WIDTH", 0); err != nil {
		return nil, err
	}
	if cfg.FrameHeight, err = getInt("FRAME_HEIGHT", 0); err != nil {
		return nil, err
	}
	if cfg.Rotation, err = getInt("FRAME_ROTATION", 0); err != nil {
		return nil, err
	}
	if cfg.HazardWindow, err = getInt("HAZARD_WINDOW", 0); err != nil {
		return nil, err
	}
	if cfg.ApplySoftmax, err = getBool("APPLY_SOFTMAX", true); err != nil {
		return nil, err
	}
	if cfg.HazardCooldown, err = getDuration("HAZARD_COOLDOWN", 1500*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.HazardSafeClasses, err = getIntList("HAZARD_SAFE_CLASSES"); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Backend {
	case BackendOpenCV, BackendONNXRuntime:
	default:
		return fmt.Errorf("unknown MODEL_BACKEND %q", c.Backend)
	}
	switch c.Display {
	case DisplayWindow, DisplayHeadless:
	default:
		return fmt.Errorf("unknown DISPLAY_MODE %q", c.Display)
	}
	if c.InputSize <= 0 {
		return fmt.Errorf("INPUT_SIZE must be positive, got %d", c.InputSize)
	}
	if c.Rotation%90 != 0 {
		return fmt.Errorf("FRAME_ROTATION must be a multiple of 90, got %d", c.Rotation)
	}
	if c.HazardWindow < 0 {
		return fmt.Errorf("HAZARD_WINDOW must not be negative, got %d", c.HazardWindow)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, nil
}

func getBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return b, nil
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}

// getIntList разбирает список вида "0,8,9"
func getIntList(key string) ([]int, error) {
	v := os.Getenv(key)
	if v == "" {
		return nil, nil
	}
	parts := strings.Split(v, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", key, err)
		}
		out = append(out, n)
	}
	return out, nil
}
