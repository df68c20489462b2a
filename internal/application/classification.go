package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"sync"
	"time"

	"go.uber.org/zap"

	"frame-classifier/internal/domain/entity"
	"frame-classifier/internal/domain/port"
)

var (
	// ErrLabelMismatch число оценок модели не совпадает с числом меток
	ErrLabelMismatch = errors.New("model output size does not match labels")
	// ErrNoPrediction ещё не было ни одного результата
	ErrNoPrediction = errors.New("no prediction yet")
)

// ClassificationService прогоняет кадр через модель и подписывает результат.
// Модель не потокобезопасна, поэтому вызовы сериализуются.
type ClassificationService struct {
	pre     port.Preprocessor
	model   port.Model
	labels  entity.Labels
	softmax bool
	log     *zap.Logger
	now     func() time.Time

	mu sync.Mutex // сериализует доступ к модели

	latestMu sync.RWMutex
	latest   *entity.Prediction
}

// NewClassificationService создаёт сервис классификации.
// Если размерность выхода модели известна заранее, она сверяется с числом меток.
func NewClassificationService(pre port.Preprocessor, model port.Model, labels entity.Labels, softmax bool, log *zap.Logger) (*ClassificationService, error) {
	if n := model.OutputSize(); n > 0 && n != labels.Len() {
		return nil, fmt.Errorf("%w: model has %d outputs, %d labels", ErrLabelMismatch, n, labels.Len())
	}

	return &ClassificationService{
		pre:     pre,
		model:   model,
		labels:  labels,
		softmax: softmax,
		log:     log,
		now:     time.Now,
	}, nil
}

// Classify классифицирует кадр с камеры и запоминает результат для Latest
func (s *ClassificationService) Classify(ctx context.Context, frame entity.Frame) (*entity.Prediction, error) {
	p, err := s.classify(ctx, frame)
	if err != nil {
		return nil, err
	}

	s.latestMu.Lock()
	cp := *p
	s.latest = &cp
	s.latestMu.Unlock()

	return p, nil
}

// classify выполняет: кадр → тензор → прямой проход → arg-max → метка
func (s *ClassificationService) classify(ctx context.Context, frame entity.Frame) (*entity.Prediction, error) {
	tensor, err := s.pre.Tensor(frame)
	if err != nil {
		return nil, fmt.Errorf("preprocess frame %d: %w", frame.Seq, err)
	}

	s.mu.Lock()
	start := s.now()
	scores, err := s.model.Forward(ctx, tensor)
	elapsed := s.now().Sub(start)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("forward frame %d: %w", frame.Seq, err)
	}

	if len(scores) != s.labels.Len() {
		return nil, fmt.Errorf("%w: got %d scores, %d labels", ErrLabelMismatch, len(scores), s.labels.Len())
	}

	idx, score := entity.ArgMax(scores)
	if idx < 0 {
		return nil, entity.ErrNoScores
	}
	label, _ := s.labels.At(idx)

	confidence := score
	if s.softmax {
		confidence = entity.Softmax(scores)[idx]
	}

	p := &entity.Prediction{
		Seq:        frame.Seq,
		ClassID:    idx,
		Label:      label,
		Score:      score,
		Confidence: confidence,
		Elapsed:    elapsed,
		At:         s.now(),
	}

	s.log.Debug("classified",
		zap.Uint64("seq", p.Seq),
		zap.String("label", p.Label),
		zap.Int("class", p.ClassID),
		zap.Float32("confidence", p.Confidence),
		zap.Duration("elapsed", p.Elapsed),
	)

	return p, nil
}

// ClassifyImage декодирует JPEG/PNG и классифицирует его как отдельный кадр.
// Результат не попадает в Latest: там только кадры с камеры.
func (s *ClassificationService) ClassifyImage(ctx context.Context, data []byte) (*entity.Prediction, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	return s.classify(ctx, entity.Frame{CapturedAt: s.now(), Image: img})
}

// Latest возвращает последний результат по кадру с камеры
func (s *ClassificationService) Latest() (entity.Prediction, error) {
	s.latestMu.RLock()
	defer s.latestMu.RUnlock()

	if s.latest == nil {
		return entity.Prediction{}, ErrNoPrediction
	}
	return *s.latest, nil
}

// Labels возвращает список классов
func (s *ClassificationService) Labels() entity.Labels {
	return s.labels
}
