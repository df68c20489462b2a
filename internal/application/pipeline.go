package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"frame-classifier/internal/domain/entity"
	"frame-classifier/internal/domain/port"
	"frame-classifier/internal/mailbox"
)

// readRetryDelay пауза после неудачного чтения кадра
const readRetryDelay = 100 * time.Millisecond

// PipelineStats счётчики конвейера
type PipelineStats struct {
	Captured  uint64
	Dropped   uint64 // вытеснены более свежим кадром до анализа
	Processed uint64
	Failed    uint64
}

// Pipeline связывает камеру, классификатор и экран.
// Один поток захвата кладёт кадры в ящики "только последний",
// один обработчик классифицирует их по одному.
type Pipeline struct {
	source   port.FrameSource
	classify *ClassificationService
	display  port.Display
	monitor  *HazardMonitor
	sinks    []port.PredictionSink
	log      *zap.Logger

	frames     *mailbox.Latest[entity.Frame]
	retryDelay time.Duration

	captured  atomic.Uint64
	processed atomic.Uint64
	failed    atomic.Uint64
}

// NewPipeline создаёт конвейер. monitor может быть nil.
func NewPipeline(source port.FrameSource, classify *ClassificationService, display port.Display, monitor *HazardMonitor, log *zap.Logger) *Pipeline {
	return &Pipeline{
		source:   source,
		classify: classify,
		display:  display,
		monitor:  monitor,
		log:      log,
		frames:   mailbox.NewLatest[entity.Frame](),

		retryDelay: readRetryDelay,
	}
}

// AddSink подключает получателя результатов. Вызывать до Run.
func (p *Pipeline) AddSink(sink port.PredictionSink) {
	p.sinks = append(p.sinks, sink)
}

// Run работает до отмены ctx или закрытия источника.
// После закрытия источника последний принятый кадр ещё обрабатывается.
func (p *Pipeline) Run(ctx context.Context) error {
	var (
		wg       sync.WaitGroup
		captureE error
	)
	sourceDone := make(chan struct{})

	wg.Add(2)
	go func() {
		defer wg.Done()
		defer close(sourceDone)
		captureE = p.capture(ctx)
	}()
	go func() {
		defer wg.Done()
		p.analyze(ctx, sourceDone)
	}()
	wg.Wait()

	if errors.Is(captureE, port.ErrSourceClosed) || errors.Is(captureE, context.Canceled) || errors.Is(captureE, context.DeadlineExceeded) {
		return nil
	}
	return captureE
}

func (p *Pipeline) capture(ctx context.Context) error {
	for {
		frame, err := p.source.Read(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, port.ErrSourceClosed) {
				p.log.Info("frame source closed")
				return err
			}
			p.log.Warn("read frame failed", zap.Error(err))

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.retryDelay):
			}
			continue
		}

		p.captured.Add(1)
		p.display.Preview(frame)
		p.frames.Put(frame)
	}
}

func (p *Pipeline) analyze(ctx context.Context, sourceDone <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case frame := <-p.frames.Ready():
			p.handle(ctx, frame)
		case <-sourceDone:
			if frame, ok := p.frames.TryTake(); ok {
				p.handle(ctx, frame)
			}
			return
		}
	}
}

func (p *Pipeline) handle(ctx context.Context, frame entity.Frame) {
	prediction, err := p.classify.Classify(ctx, frame)
	if err != nil {
		p.failed.Add(1)
		p.log.Warn("classify frame failed", zap.Uint64("seq", frame.Seq), zap.Error(err))
		return
	}
	p.processed.Add(1)

	p.display.Post(*prediction)

	for _, sink := range p.sinks {
		if err := sink.PublishPrediction(ctx, *prediction); err != nil {
			p.log.Warn("publish prediction failed", zap.Error(err))
		}
	}

	if p.monitor != nil {
		if err := p.monitor.Observe(ctx, *prediction); err != nil {
			p.log.Warn("hazard notify failed", zap.Error(err))
		}
	}
}

// Stats возвращает текущие счётчики
func (p *Pipeline) Stats() PipelineStats {
	return PipelineStats{
		Captured:  p.captured.Load(),
		Dropped:   p.frames.Dropped(),
		Processed: p.processed.Load(),
		Failed:    p.failed.Load(),
	}
}
