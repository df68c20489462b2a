package app

import (
	"context"
	"errors"
	"image"
	"sync"

	"frame-classifier/internal/domain/entity"
	"frame-classifier/internal/domain/port"
)

type fakePre struct{}

func (fakePre) Tensor(frame entity.Frame) (entity.Tensor, error) {
	if frame.Image == nil {
		return entity.Tensor{}, errors.New("frame has no image")
	}
	return entity.NewTensor(2), nil
}

// fakeModel отдаёт оценки по номеру вызова
type fakeModel struct {
	mu      sync.Mutex
	scores  func(call int) []float32
	calls   int
	outSize int
	err     error
}

func (m *fakeModel) Forward(ctx context.Context, input entity.Tensor) ([]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.scores(m.calls), nil
}

func (m *fakeModel) OutputSize() int { return m.outSize }
func (m *fakeModel) Close() error    { return nil }

func (m *fakeModel) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func constScores(s ...float32) func(int) []float32 {
	return func(int) []float32 { return s }
}

// sliceSource отдаёт заранее заданные кадры, затем ErrSourceClosed
type sliceSource struct {
	mu     sync.Mutex
	frames []entity.Frame
	errs   []error
}

func (s *sliceSource) Read(ctx context.Context) (entity.Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.errs) > 0 {
		err := s.errs[0]
		s.errs = s.errs[1:]
		return entity.Frame{}, err
	}
	if len(s.frames) == 0 {
		return entity.Frame{}, port.ErrSourceClosed
	}
	f := s.frames[0]
	s.frames = s.frames[1:]
	return f, nil
}

func (s *sliceSource) Close() error { return nil }

type recordingDisplay struct {
	mu       sync.Mutex
	previews []uint64
	posts    []entity.Prediction
}

func (d *recordingDisplay) Preview(frame entity.Frame) {
	d.mu.Lock()
	d.previews = append(d.previews, frame.Seq)
	d.mu.Unlock()
}

func (d *recordingDisplay) Post(p entity.Prediction) {
	d.mu.Lock()
	d.posts = append(d.posts, p)
	d.mu.Unlock()
}

func (d *recordingDisplay) Posts() []entity.Prediction {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]entity.Prediction(nil), d.posts...)
}

type recordingNotifier struct {
	mu     sync.Mutex
	alerts []entity.Alert
	err    error
}

func (n *recordingNotifier) Notify(ctx context.Context, a entity.Alert) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, a)
	return n.err
}

func (n *recordingNotifier) Alerts() []entity.Alert {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]entity.Alert(nil), n.alerts...)
}

func testFrame(seq uint64) entity.Frame {
	return entity.Frame{Seq: seq, Image: image.NewRGBA(image.Rect(0, 0, 2, 2))}
}
