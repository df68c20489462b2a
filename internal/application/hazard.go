package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"frame-classifier/internal/domain/entity"
	"frame-classifier/internal/domain/port"
)

// HazardConfig настройки наблюдения за препятствиями
type HazardConfig struct {
	Window      int           // сколько последних классов учитывать
	SafeClasses []int         // классы, при которых путь считается свободным
	Cooldown    time.Duration // минимальный интервал между предупреждениями
}

// HazardMonitor следит за последними результатами и предупреждает, когда
// в окне нет ни одного безопасного класса.
type HazardMonitor struct {
	cfg      HazardConfig
	labels   entity.Labels
	notifier port.Notifier
	log      *zap.Logger
	now      func() time.Time

	mu        sync.Mutex
	recent    []int
	safe      map[int]struct{}
	lastAlert time.Time
	isSafe    bool
}

// NewHazardMonitor создаёт монитор. Возвращает nil, если окно не задано.
func NewHazardMonitor(cfg HazardConfig, labels entity.Labels, notifier port.Notifier, log *zap.Logger) *HazardMonitor {
	if cfg.Window <= 0 || notifier == nil {
		return nil
	}

	safe := make(map[int]struct{}, len(cfg.SafeClasses))
	for _, id := range cfg.SafeClasses {
		safe[id] = struct{}{}
	}

	return &HazardMonitor{
		cfg:      cfg,
		labels:   labels,
		notifier: notifier,
		log:      log,
		now:      time.Now,
		recent:   make([]int, 0, cfg.Window),
		safe:     safe,
		isSafe:   true,
	}
}

// Observe учитывает очередной результат и при необходимости отправляет предупреждение
func (m *HazardMonitor) Observe(ctx context.Context, p entity.Prediction) error {
	alert, ok := m.push(p.ClassID)
	if !ok {
		return nil
	}

	m.log.Info("hazard detected",
		zap.String("label", alert.Label),
		zap.Int("class", alert.ClassID),
		zap.Int("count", alert.Count),
	)
	return m.notifier.Notify(ctx, alert)
}

// Safe текущее состояние
func (m *HazardMonitor) Safe() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.isSafe
}

func (m *HazardMonitor) push(classID int) (entity.Alert, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.recent) == m.cfg.Window {
		copy(m.recent, m.recent[1:])
		m.recent = m.recent[:len(m.recent)-1]
	}
	m.recent = append(m.recent, classID)

	m.isSafe = false
	for _, id := range m.recent {
		if _, ok := m.safe[id]; ok {
			m.isSafe = true
			break
		}
	}
	if m.isSafe || len(m.recent) < m.cfg.Window {
		return entity.Alert{}, false
	}

	now := m.now()
	if !m.lastAlert.IsZero() && now.Sub(m.lastAlert) < m.cfg.Cooldown {
		return entity.Alert{}, false
	}
	m.lastAlert = now

	id, count := entity.MostFrequent(m.recent)
	label, _ := m.labels.At(id)
	return entity.Alert{
		ClassID: id,
		Label:   label,
		Count:   count,
		Window:  m.cfg.Window,
		At:      now,
	}, true
}
