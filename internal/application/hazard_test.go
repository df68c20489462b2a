package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"frame-classifier/internal/domain/entity"
)

var hazardLabels = entity.Labels{"clear", "tree", "person", "pole"}

func newTestMonitor(t *testing.T, cfg HazardConfig, n *recordingNotifier) (*HazardMonitor, *time.Time) {
	t.Helper()
	m := NewHazardMonitor(cfg, hazardLabels, n, zaptest.NewLogger(t))
	require.NotNil(t, m)
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return clock }
	return m, &clock
}

func observe(t *testing.T, m *HazardMonitor, ids ...int) {
	t.Helper()
	for _, id := range ids {
		require.NoError(t, m.Observe(context.Background(), entity.Prediction{ClassID: id}))
	}
}

func TestHazardMonitor_WaitsForFullWindow(t *testing.T) {
	n := &recordingNotifier{}
	m, _ := newTestMonitor(t, HazardConfig{Window: 3, SafeClasses: []int{0}}, n)

	observe(t, m, 1, 1)
	require.Empty(t, n.Alerts())
	require.False(t, m.Safe())

	observe(t, m, 2)
	alerts := n.Alerts()
	require.Len(t, alerts, 1)
	require.Equal(t, 1, alerts[0].ClassID)
	require.Equal(t, "tree", alerts[0].Label)
	require.Equal(t, 2, alerts[0].Count)
	require.Equal(t, 3, alerts[0].Window)
}

func TestHazardMonitor_SafeClassSuppresses(t *testing.T) {
	n := &recordingNotifier{}
	m, _ := newTestMonitor(t, HazardConfig{Window: 3, SafeClasses: []int{0}}, n)

	observe(t, m, 2, 0, 2, 2)
	require.Empty(t, n.Alerts())
	require.True(t, m.Safe())

	// безопасный класс вышел из окна
	observe(t, m, 2)
	require.Len(t, n.Alerts(), 1)
	require.False(t, m.Safe())
}

func TestHazardMonitor_Cooldown(t *testing.T) {
	n := &recordingNotifier{}
	m, clock := newTestMonitor(t, HazardConfig{Window: 2, Cooldown: time.Second}, n)

	observe(t, m, 3, 3)
	require.Len(t, n.Alerts(), 1)

	*clock = clock.Add(500 * time.Millisecond)
	observe(t, m, 3)
	require.Len(t, n.Alerts(), 1)

	*clock = clock.Add(600 * time.Millisecond)
	observe(t, m, 2)
	alerts := n.Alerts()
	require.Len(t, alerts, 2)
	// ничья 3 и 2 в окне: побеждает встретившийся раньше
	require.Equal(t, 3, alerts[1].ClassID)
}

func TestHazardMonitor_NotifyError(t *testing.T) {
	n := &recordingNotifier{err: errors.New("broker down")}
	m, _ := newTestMonitor(t, HazardConfig{Window: 1}, n)

	err := m.Observe(context.Background(), entity.Prediction{ClassID: 1})
	require.Error(t, err)
}

func TestNewHazardMonitor_Disabled(t *testing.T) {
	require.Nil(t, NewHazardMonitor(HazardConfig{}, hazardLabels, &recordingNotifier{}, zaptest.NewLogger(t)))
	require.Nil(t, NewHazardMonitor(HazardConfig{Window: 5}, hazardLabels, nil, zaptest.NewLogger(t)))
}
