package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"frame-classifier/internal/domain/entity"
)

type countingNotifier struct {
	calls int
	err   error
}

func (n *countingNotifier) Notify(ctx context.Context, alert entity.Alert) error {
	n.calls++
	return n.err
}

func TestMulti_NotifiesAll(t *testing.T) {
	failing := &countingNotifier{err: errors.New("down")}
	ok := &countingNotifier{}

	err := Multi{failing, ok, NewLog(zaptest.NewLogger(t))}.Notify(context.Background(), entity.Alert{Label: "pole"})
	require.ErrorIs(t, err, failing.err)
	require.Equal(t, 1, failing.calls)
	require.Equal(t, 1, ok.calls)
}

func TestMulti_Empty(t *testing.T) {
	require.NoError(t, Multi(nil).Notify(context.Background(), entity.Alert{}))
}
