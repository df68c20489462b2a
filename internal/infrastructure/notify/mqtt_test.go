package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"frame-classifier/internal/domain/entity"
)

type fakeToken struct {
	err     error
	timeout bool
}

func (t *fakeToken) Wait() bool                     { return !t.timeout }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return !t.timeout }
func (t *fakeToken) Error() error                   { return t.err }

func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

type published struct {
	topic   string
	payload []byte
}

type fakePublisher struct {
	token *fakeToken
	sent  []published
}

func (p *fakePublisher) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	p.sent = append(p.sent, published{topic: topic, payload: payload.([]byte)})
	return p.token
}

func TestMQTT_Notify(t *testing.T) {
	pub := &fakePublisher{token: &fakeToken{}}
	m := newMQTT(pub, "cam1", zaptest.NewLogger(t))

	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	err := m.Notify(context.Background(), entity.Alert{ClassID: 3, Label: "person", Count: 18, Window: 20, At: at})
	require.NoError(t, err)
	require.Len(t, pub.sent, 1)
	require.Equal(t, "cam1/alert", pub.sent[0].topic)

	var msg AlertMessage
	require.NoError(t, json.Unmarshal(pub.sent[0].payload, &msg))
	require.Equal(t, "person", msg.Label)
	require.Equal(t, 18, msg.Count)
	require.True(t, at.Equal(msg.At))
}

func TestMQTT_PublishPrediction(t *testing.T) {
	pub := &fakePublisher{token: &fakeToken{}}
	m := newMQTT(pub, "cam1", zaptest.NewLogger(t))

	err := m.PublishPrediction(context.Background(), entity.Prediction{Seq: 9, ClassID: 1, Label: "goldfish", Elapsed: 42 * time.Millisecond})
	require.NoError(t, err)
	require.Equal(t, "cam1/prediction", pub.sent[0].topic)

	var msg PredictionMessage
	require.NoError(t, json.Unmarshal(pub.sent[0].payload, &msg))
	require.Equal(t, uint64(9), msg.Seq)
	require.Equal(t, int64(42), msg.ElapsedMs)
}

func TestMQTT_PublishErrors(t *testing.T) {
	brokerErr := errors.New("not connected")
	m := newMQTT(&fakePublisher{token: &fakeToken{err: brokerErr}}, "cam1", zaptest.NewLogger(t))
	err := m.Notify(context.Background(), entity.Alert{})
	require.ErrorIs(t, err, brokerErr)

	m = newMQTT(&fakePublisher{token: &fakeToken{timeout: true}}, "cam1", zaptest.NewLogger(t))
	err = m.Notify(context.Background(), entity.Alert{})
	require.Error(t, err)
}
