package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"frame-classifier/internal/domain/entity"
	"frame-classifier/internal/domain/port"
)

const publishTimeout = 5 * time.Second

// publisher часть mqtt.Client, которая нужна издателю
type publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// MQTT публикует результаты и предупреждения в брокер
type MQTT struct {
	client publisher
	prefix string
	log    *zap.Logger
	close  func()
}

// AlertMessage формат сообщения в топике <prefix>/alert
type AlertMessage struct {
	ClassID int       `json:"classId"`
	Label   string    `json:"label"`
	Count   int       `json:"count"`
	Window  int       `json:"window"`
	At      time.Time `json:"at"`
}

// PredictionMessage формат сообщения в топике <prefix>/prediction
type PredictionMessage struct {
	Seq        uint64    `json:"seq"`
	ClassID    int       `json:"classId"`
	Label      string    `json:"label"`
	Confidence float32   `json:"confidence"`
	ElapsedMs  int64     `json:"elapsedMs"`
	At         time.Time `json:"at"`
}

// DialMQTT подключается к брокеру
func DialMQTT(broker, prefix string, log *zap.Logger) (*MQTT, error) {
	clientID := "frame-classifier-" + uuid.New().String()

	log.Info("connecting to MQTT", zap.String("broker", broker), zap.String("client_id", clientID))
	opts := mqtt.NewClientOptions().AddBroker(broker).SetClientID(clientID)
	opts.SetKeepAlive(30 * time.Second)
	opts.SetPingTimeout(5 * time.Second)
	opts.SetConnectTimeout(30 * time.Second)
	opts.SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connect mqtt %s: %w", broker, token.Error())
	}

	m := newMQTT(client, prefix, log)
	m.close = func() { client.Disconnect(250) }
	return m, nil
}

func newMQTT(client publisher, prefix string, log *zap.Logger) *MQTT {
	return &MQTT{client: client, prefix: prefix, log: log}
}

// Notify публикует предупреждение
func (m *MQTT) Notify(ctx context.Context, alert entity.Alert) error {
	return m.publish(ctx, m.prefix+"/alert", AlertMessage{
		ClassID: alert.ClassID,
		Label:   alert.Label,
		Count:   alert.Count,
		Window:  alert.Window,
		At:      alert.At,
	})
}

// PublishPrediction публикует результат классификации кадра
func (m *MQTT) PublishPrediction(ctx context.Context, p entity.Prediction) error {
	return m.publish(ctx, m.prefix+"/prediction", PredictionMessage{
		Seq:        p.Seq,
		ClassID:    p.ClassID,
		Label:      p.Label,
		Confidence: p.Confidence,
		ElapsedMs:  p.Elapsed.Milliseconds(),
		At:         p.At,
	})
}

func (m *MQTT) publish(ctx context.Context, topic string, msg interface{}) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", topic, err)
	}

	timeout := publishTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if d := time.Until(deadline); d < timeout {
			timeout = d
		}
	}

	token := m.client.Publish(topic, 0, false, payload)
	if !token.WaitTimeout(timeout) {
		return fmt.Errorf("publish %s: %w", topic, errors.New("timed out"))
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}

	m.log.Debug("published", zap.String("topic", topic), zap.Int("bytes", len(payload)))
	return nil
}

// Close отключается от брокера
func (m *MQTT) Close() {
	if m.close != nil {
		m.close()
	}
}

var _ port.Notifier = (*MQTT)(nil)

var _ port.PredictionSink = (*MQTT)(nil)
