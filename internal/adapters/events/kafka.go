// Package events publica el historial de turnos hacia afuera.
package events

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	ports "pet-grooming-agenda/internal/ports/events"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher escribe un mensaje por entrada. Key = appointment id, así los
// eventos de un mismo turno caen en la misma partición y mantienen el orden.
type KafkaPublisher struct {
	w     messageWriter
	topic string
}

type KafkaConfig struct {
	Brokers      string // separados por coma
	Topic        string
	WriteTimeout time.Duration
}

func NewKafkaPublisher(cfg KafkaConfig) (*KafkaPublisher, error) {
	brokers := SplitBrokers(cfg.Brokers)
	if len(brokers) == 0 {
		return nil, errors.New("kafka: no brokers configured")
	}
	if strings.TrimSpace(cfg.Topic) == "" {
		return nil, errors.New("kafka: topic required")
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 5 * time.Second
	}

	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		WriteTimeout:           cfg.WriteTimeout,
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{w: w, topic: cfg.Topic}, nil
}

type wireMessage struct {
	ID            string         `json:"id"`
	Type          string         `json:"type"`
	AppointmentID string         `json:"appointment_id"`
	OwnerUserID   string         `json:"owner_user_id"`
	ActorID       string         `json:"actor_id"`
	ActorRole     string         `json:"actor_role"`
	OccurredAt    time.Time      `json:"occurred_at"`
	Payload       map[string]any `json:"payload,omitempty"`
}

func (p *KafkaPublisher) Publish(ctx context.Context, m ports.Message) error {
	msg, err := toKafkaMessage(ctx, m)
	if err != nil {
		return err
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return errors.Wrapf(err, "kafka write %s", p.topic)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.w.Close()
}

func toKafkaMessage(ctx context.Context, m ports.Message) (kafka.Message, error) {
	body, err := json.Marshal(wireMessage{
		ID:            m.ID,
		Type:          m.Type,
		AppointmentID: m.AppointmentID,
		OwnerUserID:   m.OwnerUserID,
		ActorID:       m.ActorID,
		ActorRole:     m.ActorRole,
		OccurredAt:    m.OccurredAt.UTC(),
		Payload:       m.Payload,
	})
	if err != nil {
		return kafka.Message{}, errors.Wrap(err, "marshal event")
	}

	msg := kafka.Message{
		Key:   []byte(m.AppointmentID),
		Value: body,
		Time:  m.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(m.ID)},
			{Key: "event_type", Value: []byte(m.Type)},
		},
	}
	carrier := &headerCarrier{headers: msg.Headers}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	msg.Headers = carrier.headers
	return msg, nil
}

func SplitBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// headerCarrier adapta los headers de kafka al propagador W3C.
type headerCarrier struct {
	headers []kafka.Header
}

var _ propagation.TextMapCarrier = (*headerCarrier)(nil)

func (c *headerCarrier) Get(key string) string {
	for _, h := range c.headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (c *headerCarrier) Set(key, value string) {
	for i, h := range c.headers {
		if h.Key == key {
			c.headers[i].Value = []byte(value)
			return
		}
	}
	c.headers = append(c.headers, kafka.Header{Key: key, Value: []byte(value)})
}

func (c *headerCarrier) Keys() []string {
	keys := make([]string, 0, len(c.headers))
	for _, h := range c.headers {
		keys = append(keys, h.Key)
	}
	return keys
}
