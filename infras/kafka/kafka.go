// Package kafka publishes domain events such as low stock alerts.
package kafka

//go:generate go run go.uber.org/mock/mockgen -source=./kafka.go -destination=./mocks/kafka_mock.go -package=mocks

import (
	"careops/config"
	"careops/infras/otel"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

const (
	batchTimeout = 50 * time.Millisecond
	writeTimeout = 5 * time.Second
)

// Message is JSON encoded on publish. Messages sharing a Key land on the same
// partition and stay ordered.
type Message struct {
	Key   string
	Value any
}

func (m *Message) ToKafkaMessage(topic string) (kafkaGo.Message, error) {
	value, err := json.Marshal(m.Value)
	if err != nil {
		return kafkaGo.Message{}, fmt.Errorf("failed to encode message %q: %w", m.Key, err)
	}

	return kafkaGo.Message{
		Topic: topic,
		Key:   []byte(m.Key),
		Value: value,
	}, nil
}

type Client interface {
	SendMessages(ctx context.Context, topic string, messages ...Message) (err error)
	Close() error
}

type producer struct {
	writer *kafkaGo.Writer
}

// New returns a producer for the configured brokers, or a client that drops
// every message when KAFKA_ENABLE is false.
func New(cfg *config.Config) Client {
	if !cfg.Kafka.Enable || len(cfg.Kafka.Brokers) == 0 {
		log.Info().Msg("Kafka disabled, events will not be published")

		return noopClient{}
	}

	log.Info().Strs("brokers", cfg.Kafka.Brokers).Msg("Kafka producer initialized")

	return &producer{
		writer: &kafkaGo.Writer{
			Addr:                   kafkaGo.TCP(cfg.Kafka.Brokers...),
			Transport:              transport(cfg),
			Balancer:               &kafkaGo.Hash{},
			BatchTimeout:           batchTimeout,
			WriteTimeout:           writeTimeout,
			RequiredAcks:           kafkaGo.RequireOne,
			AllowAutoTopicCreation: true,
		},
	}
}

func transport(cfg *config.Config) *kafkaGo.Transport {
	t := &kafkaGo.Transport{}

	if cfg.Kafka.SASL.Username != "" {
		t.SASL = plain.Mechanism{
			Username: cfg.Kafka.SASL.Username,
			Password: cfg.Kafka.SASL.Password,
		}
	}

	return t
}

// SendMessages publishes the batch with the caller's trace context in the
// headers of every message.
func (p *producer) SendMessages(ctx context.Context, topic string, messages ...Message) error {
	batch, err := encode(ctx, topic, messages)
	if err != nil {
		return err
	}

	if err = p.writer.WriteMessages(ctx, batch...); err != nil {
		log.Error().Err(err).Str("topic", topic).Int("count", len(batch)).Msg("Failed to publish to Kafka")

		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}

	log.Debug().Str("topic", topic).Int("count", len(batch)).Msg("Published to Kafka")

	return nil
}

func encode(ctx context.Context, topic string, messages []Message) ([]kafkaGo.Message, error) {
	batch := make([]kafkaGo.Message, 0, len(messages))

	for _, message := range messages {
		msg, err := message.ToKafkaMessage(topic)
		if err != nil {
			return nil, err
		}

		otel.Inject(ctx, headerCarrier{headers: &msg.Headers})
		batch = append(batch, msg)
	}

	return batch, nil
}

func (p *producer) Close() error {
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close Kafka writer: %w", err)
	}

	return nil
}

// headerCarrier exposes kafka headers to the trace propagator.
type headerCarrier struct {
	headers *[]kafkaGo.Header
}

func (c headerCarrier) Get(key string) string {
	for _, header := range *c.headers {
		if header.Key == key {
			return string(header.Value)
		}
	}

	return ""
}

func (c headerCarrier) Set(key, value string) {
	for i, header := range *c.headers {
		if header.Key == key {
			(*c.headers)[i].Value = []byte(value)

			return
		}
	}

	*c.headers = append(*c.headers, kafkaGo.Header{Key: key, Value: []byte(value)})
}

func (c headerCarrier) Keys() []string {
	keys := make([]string, 0, len(*c.headers))
	for _, header := range *c.headers {
		keys = append(keys, header.Key)
	}

	return keys
}

type noopClient struct{}

func (noopClient) SendMessages(_ context.Context, topic string, messages ...Message) error {
	log.Debug().Str("topic", topic).Int("count", len(messages)).Msg("Kafka disabled, skipping publish")

	return nil
}

func (noopClient) Close() error {
	return nil
}
