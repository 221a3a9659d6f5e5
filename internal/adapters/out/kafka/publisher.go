// Package kafka relays outbox messages to Kafka.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"orderflow/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// EventHeader carries the event name on every message.
const EventHeader = "event"

var ErrNoBrokers = errors.New("kafka: no brokers configured")

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes outbox messages to a single topic. Messages are keyed by
// aggregate id so every event of one order lands on the same partition.
type Publisher struct {
	writer MessageWriter
	topic  string
	logger *slog.Logger
}

// ParseBrokers splits a comma separated broker list, dropping blanks.
func ParseBrokers(csv string) []string {
	brokers := []string{}
	for _, b := range strings.Split(csv, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// NewWriter builds a hash-balanced writer that waits for the leader ack.
func NewWriter(brokers []string, topic string) (*kafka.Writer, error) {
	if len(brokers) == 0 {
		return nil, ErrNoBrokers
	}
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}, nil
}

func NewPublisher(writer MessageWriter, topic string, logger *slog.Logger) *Publisher {
	return &Publisher{
		writer: writer,
		topic:  topic,
		logger: logger.With("component", "kafka_publisher", "topic", topic),
	}
}

// Publish writes all messages in one batch. Either the whole batch is
// acknowledged or an error is returned and the caller keeps it pending.
func (p *Publisher) Publish(ctx context.Context, messages ...ports.OutboxMessage) error {
	if len(messages) == 0 {
		return nil
	}
	batch := make([]kafka.Message, 0, len(messages))
	for _, m := range messages {
		batch = append(batch, toKafkaMessage(m))
	}
	if err := p.writer.WriteMessages(ctx, batch...); err != nil {
		return fmt.Errorf("publish %d messages to %s: %w", len(batch), p.topic, err)
	}
	p.logger.DebugContext(ctx, "messages published", "count", len(batch))
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

func toKafkaMessage(m ports.OutboxMessage) kafka.Message {
	return kafka.Message{
		Key:   []byte(m.AggregateID.String()),
		Value: m.Payload,
		Time:  m.OccurredAt.UTC(),
		Headers: []kafka.Header{
			{Key: EventHeader, Value: []byte(m.Name)},
			{Key: "event_id", Value: []byte(m.ID.String())},
		},
	}
}

// LogPublisher stands in when no broker is configured. It logs each message and
// reports success, so the outbox drains.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.With("component", "log_publisher")}
}

func (p *LogPublisher) Publish(ctx context.Context, messages ...ports.OutboxMessage) error {
	for _, m := range messages {
		p.logger.InfoContext(ctx, "event",
			"event", m.Name,
			"event_id", m.ID.String(),
			"aggregate_id", m.AggregateID.String(),
		)
	}
	return nil
}
