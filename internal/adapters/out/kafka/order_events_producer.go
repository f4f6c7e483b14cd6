// Package kafka mirrors order notifications to a Kafka topic so downstream
// consumers can replay them. Messages are keyed by order id, which keeps
// every event of one order on one partition.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"
)

var ErrProducerClosed = errors.New("order events producer is closed")

// Writer is the subset of *kafka.Writer the producer relies on.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Envelope is the JSON value of every mirrored message.
type Envelope struct {
	Event      string    `json:"event"`
	OrderID    string    `json:"order_id"`
	Data       any       `json:"data"`
	OccurredAt time.Time `json:"occurred_at"`
}

type OrderEventsProducer struct {
	writer Writer
	topic  string
	now    func() time.Time
	closed atomic.Bool
}

// NewOrderEventsProducer builds an asynchronous writer: WriteMessages returns
// once the message is queued and delivery errors are logged on completion.
func NewOrderEventsProducer(brokers []string, topic string, logger *slog.Logger) *OrderEventsProducer {
	log := logger.With("component", "kafka_order_events", "topic", topic)
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				log.Error("kafka delivery failed", "messages", len(messages), "error", err)
			}
		},
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			log.Error(fmt.Sprintf(msg, args...))
		}),
	}
	return NewOrderEventsProducerWithWriter(writer, topic)
}

// NewOrderEventsProducerWithWriter wraps an existing writer.
func NewOrderEventsProducerWithWriter(writer Writer, topic string) *OrderEventsProducer {
	return &OrderEventsProducer{writer: writer, topic: topic, now: time.Now}
}

// Mirror publishes one event. It satisfies notification.Mirror.
func (p *OrderEventsProducer) Mirror(ctx context.Context, key, event string, payload any) error {
	if p.closed.Load() {
		return ErrProducerClosed
	}

	value, err := json.Marshal(Envelope{
		Event:      event,
		OrderID:    key,
		Data:       payload,
		OccurredAt: p.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode %s event: %w", event, err)
	}

	msg := kafka.Message{
		Key:     []byte(key),
		Value:   value,
		Headers: []kafka.Header{{Key: "event", Value: []byte(event)}},
	}
	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write %s event to %s: %w", event, p.topic, err)
	}
	return nil
}

// Close flushes pending messages. Calling it twice is safe.
func (p *OrderEventsProducer) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	return p.writer.Close()
}
