package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Shivendra-1710/fraud-detection-system/internal/domain/event"
	"github.com/Shivendra-1710/fraud-detection-system/pkg/kafka"
)

// KafkaPublisher implements port.EventPublisher on top of the shared Kafka
// producer. Verdict and high-risk events land on a single topic; the
// alerting/dashboard consumers filter by the event_type header.
type KafkaPublisher struct {
	producer *kafka.Producer
	topic    string
	logger   *slog.Logger
}

// NewKafkaPublisher creates a publisher writing to the given topic.
func NewKafkaPublisher(producer *kafka.Producer, topic string, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

// Publish serializes domain events and sends them keyed by aggregate ID, so
// all events of one verdict stay ordered within a partition.
func (p *KafkaPublisher) Publish(ctx context.Context, events ...interface{}) error {
	messages := make([]kafka.Message, 0, len(events))
	for _, evt := range events {
		domainEvt, ok := evt.(event.DomainEvent)
		if !ok {
			return fmt.Errorf("unsupported event type %T", evt)
		}

		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("failed to marshal event %s: %w", domainEvt.EventType(), err)
		}

		messages = append(messages, kafka.Message{
			Key:   []byte(domainEvt.AggregateID().String()),
			Value: payload,
			Headers: map[string]string{
				"event_type": domainEvt.EventType(),
			},
		})

		p.logger.Debug("publishing event",
			slog.String("event_type", domainEvt.EventType()),
			slog.String("topic", p.topic),
			slog.Int("payload_size", len(payload)),
		)
	}

	if err := p.producer.Publish(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("failed to publish events: %w", err)
	}
	return nil
}
