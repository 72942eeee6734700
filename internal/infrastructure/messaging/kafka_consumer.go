package messaging

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/Shivendra-1710/fraud-detection-system/internal/application/dto"
	"github.com/Shivendra-1710/fraud-detection-system/internal/application/usecase"
	"github.com/Shivendra-1710/fraud-detection-system/pkg/kafka"
)

// TransactionConsumer scores transactions streamed by upstream payment
// services, giving the dashboard near-real-time coverage without an extra
// RPC hop. A malformed or unscorable message is logged and skipped; the
// stream keeps flowing.
type TransactionConsumer struct {
	consumer *kafka.Consumer
	logger   *slog.Logger
}

// NewTransactionConsumer wires a consumer on topic that feeds every message
// into the assess use case.
func NewTransactionConsumer(
	cfg kafka.Config,
	topic string,
	assess *usecase.AssessTransaction,
	logger *slog.Logger,
) (*TransactionConsumer, error) {
	handler := func(ctx context.Context, msg kafka.Message) error {
		var req dto.AssessTransactionRequest
		if err := json.Unmarshal(msg.Value, &req); err != nil {
			logger.Warn("skipping malformed transaction message",
				slog.String("key", string(msg.Key)),
				slog.String("error", err.Error()),
			)
			return nil
		}

		if _, err := assess.Execute(ctx, req); err != nil {
			info := dto.ErrorInfoFrom(err)
			logger.Warn("streamed transaction not scored",
				slog.String("transaction_id", req.TransactionID),
				slog.String("stage", info.Stage),
				slog.String("kind", info.Kind),
			)
		}
		return nil
	}

	consumer, err := kafka.NewConsumer(cfg, topic, handler, logger)
	if err != nil {
		return nil, err
	}

	return &TransactionConsumer{
		consumer: consumer,
		logger:   logger,
	}, nil
}

// Start consumes until the context is canceled.
func (c *TransactionConsumer) Start(ctx context.Context) error {
	return c.consumer.Start(ctx)
}

// Close closes the underlying reader.
func (c *TransactionConsumer) Close() error {
	return c.consumer.Close()
}
