package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Shivendra-1710/fraud-detection-system/internal/application/dto"
	"github.com/Shivendra-1710/fraud-detection-system/internal/domain/model"
	"github.com/Shivendra-1710/fraud-detection-system/internal/domain/port"
	"github.com/Shivendra-1710/fraud-detection-system/internal/domain/service"
)

// AssessTransaction is the use case for scoring one transaction: it parses
// and validates the raw payload, runs the decision pipeline, persists the
// verdict and publishes the resulting domain events.
type AssessTransaction struct {
	pipelines      map[string]*service.DecisionPipeline
	defaultVersion string
	repo           port.VerdictRepository
	publisher      port.EventPublisher
	logger         *slog.Logger
}

// NewAssessTransaction creates the use case over one pipeline per loaded
// model version. defaultVersion is used when a request names no version.
func NewAssessTransaction(
	pipelines map[string]*service.DecisionPipeline,
	defaultVersion string,
	repo port.VerdictRepository,
	publisher port.EventPublisher,
	logger *slog.Logger,
) (*AssessTransaction, error) {
	if len(pipelines) == 0 {
		return nil, fmt.Errorf("at least one pipeline is required")
	}
	if _, ok := pipelines[defaultVersion]; !ok {
		return nil, fmt.Errorf("default model version %q has no loaded pipeline", defaultVersion)
	}
	return &AssessTransaction{
		pipelines:      pipelines,
		defaultVersion: defaultVersion,
		repo:           repo,
		publisher:      publisher,
		logger:         logger,
	}, nil
}

// Execute runs the full scoring flow. Stage failures come back as
// *service.PipelineError; the validation stage always runs before any model
// work.
func (uc *AssessTransaction) Execute(ctx context.Context, req dto.AssessTransactionRequest) (dto.VerdictResponse, error) {
	tx, err := uc.parse(req)
	if err != nil {
		return dto.VerdictResponse{}, &service.PipelineError{Stage: service.StageValidation, Err: err}
	}

	version := req.ModelVersion
	if version == "" {
		version = uc.defaultVersion
	}
	pipeline, ok := uc.pipelines[version]
	if !ok {
		return dto.VerdictResponse{}, &service.PipelineError{
			Stage: service.StageValidation,
			Err:   fmt.Errorf("unknown model version %q", version),
		}
	}

	verdict, err := pipeline.Run(ctx, tx)
	if err != nil {
		return dto.VerdictResponse{}, err
	}

	if err := uc.repo.Save(ctx, verdict); err != nil {
		return dto.VerdictResponse{}, fmt.Errorf("failed to save verdict: %w", err)
	}

	events := verdict.DomainEvents()
	if len(events) > 0 {
		payload := make([]interface{}, len(events))
		for i, evt := range events {
			payload[i] = evt
		}
		if err := uc.publisher.Publish(ctx, payload...); err != nil {
			return dto.VerdictResponse{}, fmt.Errorf("failed to publish events: %w", err)
		}
	}

	uc.logger.Info("transaction assessed",
		slog.String("transaction_id", verdict.TransactionID().String()),
		slog.String("category", verdict.Category().String()),
		slog.String("decision", verdict.Decision().String()),
	)

	return dto.FromModel(verdict), nil
}

// parse converts the raw payload into a validated domain transaction.
func (uc *AssessTransaction) parse(req dto.AssessTransactionRequest) (model.Transaction, error) {
	var txID uuid.UUID
	if req.TransactionID != "" {
		parsed, err := uuid.Parse(req.TransactionID)
		if err != nil {
			return model.Transaction{}, &model.ValidationError{Field: "transaction_id", Reason: "is not a valid UUID"}
		}
		txID = parsed
	}

	if req.Amount == "" {
		return model.Transaction{}, &model.ValidationError{Field: "amount", Reason: "is required"}
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return model.Transaction{}, &model.ValidationError{Field: "amount", Reason: "is not a valid decimal"}
	}

	if req.SenderAccount == "" {
		return model.Transaction{}, &model.ValidationError{Field: "sender_account", Reason: "is required"}
	}
	sender, err := uuid.Parse(req.SenderAccount)
	if err != nil {
		return model.Transaction{}, &model.ValidationError{Field: "sender_account", Reason: "is not a valid UUID"}
	}

	if req.ReceiverAccount == "" {
		return model.Transaction{}, &model.ValidationError{Field: "receiver_account", Reason: "is required"}
	}
	receiver, err := uuid.Parse(req.ReceiverAccount)
	if err != nil {
		return model.Transaction{}, &model.ValidationError{Field: "receiver_account", Reason: "is not a valid UUID"}
	}

	return model.NewTransaction(
		txID,
		req.Timestamp,
		amount,
		req.Currency,
		sender,
		receiver,
		req.MerchantCategory,
		req.Metadata,
	)
}
