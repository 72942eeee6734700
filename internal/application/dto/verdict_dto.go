package dto

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Shivendra-1710/fraud-detection-system/internal/domain/model"
	"github.com/Shivendra-1710/fraud-detection-system/internal/domain/port"
	"github.com/Shivendra-1710/fraud-detection-system/internal/domain/service"
)

// AssessTransactionRequest is the raw inbound scoring payload. Field parsing
// and validation happen inside the use case, as the pipeline's first stage.
type AssessTransactionRequest struct {
	Timestamp        time.Time         `json:"timestamp"`
	Metadata         map[string]string `json:"metadata"`
	TransactionID    string            `json:"transaction_id"`
	Amount           string            `json:"amount"`
	Currency         string            `json:"currency"`
	SenderAccount    string            `json:"sender_account"`
	ReceiverAccount  string            `json:"receiver_account"`
	MerchantCategory string            `json:"merchant_category"`
	// ModelVersion optionally selects one of the loaded model versions.
	ModelVersion string `json:"model_version,omitempty"`
}

// VerdictResponse is the caller-facing verdict.
type VerdictResponse struct {
	AssessedAt    time.Time `json:"assessed_at"`
	CreatedAt     time.Time `json:"created_at"`
	Reasons       []string  `json:"reasons"`
	ID            uuid.UUID `json:"id"`
	TransactionID uuid.UUID `json:"transaction_id"`
	AccountID     uuid.UUID `json:"account_id"`
	Amount        string    `json:"amount"`
	Currency      string    `json:"currency"`
	Category      string    `json:"category"`
	Decision      string    `json:"decision"`
	ModelVersion  string    `json:"model_version"`
	RiskScore     float64   `json:"risk_score"`
	Confidence    float64   `json:"confidence"`
}

// FromModel maps a verdict aggregate to the response DTO.
func FromModel(v *model.RiskVerdict) VerdictResponse {
	return VerdictResponse{
		ID:            v.ID(),
		TransactionID: v.TransactionID(),
		AccountID:     v.AccountID(),
		Amount:        v.Amount().String(),
		Currency:      v.Currency(),
		RiskScore:     v.RiskScore(),
		Category:      v.Category().String(),
		Decision:      v.Decision().String(),
		Reasons:       v.Reasons(),
		Confidence:    v.Confidence(),
		ModelVersion:  v.ModelVersion(),
		AssessedAt:    v.AssessedAt(),
		CreatedAt:     v.CreatedAt(),
	}
}

// GetVerdictRequest looks up a verdict by its own ID or by the original
// transaction ID; exactly one must be set.
type GetVerdictRequest struct {
	VerdictID     uuid.UUID
	TransactionID uuid.UUID
}

// ListAccountVerdictsRequest pages through an account's verdicts.
type ListAccountVerdictsRequest struct {
	AccountID uuid.UUID
	Limit     int
	Offset    int
}

// Error kinds surfaced to callers alongside the failing stage.
const (
	ErrorKindValidation     = "validation"
	ErrorKindSchemaMismatch = "schema_mismatch"
	ErrorKindModelInference = "model_inference"
	ErrorKindTimeout        = "timeout"
	ErrorKindInternal       = "internal"
)

// ErrorInfo is the structured error returned instead of a verdict.
type ErrorInfo struct {
	Stage   string `json:"stage"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// ErrorInfoFrom classifies a pipeline failure into the caller-facing error
// taxonomy.
func ErrorInfoFrom(err error) ErrorInfo {
	info := ErrorInfo{Kind: ErrorKindInternal, Message: err.Error()}

	var pipeErr *service.PipelineError
	if errors.As(err, &pipeErr) {
		info.Stage = pipeErr.Stage
	}

	var validationErr *model.ValidationError
	var schemaErr *port.SchemaMismatchError
	var inferenceErr *port.ModelInferenceError
	switch {
	case errors.As(err, &validationErr):
		info.Kind = ErrorKindValidation
	case errors.As(err, &schemaErr):
		info.Kind = ErrorKindSchemaMismatch
	case errors.Is(err, service.ErrInferenceTimeout):
		info.Kind = ErrorKindTimeout
	case errors.As(err, &inferenceErr):
		info.Kind = ErrorKindModelInference
	case pipeErr != nil && pipeErr.Stage == service.StageValidation:
		info.Kind = ErrorKindValidation
	}

	return info
}
