package event

import (
	"time"

	"github.com/google/uuid"
)

const (
	// EventTypeVerdictRecorded is emitted when a transaction risk verdict is
	// finalized.
	EventTypeVerdictRecorded = "risk.verdict.recorded"

	// EventTypeHighRiskDetected is emitted for HIGH and CRITICAL verdicts so
	// the alerting/dashboard collaborator can react.
	EventTypeHighRiskDetected = "risk.high_risk.detected"
)

// DomainEvent is implemented by every event the verdict aggregate emits.
type DomainEvent interface {
	EventType() string
	AggregateID() uuid.UUID
}

// VerdictRecorded is published when a risk verdict has been produced for a
// transaction.
type VerdictRecorded struct {
	VerdictID     uuid.UUID `json:"verdict_id"`
	TransactionID uuid.UUID `json:"transaction_id"`
	AccountID     uuid.UUID `json:"account_id"`
	RiskScore     float64   `json:"risk_score"`
	Category      string    `json:"category"`
	Decision      string    `json:"decision"`
	Reasons       []string  `json:"reasons"`
	ModelVersion  string    `json:"model_version"`
	AssessedAt    time.Time `json:"assessed_at"`
}

// EventType returns the event type identifier.
func (e VerdictRecorded) EventType() string {
	return EventTypeVerdictRecorded
}

// AggregateID returns the verdict ID as the aggregate identifier.
func (e VerdictRecorded) AggregateID() uuid.UUID {
	return e.VerdictID
}

// HighRiskDetected is published when a transaction lands in the HIGH or
// CRITICAL category.
type HighRiskDetected struct {
	VerdictID     uuid.UUID `json:"verdict_id"`
	TransactionID uuid.UUID `json:"transaction_id"`
	AccountID     uuid.UUID `json:"account_id"`
	RiskScore     float64   `json:"risk_score"`
	Category      string    `json:"category"`
	Reasons       []string  `json:"reasons"`
	DetectedAt    time.Time `json:"detected_at"`
}

// EventType returns the event type identifier.
func (e HighRiskDetected) EventType() string {
	return EventTypeHighRiskDetected
}

// AggregateID returns the verdict ID as the aggregate identifier.
func (e HighRiskDetected) AggregateID() uuid.UUID {
	return e.VerdictID
}
