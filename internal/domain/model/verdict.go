package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Shivendra-1710/fraud-detection-system/internal/domain/event"
	"github.com/Shivendra-1710/fraud-detection-system/internal/domain/valueobject"
)

// RiskVerdict is the aggregate root for transaction risk assessments. It is
// created per transaction, finalized once, and returned to the caller.
type RiskVerdict struct {
	assessedAt    time.Time
	createdAt     time.Time
	updatedAt     time.Time
	amount        decimal.Decimal
	currency      string
	modelVersion  string
	reasons       []string
	domainEvents  []event.DomainEvent
	riskScore     float64
	confidence    float64
	category      valueobject.RiskCategory
	decision      valueobject.Decision
	version       int
	id            uuid.UUID
	transactionID uuid.UUID
	accountID     uuid.UUID
}

// NewRiskVerdict creates an unscored verdict for a validated transaction.
// Call Finalize to record the scoring outcome.
func NewRiskVerdict(tx Transaction) *RiskVerdict {
	now := time.Now().UTC()
	return &RiskVerdict{
		id:            uuid.New(),
		transactionID: tx.ID(),
		accountID:     tx.SenderAccount(),
		amount:        tx.Amount(),
		currency:      tx.Currency(),
		category:      valueobject.CategoryLow,
		reasons:       make([]string, 0),
		version:       1,
		createdAt:     now,
		updatedAt:     now,
	}
}

// Finalize records the scoring outcome on the verdict and emits domain
// events. The score must already be normalized to [0,1]; the category may sit
// above the score's own bucket when rules raised it.
func (v *RiskVerdict) Finalize(
	riskScore float64,
	category valueobject.RiskCategory,
	decision valueobject.Decision,
	reasons []string,
	confidence float64,
	modelVersion string,
) error {
	if riskScore < 0 || riskScore > 1 {
		return fmt.Errorf("risk score must be in [0,1], got %v", riskScore)
	}
	if category.IsZero() {
		return fmt.Errorf("category is required")
	}
	if decision.IsZero() {
		return fmt.Errorf("decision is required")
	}
	if reasons == nil {
		reasons = make([]string, 0)
	}

	v.riskScore = riskScore
	v.category = category
	v.decision = decision
	v.reasons = reasons
	v.confidence = confidence
	v.modelVersion = modelVersion
	v.assessedAt = time.Now().UTC()
	v.updatedAt = v.assessedAt
	v.version++

	v.domainEvents = append(v.domainEvents, event.VerdictRecorded{
		VerdictID:     v.id,
		TransactionID: v.transactionID,
		AccountID:     v.accountID,
		RiskScore:     v.riskScore,
		Category:      v.category.String(),
		Decision:      v.decision.String(),
		Reasons:       v.reasons,
		ModelVersion:  v.modelVersion,
		AssessedAt:    v.assessedAt,
	})

	if v.category.AtLeast(valueobject.CategoryHigh) {
		v.domainEvents = append(v.domainEvents, event.HighRiskDetected{
			VerdictID:     v.id,
			TransactionID: v.transactionID,
			AccountID:     v.accountID,
			RiskScore:     v.riskScore,
			Category:      v.category.String(),
			Reasons:       v.reasons,
			DetectedAt:    v.assessedAt,
		})
	}

	return nil
}

// ReconstructVerdict rebuilds a RiskVerdict from persisted data. No
// validation runs and no events are emitted.
func ReconstructVerdict(
	id, transactionID, accountID uuid.UUID,
	amount decimal.Decimal,
	currency string,
	riskScore float64,
	category valueobject.RiskCategory,
	decision valueobject.Decision,
	reasons []string,
	confidence float64,
	modelVersion string,
	assessedAt time.Time,
	version int,
	createdAt, updatedAt time.Time,
) *RiskVerdict {
	return &RiskVerdict{
		id:            id,
		transactionID: transactionID,
		accountID:     accountID,
		amount:        amount,
		currency:      currency,
		riskScore:     riskScore,
		category:      category,
		decision:      decision,
		reasons:       reasons,
		confidence:    confidence,
		modelVersion:  modelVersion,
		assessedAt:    assessedAt,
		version:       version,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		domainEvents:  make([]event.DomainEvent, 0),
	}
}

func (v *RiskVerdict) ID() uuid.UUID                      { return v.id }
func (v *RiskVerdict) TransactionID() uuid.UUID           { return v.transactionID }
func (v *RiskVerdict) AccountID() uuid.UUID               { return v.accountID }
func (v *RiskVerdict) Amount() decimal.Decimal            { return v.amount }
func (v *RiskVerdict) Currency() string                   { return v.currency }
func (v *RiskVerdict) RiskScore() float64                 { return v.riskScore }
func (v *RiskVerdict) Category() valueobject.RiskCategory { return v.category }
func (v *RiskVerdict) Decision() valueobject.Decision     { return v.decision }
func (v *RiskVerdict) Reasons() []string                  { return v.reasons }
func (v *RiskVerdict) Confidence() float64                { return v.confidence }
func (v *RiskVerdict) ModelVersion() string               { return v.modelVersion }
func (v *RiskVerdict) AssessedAt() time.Time              { return v.assessedAt }
func (v *RiskVerdict) Version() int                       { return v.version }
func (v *RiskVerdict) CreatedAt() time.Time               { return v.createdAt }
func (v *RiskVerdict) UpdatedAt() time.Time               { return v.updatedAt }

// DomainEvents returns all accumulated domain events and clears them.
func (v *RiskVerdict) DomainEvents() []event.DomainEvent {
	evts := v.domainEvents
	v.domainEvents = make([]event.DomainEvent, 0)
	return evts
}
