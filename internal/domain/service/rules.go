package service

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Shivendra-1710/fraud-detection-system/internal/domain/feature"
	"github.com/Shivendra-1710/fraud-detection-system/internal/domain/model"
	"github.com/Shivendra-1710/fraud-detection-system/internal/domain/valueobject"
)

// Reason codes attached to verdicts.
const (
	ReasonHighAmount           = "HIGH_AMOUNT"
	ReasonBlocklistedAccount   = "BLOCKLISTED_ACCOUNT"
	ReasonHighVelocity         = "HIGH_VELOCITY"
	ReasonModelScoreExceeded   = "MODEL_SCORE_EXCEEDED"
	ReasonAnomalyScoreExceeded = "ANOMALY_SCORE_EXCEEDED"
)

// RuleInput is the data a rule predicate may consult.
type RuleInput struct {
	Transaction model.Transaction
	History     feature.History
}

// Rule is a pure predicate→effect pair. When Applies returns true the final
// category is raised to at least Raise and Code is appended to the verdict's
// reasons. Rules never lower the category below the model-derived baseline.
type Rule struct {
	Code    string
	Raise   valueobject.RiskCategory
	Applies func(RuleInput) bool
}

// HighAmountRule raises the category to at least raise when the transaction
// amount exceeds threshold.
func HighAmountRule(threshold decimal.Decimal, raise valueobject.RiskCategory) Rule {
	return Rule{
		Code:  ReasonHighAmount,
		Raise: raise,
		Applies: func(in RuleInput) bool {
			return in.Transaction.Amount().GreaterThan(threshold)
		},
	}
}

// BlocklistRule forces CRITICAL when the sender or receiver account is on the
// blocklist.
func BlocklistRule(accounts []uuid.UUID) Rule {
	blocked := make(map[uuid.UUID]struct{}, len(accounts))
	for _, id := range accounts {
		blocked[id] = struct{}{}
	}
	return Rule{
		Code:  ReasonBlocklistedAccount,
		Raise: valueobject.CategoryCritical,
		Applies: func(in RuleInput) bool {
			if _, ok := blocked[in.Transaction.SenderAccount()]; ok {
				return true
			}
			_, ok := blocked[in.Transaction.ReceiverAccount()]
			return ok
		},
	}
}

// VelocityRule raises the category to at least raise when the sender's recent
// transaction count exceeds maxRecent.
func VelocityRule(maxRecent int, raise valueobject.RiskCategory) Rule {
	return Rule{
		Code:  ReasonHighVelocity,
		Raise: raise,
		Applies: func(in RuleInput) bool {
			return in.History.RecentCount > maxRecent
		},
	}
}
