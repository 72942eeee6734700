package valueobject

import "fmt"

// Decision is an immutable value object representing the recommended handling
// of a scored transaction.
type Decision struct {
	value string
}

var (
	DecisionApprove = Decision{value: "APPROVE"}
	DecisionReview  = Decision{value: "REVIEW"}
	DecisionDecline = Decision{value: "DECLINE"}
)

// DecisionFromString reconstructs a Decision from its string representation.
func DecisionFromString(s string) (Decision, error) {
	switch s {
	case "APPROVE":
		return DecisionApprove, nil
	case "REVIEW":
		return DecisionReview, nil
	case "DECLINE":
		return DecisionDecline, nil
	default:
		return Decision{}, fmt.Errorf("invalid decision: %s", s)
	}
}

// DecisionFromCategory maps the final risk category to a decision.
// LOW approves, MEDIUM and HIGH go to manual review, CRITICAL declines.
func DecisionFromCategory(c RiskCategory) Decision {
	switch {
	case c.Equal(CategoryCritical):
		return DecisionDecline
	case c.Equal(CategoryHigh), c.Equal(CategoryMedium):
		return DecisionReview
	default:
		return DecisionApprove
	}
}

// String returns the string representation.
func (d Decision) String() string {
	return d.value
}

// IsZero returns true if the decision has not been set.
func (d Decision) IsZero() bool {
	return d.value == ""
}

// Equal checks equality with another Decision.
func (d Decision) Equal(other Decision) bool {
	return d.value == other.value
}

// IsDeclined returns true if the decision is DECLINE.
func (d Decision) IsDeclined() bool {
	return d.value == "DECLINE"
}
