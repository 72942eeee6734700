package valueobject

import "fmt"

// RiskCategory is an immutable value object classifying a normalized risk score.
type RiskCategory struct {
	value string
	rank  int
}

var (
	CategoryLow      = RiskCategory{value: "LOW", rank: 1}
	CategoryMedium   = RiskCategory{value: "MEDIUM", rank: 2}
	CategoryHigh     = RiskCategory{value: "HIGH", rank: 3}
	CategoryCritical = RiskCategory{value: "CRITICAL", rank: 4}
)

// CategoryFromString reconstructs a RiskCategory from its string representation.
func CategoryFromString(s string) (RiskCategory, error) {
	switch s {
	case "LOW":
		return CategoryLow, nil
	case "MEDIUM":
		return CategoryMedium, nil
	case "HIGH":
		return CategoryHigh, nil
	case "CRITICAL":
		return CategoryCritical, nil
	default:
		return RiskCategory{}, fmt.Errorf("invalid risk category: %s", s)
	}
}

// Thresholds partitions the [0,1] score range into categories. Boundaries are
// inclusive on the lower end and exclusive on the upper end:
//
//	[0, Medium)        LOW
//	[Medium, High)     MEDIUM
//	[High, Critical)   HIGH
//	[Critical, 1]      CRITICAL
type Thresholds struct {
	Medium   float64
	High     float64
	Critical float64
}

// DefaultThresholds are the deployment defaults; override via scoring policy.
var DefaultThresholds = Thresholds{Medium: 0.30, High: 0.60, Critical: 0.85}

// Validate rejects thresholds that do not form a monotonic partition of [0,1].
func (t Thresholds) Validate() error {
	if t.Medium <= 0 || t.Medium >= t.High {
		return fmt.Errorf("medium threshold %v must be in (0, high)", t.Medium)
	}
	if t.High >= t.Critical {
		return fmt.Errorf("high threshold %v must be below critical %v", t.High, t.Critical)
	}
	if t.Critical > 1 {
		return fmt.Errorf("critical threshold %v must not exceed 1", t.Critical)
	}
	return nil
}

// CategoryFromScore derives the RiskCategory for a normalized score in [0,1].
// Exactly one category applies to any score.
func CategoryFromScore(score float64, t Thresholds) RiskCategory {
	switch {
	case score >= t.Critical:
		return CategoryCritical
	case score >= t.High:
		return CategoryHigh
	case score >= t.Medium:
		return CategoryMedium
	default:
		return CategoryLow
	}
}

// String returns the string representation.
func (c RiskCategory) String() string {
	return c.value
}

// Rank returns the ordering of the category, LOW=1 through CRITICAL=4.
func (c RiskCategory) Rank() int {
	return c.rank
}

// AtLeast reports whether the category is equal to or above other.
func (c RiskCategory) AtLeast(other RiskCategory) bool {
	return c.rank >= other.rank
}

// Max returns the higher of the two categories.
func (c RiskCategory) Max(other RiskCategory) RiskCategory {
	if other.rank > c.rank {
		return other
	}
	return c
}

// IsZero returns true if the category has not been set.
func (c RiskCategory) IsZero() bool {
	return c.value == ""
}

// Equal checks equality with another RiskCategory.
func (c RiskCategory) Equal(other RiskCategory) bool {
	return c.value == other.value
}
