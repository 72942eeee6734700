package valueobject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shivendra-1710/fraud-detection-system/internal/domain/valueobject"
)

func TestCategoryFromScore_Boundaries(t *testing.T) {
	thresholds := valueobject.DefaultThresholds

	tests := []struct {
		score float64
		want  valueobject.RiskCategory
	}{
		{0.0, valueobject.CategoryLow},
		{0.29, valueobject.CategoryLow},
		{0.30, valueobject.CategoryMedium},
		{0.59, valueobject.CategoryMedium},
		{0.60, valueobject.CategoryHigh},
		{0.84, valueobject.CategoryHigh},
		{0.85, valueobject.CategoryCritical},
		{1.0, valueobject.CategoryCritical},
	}

	for _, tt := range tests {
		got := valueobject.CategoryFromScore(tt.score, thresholds)
		assert.True(t, got.Equal(tt.want), "score %v: got %s, want %s", tt.score, got, tt.want)
	}
}

func TestCategoryFromScore_ExactlyOneCategory(t *testing.T) {
	// Every score in [0,1] maps to exactly one category; sweeping the range
	// must never produce a zero category and must be monotonic.
	thresholds := valueobject.DefaultThresholds

	prevRank := 0
	for i := 0; i <= 1000; i++ {
		score := float64(i) / 1000
		c := valueobject.CategoryFromScore(score, thresholds)
		require.False(t, c.IsZero(), "score %v produced no category", score)
		require.GreaterOrEqual(t, c.Rank(), prevRank, "category rank decreased at score %v", score)
		prevRank = c.Rank()
	}
}

func TestThresholds_Validate(t *testing.T) {
	assert.NoError(t, valueobject.DefaultThresholds.Validate())

	assert.Error(t, valueobject.Thresholds{Medium: 0, High: 0.5, Critical: 0.9}.Validate())
	assert.Error(t, valueobject.Thresholds{Medium: 0.6, High: 0.5, Critical: 0.9}.Validate())
	assert.Error(t, valueobject.Thresholds{Medium: 0.3, High: 0.9, Critical: 0.9}.Validate())
	assert.Error(t, valueobject.Thresholds{Medium: 0.3, High: 0.6, Critical: 1.1}.Validate())
}

func TestCategoryFromString(t *testing.T) {
	for _, s := range []string{"LOW", "MEDIUM", "HIGH", "CRITICAL"} {
		c, err := valueobject.CategoryFromString(s)
		require.NoError(t, err)
		assert.Equal(t, s, c.String())
	}

	_, err := valueobject.CategoryFromString("EXTREME")
	assert.Error(t, err)

	_, err = valueobject.CategoryFromString("low")
	assert.Error(t, err)
}

func TestCategoryOrdering(t *testing.T) {
	assert.True(t, valueobject.CategoryCritical.AtLeast(valueobject.CategoryHigh))
	assert.True(t, valueobject.CategoryHigh.AtLeast(valueobject.CategoryHigh))
	assert.False(t, valueobject.CategoryLow.AtLeast(valueobject.CategoryMedium))

	assert.True(t, valueobject.CategoryLow.Max(valueobject.CategoryHigh).Equal(valueobject.CategoryHigh))
	assert.True(t, valueobject.CategoryHigh.Max(valueobject.CategoryMedium).Equal(valueobject.CategoryHigh))
}

func TestDecisionFromCategory(t *testing.T) {
	tests := []struct {
		category valueobject.RiskCategory
		want     valueobject.Decision
	}{
		{valueobject.CategoryLow, valueobject.DecisionApprove},
		{valueobject.CategoryMedium, valueobject.DecisionReview},
		{valueobject.CategoryHigh, valueobject.DecisionReview},
		{valueobject.CategoryCritical, valueobject.DecisionDecline},
	}

	for _, tt := range tests {
		got := valueobject.DecisionFromCategory(tt.category)
		assert.True(t, got.Equal(tt.want), "category %s: got %s, want %s", tt.category, got, tt.want)
	}

	assert.True(t, valueobject.DecisionFromCategory(valueobject.CategoryCritical).IsDeclined())
	assert.False(t, valueobject.DecisionFromCategory(valueobject.CategoryHigh).IsDeclined())
}

func TestDecisionFromString(t *testing.T) {
	d, err := valueobject.DecisionFromString("REVIEW")
	require.NoError(t, err)
	assert.Equal(t, "REVIEW", d.String())

	_, err = valueobject.DecisionFromString("ESCALATE")
	assert.Error(t, err)
}
