package ml

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shivendra-1710/fraud-detection-system/internal/domain/feature"
	"github.com/Shivendra-1710/fraud-detection-system/internal/domain/port"
)

func logisticArtifact() modelArtifact {
	schema := feature.SchemaV1()
	n := len(schema.Features)

	weights := make([]float64, n)
	means := make([]float64, n)
	stds := make([]float64, n)
	for i := range stds {
		stds[i] = 1
	}
	// Only the amount feature carries weight, keeping the math checkable.
	weights[0] = 1

	return modelArtifact{
		Name:    "logreg",
		Kind:    string(port.ModelKindSupervised),
		Schema:  schema,
		Weights: weights,
		Bias:    0,
		Means:   means,
		Stds:    stds,
	}
}

func TestNewLogisticModel_Validation(t *testing.T) {
	a := logisticArtifact()
	_, err := newLogisticModel(a, "v1")
	require.NoError(t, err)

	bad := logisticArtifact()
	bad.Weights = bad.Weights[:3]
	_, err = newLogisticModel(bad, "v1")
	assert.Error(t, err)

	bad = logisticArtifact()
	bad.Means = nil
	_, err = newLogisticModel(bad, "v1")
	assert.Error(t, err)

	bad = logisticArtifact()
	bad.Schema.Features = nil
	_, err = newLogisticModel(bad, "v1")
	assert.Error(t, err)
}

func TestLogisticModel_Score(t *testing.T) {
	m, err := newLogisticModel(logisticArtifact(), "v1")
	require.NoError(t, err)

	vec := feature.Vector{Schema: feature.SchemaV1(), Values: make([]float64, 8)}

	// z = 0 at the mean, so p = 0.5.
	out, err := m.Score(context.Background(), vec)
	require.NoError(t, err)
	assert.Equal(t, port.ModelKindSupervised, out.Kind)
	assert.InDelta(t, 0.5, out.Score, 1e-9)

	// Larger amounts push the probability up; the score stays in [0,1].
	prev := out.Score
	for _, amount := range []float64{1, 2, 5, 20} {
		vec.Values[0] = amount
		out, err = m.Score(context.Background(), vec)
		require.NoError(t, err)
		assert.Greater(t, out.Score, prev)
		assert.LessOrEqual(t, out.Score, 1.0)
		prev = out.Score
	}
}

func TestLogisticModel_SchemaMismatch(t *testing.T) {
	m, err := newLogisticModel(logisticArtifact(), "v1")
	require.NoError(t, err)

	vec := feature.Vector{
		Schema: feature.Schema{Name: "txn_features", Version: "v2", Features: []string{"amount"}},
		Values: []float64{100},
	}

	_, err = m.Score(context.Background(), vec)
	require.Error(t, err)

	var mismatch *port.SchemaMismatchError
	assert.True(t, errors.As(err, &mismatch))
}

func TestLogisticModel_CanceledContext(t *testing.T) {
	m, err := newLogisticModel(logisticArtifact(), "v1")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = m.Score(ctx, feature.Vector{Schema: feature.SchemaV1(), Values: make([]float64, 8)})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLogisticModel_ZeroStdTreatedAsOne(t *testing.T) {
	a := logisticArtifact()
	a.Stds[0] = 0
	m, err := newLogisticModel(a, "v1")
	require.NoError(t, err)

	vec := feature.Vector{Schema: feature.SchemaV1(), Values: make([]float64, 8)}
	vec.Values[0] = 2

	out, err := m.Score(context.Background(), vec)
	require.NoError(t, err)
	// Degenerate std falls back to 1: z = 2, p = sigmoid(2).
	assert.InDelta(t, 1/(1+math.Exp(-2)), out.Score, 1e-9)
}
