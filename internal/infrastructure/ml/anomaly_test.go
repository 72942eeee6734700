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

func anomalyArtifact() modelArtifact {
	return modelArtifact{
		Name:   "stats",
		Kind:   string(port.ModelKindAnomaly),
		Schema: feature.SchemaV1(),
		Stats: []FeatureStat{
			{Feature: feature.FeatureAmount, Mean: 100, Std: 50, Max: 1000, Q99: 500},
			{Feature: feature.FeatureRecentCount, Mean: 3, Std: 2, Max: 40, Q99: 15},
		},
	}
}

func vectorWith(amount, recentCount float64) feature.Vector {
	values := make([]float64, 8)
	values[0] = amount
	values[4] = recentCount
	return feature.Vector{Schema: feature.SchemaV1(), Values: values}
}

func TestNewStatsAnomalyModel_Validation(t *testing.T) {
	_, err := newStatsAnomalyModel(anomalyArtifact(), "v1")
	require.NoError(t, err)

	bad := anomalyArtifact()
	bad.Stats = nil
	_, err = newStatsAnomalyModel(bad, "v1")
	assert.Error(t, err)

	bad = anomalyArtifact()
	bad.Stats = append(bad.Stats, FeatureStat{Feature: "ghost"})
	_, err = newStatsAnomalyModel(bad, "v1")
	assert.Error(t, err)
}

func TestStatsAnomalyModel_TypicalValuesScoreLow(t *testing.T) {
	m, err := newStatsAnomalyModel(anomalyArtifact(), "v1")
	require.NoError(t, err)

	out, err := m.Score(context.Background(), vectorWith(120, 4))
	require.NoError(t, err)
	assert.Equal(t, port.ModelKindAnomaly, out.Kind)
	assert.Equal(t, 0.0, out.Score)
}

func TestStatsAnomalyModel_ExtremeValuesScoreHigh(t *testing.T) {
	m, err := newStatsAnomalyModel(anomalyArtifact(), "v1")
	require.NoError(t, err)

	// Far above q99 and the observed max on both tracked features.
	out, err := m.Score(context.Background(), vectorWith(50000, 500))
	require.NoError(t, err)
	assert.Greater(t, out.Score, 0.9)
	assert.LessOrEqual(t, out.Score, 1.0)
}

func TestStatsAnomalyModel_AboveQ99(t *testing.T) {
	m, err := newStatsAnomalyModel(anomalyArtifact(), "v1")
	require.NoError(t, err)

	// amount=900: above q99 (ratio 1.8 > 1.5, penalty 3.6) but below max.
	out, err := m.Score(context.Background(), vectorWith(900, 4))
	require.NoError(t, err)
	assert.InDelta(t, 3.6/rawScoreScale, out.Score, 1e-9)
}

func TestStatsAnomalyModel_NegativeValues(t *testing.T) {
	m, err := newStatsAnomalyModel(anomalyArtifact(), "v1")
	require.NoError(t, err)

	out, err := m.Score(context.Background(), vectorWith(-10, 4))
	require.NoError(t, err)
	assert.InDelta(t, negativeValue/rawScoreScale, out.Score, 1e-9)
}

func TestStatsAnomalyModel_NonFiniteFeature(t *testing.T) {
	m, err := newStatsAnomalyModel(anomalyArtifact(), "v1")
	require.NoError(t, err)

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := m.Score(context.Background(), vectorWith(v, 4))
		require.Error(t, err)

		var infErr *port.ModelInferenceError
		assert.True(t, errors.As(err, &infErr))
	}
}

func TestStatsAnomalyModel_SchemaMismatch(t *testing.T) {
	m, err := newStatsAnomalyModel(anomalyArtifact(), "v1")
	require.NoError(t, err)

	vec := feature.Vector{
		Schema: feature.Schema{Name: "other", Version: "v1", Features: []string{"amount"}},
		Values: []float64{1},
	}
	_, err = m.Score(context.Background(), vec)
	require.Error(t, err)

	var mismatch *port.SchemaMismatchError
	assert.True(t, errors.As(err, &mismatch))
}
