package ml

import (
	"context"
	"fmt"
	"math"

	"github.com/Shivendra-1710/fraud-detection-system/internal/domain/feature"
	"github.com/Shivendra-1710/fraud-detection-system/internal/domain/port"
)

// Raw anomaly score caps, matching the offline training pipeline.
const (
	q99RatioCap   = 20.0
	zScoreCap     = 30.0
	negativeValue = 10.0
	rawScoreScale = 50.0
	q99RatioFloor = 1.5
)

// StatsAnomalyModel is the unsupervised detector adapter. It compares each
// feature against the training-data distribution shipped in the artifact and
// flags values far outside what the classifier ever saw.
type StatsAnomalyModel struct {
	name    string
	version string
	schema  feature.Schema
	stats   []FeatureStat
}

func newStatsAnomalyModel(a modelArtifact, version string) (*StatsAnomalyModel, error) {
	if len(a.Schema.Features) == 0 {
		return nil, fmt.Errorf("schema has no features")
	}
	if len(a.Stats) == 0 {
		return nil, fmt.Errorf("anomaly artifact carries no feature statistics")
	}
	known := make(map[string]struct{}, len(a.Schema.Features))
	for _, f := range a.Schema.Features {
		known[f] = struct{}{}
	}
	for _, s := range a.Stats {
		if _, ok := known[s.Feature]; !ok {
			return nil, fmt.Errorf("statistics reference unknown feature %q", s.Feature)
		}
	}
	return &StatsAnomalyModel{
		name:    a.Name,
		version: version,
		schema:  a.Schema,
		stats:   a.Stats,
	}, nil
}

func (m *StatsAnomalyModel) Name() string           { return m.name }
func (m *StatsAnomalyModel) Version() string        { return m.version }
func (m *StatsAnomalyModel) Kind() port.ModelKind   { return port.ModelKindAnomaly }
func (m *StatsAnomalyModel) Schema() feature.Schema { return m.schema }

// Score accumulates penalties for values above the 99th percentile, values
// beyond the observed maximum and negative values, then normalizes the raw
// score to [0,1].
func (m *StatsAnomalyModel) Score(ctx context.Context, v feature.Vector) (port.ModelOutput, error) {
	if err := ctx.Err(); err != nil {
		return port.ModelOutput{}, err
	}
	if !v.Schema.Equal(m.schema) {
		return port.ModelOutput{}, &port.SchemaMismatchError{
			Model: m.name,
			Want:  m.schema.Name + "/" + m.schema.Version,
			Got:   v.Schema.Name + "/" + v.Schema.Version,
		}
	}

	var raw float64
	for _, s := range m.stats {
		value, ok := v.Value(s.Feature)
		if !ok {
			return port.ModelOutput{}, &port.SchemaMismatchError{
				Model: m.name,
				Want:  s.Feature,
				Got:   "missing feature",
			}
		}
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return port.ModelOutput{}, &port.ModelInferenceError{
				Model: m.name,
				Err:   fmt.Errorf("feature %s is not a finite number", s.Feature),
			}
		}

		if q99 := math.Max(s.Q99, 1); value > s.Q99 {
			if ratio := value / q99; ratio > q99RatioFloor {
				raw += math.Min(ratio*2, q99RatioCap)
			}
		}
		if value > s.Max {
			z := (value - s.Mean) / math.Max(s.Std, 1)
			raw += math.Min(math.Abs(z), zScoreCap)
		}
		if value < 0 {
			raw += negativeValue
		}
	}

	score := math.Min(raw/rawScoreScale, 1)

	return port.ModelOutput{
		Model:   m.name,
		Version: m.version,
		Kind:    port.ModelKindAnomaly,
		Score:   score,
	}, nil
}
