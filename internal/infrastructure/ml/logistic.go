package ml

import (
	"context"
	"fmt"
	"math"

	"github.com/Shivendra-1710/fraud-detection-system/internal/domain/feature"
	"github.com/Shivendra-1710/fraud-detection-system/internal/domain/port"
)

// LogisticModel is the supervised classifier adapter. The artifact carries the
// trained coefficients together with the standardization parameters the model
// was fitted with, so scoring reproduces the training-time transform exactly.
type LogisticModel struct {
	name    string
	version string
	schema  feature.Schema
	weights []float64
	bias    float64
	means   []float64
	stds    []float64
}

func newLogisticModel(a modelArtifact, version string) (*LogisticModel, error) {
	n := len(a.Schema.Features)
	if n == 0 {
		return nil, fmt.Errorf("schema has no features")
	}
	if len(a.Weights) != n {
		return nil, fmt.Errorf("expected %d weights, got %d", n, len(a.Weights))
	}
	if len(a.Means) != n || len(a.Stds) != n {
		return nil, fmt.Errorf("standardization parameters must cover all %d features", n)
	}
	return &LogisticModel{
		name:    a.Name,
		version: version,
		schema:  a.Schema,
		weights: a.Weights,
		bias:    a.Bias,
		means:   a.Means,
		stds:    a.Stds,
	}, nil
}

func (m *LogisticModel) Name() string           { return m.name }
func (m *LogisticModel) Version() string        { return m.version }
func (m *LogisticModel) Kind() port.ModelKind   { return port.ModelKindSupervised }
func (m *LogisticModel) Schema() feature.Schema { return m.schema }

// Score standardizes the vector and applies the logistic function, yielding a
// fraud probability in [0,1].
func (m *LogisticModel) Score(ctx context.Context, v feature.Vector) (port.ModelOutput, error) {
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
	if len(v.Values) != len(m.weights) {
		return port.ModelOutput{}, &port.SchemaMismatchError{
			Model: m.name,
			Want:  fmt.Sprintf("%d features", len(m.weights)),
			Got:   fmt.Sprintf("%d features", len(v.Values)),
		}
	}

	z := m.bias
	for i, x := range v.Values {
		std := m.stds[i]
		if std <= 0 {
			std = 1
		}
		z += m.weights[i] * ((x - m.means[i]) / std)
	}

	p := 1 / (1 + math.Exp(-z))
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return port.ModelOutput{}, &port.ModelInferenceError{
			Model: m.name,
			Err:   fmt.Errorf("logistic output is not a finite number (z=%v)", z),
		}
	}

	return port.ModelOutput{
		Model:   m.name,
		Version: m.version,
		Kind:    port.ModelKindSupervised,
		Score:   p,
	}, nil
}
