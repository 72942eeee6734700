// Package ml loads trained model artifacts and adapts them to the domain's
// uniform scoring contract. Artifacts are opaque to the rest of the service:
// loaded once at startup, read-only afterwards.
package ml

import (
	"fmt"

	"github.com/Shivendra-1710/fraud-detection-system/internal/domain/feature"
	"github.com/Shivendra-1710/fraud-detection-system/internal/domain/port"
)

// FeatureStat carries the training-data distribution of one feature, exported
// by the offline training pipeline.
type FeatureStat struct {
	Feature string  `json:"feature"`
	Mean    float64 `json:"mean"`
	Std     float64 `json:"std"`
	Max     float64 `json:"max"`
	Q99     float64 `json:"q99"`
}

// modelArtifact is the on-disk form of one trained model inside a bundle.
type modelArtifact struct {
	Name   string         `json:"name"`
	Kind   string         `json:"kind"`
	Schema feature.Schema `json:"schema"`

	// Supervised classifier parameters.
	Weights []float64 `json:"weights,omitempty"`
	Bias    float64   `json:"bias,omitempty"`
	Means   []float64 `json:"means,omitempty"`
	Stds    []float64 `json:"stds,omitempty"`

	// Anomaly detector parameters.
	Stats []FeatureStat `json:"stats,omitempty"`
}

// Bundle is a versioned set of trained models sharing one feature schema.
type Bundle struct {
	Version string          `json:"version"`
	Models  []modelArtifact `json:"models"`
}

// Build validates the bundle and adapts every artifact into a scoring model.
// A malformed artifact fails here, at startup, rather than misscoring later.
func (b Bundle) Build() ([]port.Model, error) {
	if b.Version == "" {
		return nil, fmt.Errorf("artifact bundle has no version")
	}
	if len(b.Models) == 0 {
		return nil, fmt.Errorf("artifact bundle %s contains no models", b.Version)
	}

	models := make([]port.Model, 0, len(b.Models))
	for _, a := range b.Models {
		switch port.ModelKind(a.Kind) {
		case port.ModelKindSupervised:
			m, err := newLogisticModel(a, b.Version)
			if err != nil {
				return nil, fmt.Errorf("artifact %s: %w", a.Name, err)
			}
			models = append(models, m)
		case port.ModelKindAnomaly:
			m, err := newStatsAnomalyModel(a, b.Version)
			if err != nil {
				return nil, fmt.Errorf("artifact %s: %w", a.Name, err)
			}
			models = append(models, m)
		default:
			return nil, fmt.Errorf("artifact %s: unknown model kind %q", a.Name, a.Kind)
		}
	}
	return models, nil
}
