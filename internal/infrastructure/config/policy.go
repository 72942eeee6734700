package config

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/Shivendra-1710/fraud-detection-system/internal/domain/service"
	"github.com/Shivendra-1710/fraud-detection-system/internal/domain/valueobject"
)

// Policy is the YAML scoring policy: blend weights, category thresholds and
// the rule parameters. All numeric thresholds here are deployment
// configuration, not contracts.
type Policy struct {
	Weights struct {
		Supervised float64 `yaml:"supervised"`
		Anomaly    float64 `yaml:"anomaly"`
	} `yaml:"weights"`

	Thresholds struct {
		Medium   float64 `yaml:"medium"`
		High     float64 `yaml:"high"`
		Critical float64 `yaml:"critical"`
	} `yaml:"thresholds"`

	// Significance is the minimum model score that earns a reason code.
	Significance float64 `yaml:"significance"`

	// HighAmountThreshold is a decimal string; amounts above it raise the
	// category to at least MEDIUM.
	HighAmountThreshold string `yaml:"high_amount_threshold"`

	// VelocityMaxRecent raises to at least HIGH when the sender's recent
	// transaction count exceeds it.
	VelocityMaxRecent int `yaml:"velocity_max_recent"`

	// Blocklist holds account UUIDs that force CRITICAL.
	Blocklist []string `yaml:"blocklist"`

	MerchantRisk        map[string]float64 `yaml:"merchant_risk"`
	UnknownMerchantRisk float64            `yaml:"unknown_merchant_risk"`
}

// DefaultPolicy returns the built-in deployment defaults.
func DefaultPolicy() Policy {
	p := Policy{
		Significance:        0.80,
		HighAmountThreshold: "10000",
		VelocityMaxRecent:   20,
		UnknownMerchantRisk: 0.50,
		MerchantRisk: map[string]float64{
			"GROCERY":   0.10,
			"UTILITIES": 0.10,
			"RETAIL":    0.20,
			"TRAVEL":    0.40,
			"GAMBLING":  0.90,
			"CRYPTO":    0.90,
		},
	}
	p.Weights.Supervised = 0.60
	p.Weights.Anomaly = 0.40
	p.Thresholds.Medium = valueobject.DefaultThresholds.Medium
	p.Thresholds.High = valueobject.DefaultThresholds.High
	p.Thresholds.Critical = valueobject.DefaultThresholds.Critical
	return p
}

// LoadPolicy reads the policy file, or returns the defaults when path is
// empty.
func LoadPolicy(path string) (Policy, error) {
	if path == "" {
		return DefaultPolicy(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("read policy file %s: %w", path, err)
	}
	p := DefaultPolicy()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Policy{}, fmt.Errorf("parse policy file %s: %w", path, err)
	}
	return p, nil
}

// BlockedAccounts parses the blocklist entries.
func (p Policy) BlockedAccounts() ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(p.Blocklist))
	for _, raw := range p.Blocklist {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid blocklist entry %q: %w", raw, err)
		}
		out = append(out, id)
	}
	return out, nil
}

// ScorerConfig builds the scorer's aggregation policy. Rule order is fixed:
// blocklist, then high amount, then velocity.
func (p Policy) ScorerConfig() (service.ScorerConfig, error) {
	highAmount, err := decimal.NewFromString(p.HighAmountThreshold)
	if err != nil {
		return service.ScorerConfig{}, fmt.Errorf("invalid high_amount_threshold %q: %w", p.HighAmountThreshold, err)
	}
	blocked, err := p.BlockedAccounts()
	if err != nil {
		return service.ScorerConfig{}, err
	}

	return service.ScorerConfig{
		Weights: service.Weights{
			Supervised: p.Weights.Supervised,
			Anomaly:    p.Weights.Anomaly,
		},
		Thresholds: valueobject.Thresholds{
			Medium:   p.Thresholds.Medium,
			High:     p.Thresholds.High,
			Critical: p.Thresholds.Critical,
		},
		Significance: p.Significance,
		Rules: []service.Rule{
			service.BlocklistRule(blocked),
			service.HighAmountRule(highAmount, valueobject.CategoryMedium),
			service.VelocityRule(p.VelocityMaxRecent, valueobject.CategoryHigh),
		},
	}, nil
}
