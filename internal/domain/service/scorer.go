package service

import (
	"fmt"
	"sort"

	"github.com/Shivendra-1710/fraud-detection-system/internal/domain/feature"
	"github.com/Shivendra-1710/fraud-detection-system/internal/domain/model"
	"github.com/Shivendra-1710/fraud-detection-system/internal/domain/port"
	"github.com/Shivendra-1710/fraud-detection-system/internal/domain/valueobject"
)

// Weights controls how model outputs are blended into one score. Both weights
// come from the scoring policy, never from code.
type Weights struct {
	Supervised float64
	Anomaly    float64
}

func (w Weights) forKind(kind port.ModelKind) float64 {
	switch kind {
	case port.ModelKindSupervised:
		return w.Supervised
	case port.ModelKindAnomaly:
		return w.Anomaly
	default:
		return 0
	}
}

// ScorerConfig is the deterministic aggregation policy of the RiskScorer.
type ScorerConfig struct {
	Weights    Weights
	Thresholds valueobject.Thresholds
	// Significance is the minimum normalized model score that earns a reason
	// code on the verdict.
	Significance float64
	// Rules are evaluated in order; each one can only raise the category.
	Rules []Rule
}

// Evaluation is the outcome of combining model outputs with rule overrides.
type Evaluation struct {
	Score      float64
	Category   valueobject.RiskCategory
	Decision   valueobject.Decision
	Reasons    []string
	Confidence float64
}

// RiskScorer blends model outputs via a weighted average and applies the
// configured rule overrides in a fixed order, so results are reproducible.
type RiskScorer struct {
	cfg ScorerConfig
}

// NewRiskScorer validates the aggregation policy and creates a scorer.
func NewRiskScorer(cfg ScorerConfig) (*RiskScorer, error) {
	if err := cfg.Thresholds.Validate(); err != nil {
		return nil, fmt.Errorf("invalid thresholds: %w", err)
	}
	if cfg.Weights.Supervised < 0 || cfg.Weights.Anomaly < 0 {
		return nil, fmt.Errorf("blend weights must be non-negative")
	}
	if cfg.Weights.Supervised+cfg.Weights.Anomaly <= 0 {
		return nil, fmt.Errorf("at least one blend weight must be positive")
	}
	if cfg.Significance < 0 || cfg.Significance > 1 {
		return nil, fmt.Errorf("significance must be in [0,1], got %v", cfg.Significance)
	}
	return &RiskScorer{cfg: cfg}, nil
}

type weightedReason struct {
	code         string
	contribution float64
}

// Evaluate blends the model outputs into a normalized score, derives the
// baseline category from the threshold partition, then applies the rule list.
// Reason codes are ordered by contribution magnitude descending.
func (s *RiskScorer) Evaluate(outputs []port.ModelOutput, tx model.Transaction, hist feature.History) (Evaluation, error) {
	if len(outputs) == 0 {
		return Evaluation{}, fmt.Errorf("no model outputs to evaluate")
	}

	var blended, weightSum float64
	var supervised, anomaly *port.ModelOutput
	for i := range outputs {
		out := outputs[i]
		if out.Score < 0 || out.Score > 1 {
			return Evaluation{}, fmt.Errorf("model %s produced score %v outside [0,1]", out.Model, out.Score)
		}
		w := s.cfg.Weights.forKind(out.Kind)
		blended += w * out.Score
		weightSum += w

		switch out.Kind {
		case port.ModelKindSupervised:
			supervised = &outputs[i]
		case port.ModelKindAnomaly:
			anomaly = &outputs[i]
		}
	}
	if weightSum <= 0 {
		return Evaluation{}, fmt.Errorf("no configured weight matches the supplied model outputs")
	}
	blended /= weightSum

	category := valueobject.CategoryFromScore(blended, s.cfg.Thresholds)

	reasons := make([]weightedReason, 0)
	for _, out := range outputs {
		if out.Score < s.cfg.Significance {
			continue
		}
		code := ReasonModelScoreExceeded
		if out.Kind == port.ModelKindAnomaly {
			code = ReasonAnomalyScoreExceeded
		}
		reasons = append(reasons, weightedReason{
			code:         code,
			contribution: s.cfg.Weights.forKind(out.Kind) * out.Score / weightSum,
		})
	}

	in := RuleInput{Transaction: tx, History: hist}
	for _, rule := range s.cfg.Rules {
		if !rule.Applies(in) {
			continue
		}
		category = category.Max(rule.Raise)
		reasons = append(reasons, weightedReason{
			code:         rule.Code,
			contribution: float64(rule.Raise.Rank()) / float64(valueobject.CategoryCritical.Rank()),
		})
	}

	sort.SliceStable(reasons, func(i, j int) bool {
		return reasons[i].contribution > reasons[j].contribution
	})
	codes := make([]string, 0, len(reasons))
	for _, r := range reasons {
		codes = append(codes, r.code)
	}

	return Evaluation{
		Score:      blended,
		Category:   category,
		Decision:   valueobject.DecisionFromCategory(category),
		Reasons:    codes,
		Confidence: s.confidence(supervised, anomaly, blended),
	}, nil
}

// confidence follows the training pipeline's convention: distance of the
// fraud probability from 0.5 scaled to [0,1], discounted when the transaction
// looks anomalous relative to the training data, floored at 0.1.
func (s *RiskScorer) confidence(supervised, anomaly *port.ModelOutput, blended float64) float64 {
	p := blended
	if supervised != nil {
		p = supervised.Score
	}
	conf := (p - 0.5) * 2
	if conf < 0 {
		conf = -conf
	}
	if anomaly != nil && anomaly.Score >= s.cfg.Significance {
		discount := anomaly.Score
		if discount > 0.9 {
			discount = 0.9
		}
		conf *= 1 - discount
		if conf < 0.1 {
			conf = 0.1
		}
	}
	return conf
}
