package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Shivendra-1710/fraud-detection-system/internal/domain/feature"
	"github.com/Shivendra-1710/fraud-detection-system/internal/domain/model"
	"github.com/Shivendra-1710/fraud-detection-system/internal/domain/port"
)

// Pipeline stage names, reported on PipelineError for observability.
const (
	StageValidation        = "validation"
	StageFeatureExtraction = "feature_extraction"
	StageModelScoring      = "model_scoring"
	StageRiskEvaluation    = "risk_evaluation"
)

// ErrInferenceTimeout marks a scoring call that exceeded the latency budget.
// Callers may retry with backoff.
var ErrInferenceTimeout = errors.New("model inference timed out")

// PipelineError wraps a stage failure. The pipeline is the sole place where
// internal errors become caller-facing ones; the originating stage is
// preserved.
type PipelineError struct {
	Stage string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("pipeline stage %s: %v", e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// DecisionPipeline orchestrates feature extraction, model scoring and risk
// evaluation for one transaction per call. It holds no mutable state between
// calls beyond the immutable loaded models, so it is safe to invoke
// concurrently.
type DecisionPipeline struct {
	extractor      *feature.Extractor
	models         []port.Model
	scorer         *RiskScorer
	history        port.HistoryReader
	inferenceLimit time.Duration
	modelVersion   string
	logger         *slog.Logger
}

// NewDecisionPipeline wires a pipeline over an already-loaded model set.
// inferenceLimit bounds the total time spent in model inference per
// transaction.
func NewDecisionPipeline(
	extractor *feature.Extractor,
	models []port.Model,
	modelVersion string,
	scorer *RiskScorer,
	history port.HistoryReader,
	inferenceLimit time.Duration,
	logger *slog.Logger,
) (*DecisionPipeline, error) {
	if len(models) == 0 {
		return nil, fmt.Errorf("at least one model is required")
	}
	for _, m := range models {
		if !m.Schema().Equal(extractor.Schema()) {
			return nil, &port.SchemaMismatchError{
				Model: m.Name(),
				Want:  schemaLabel(m.Schema()),
				Got:   schemaLabel(extractor.Schema()),
			}
		}
	}
	if inferenceLimit <= 0 {
		return nil, fmt.Errorf("inference limit must be positive")
	}
	return &DecisionPipeline{
		extractor:      extractor,
		models:         models,
		modelVersion:   modelVersion,
		scorer:         scorer,
		history:        history,
		inferenceLimit: inferenceLimit,
		logger:         logger,
	}, nil
}

func schemaLabel(s feature.Schema) string {
	return s.Name + "/" + s.Version
}

// Run scores one validated transaction through the fixed stage order:
// context lookup and feature extraction, model scoring, risk evaluation.
// Any stage failure short-circuits and is wrapped in a PipelineError.
// Re-running with identical inputs yields an identical verdict.
func (p *DecisionPipeline) Run(ctx context.Context, tx model.Transaction) (*model.RiskVerdict, error) {
	hist, err := p.history.GetContext(ctx, tx.SenderAccount())
	if err != nil {
		return nil, &PipelineError{Stage: StageFeatureExtraction, Err: fmt.Errorf("history lookup: %w", err)}
	}

	vec := p.extractor.Extract(tx, hist)

	sctx, cancel := context.WithTimeout(ctx, p.inferenceLimit)
	defer cancel()

	outputs := make([]port.ModelOutput, 0, len(p.models))
	for _, m := range p.models {
		out, err := m.Score(sctx, vec)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return nil, &PipelineError{Stage: StageModelScoring, Err: ErrInferenceTimeout}
			}
			return nil, &PipelineError{Stage: StageModelScoring, Err: err}
		}
		outputs = append(outputs, out)
	}

	eval, err := p.scorer.Evaluate(outputs, tx, hist)
	if err != nil {
		return nil, &PipelineError{Stage: StageRiskEvaluation, Err: err}
	}

	verdict := model.NewRiskVerdict(tx)
	if err := verdict.Finalize(eval.Score, eval.Category, eval.Decision, eval.Reasons, eval.Confidence, p.modelVersion); err != nil {
		return nil, &PipelineError{Stage: StageRiskEvaluation, Err: err}
	}

	p.logger.Debug("transaction scored",
		slog.String("transaction_id", tx.ID().String()),
		slog.Float64("risk_score", eval.Score),
		slog.String("category", eval.Category.String()),
	)

	return verdict, nil
}
