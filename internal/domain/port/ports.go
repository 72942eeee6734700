package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/Shivendra-1710/fraud-detection-system/internal/domain/feature"
	"github.com/Shivendra-1710/fraud-detection-system/internal/domain/model"
)

// ModelKind distinguishes the model families loaded by the adapter.
type ModelKind string

const (
	// ModelKindSupervised is a trained classifier emitting a fraud probability.
	ModelKindSupervised ModelKind = "supervised"
	// ModelKindAnomaly is an unsupervised detector emitting a normalized
	// anomaly score.
	ModelKindAnomaly ModelKind = "anomaly"
)

// ModelOutput is one raw score from one model. It is transient, scoped to a
// single scoring call, and never persisted.
type ModelOutput struct {
	Model   string
	Version string
	Kind    ModelKind
	// Score is normalized to [0,1] for every model family.
	Score float64
}

// Model is a loaded, read-only model artifact behind a uniform scoring
// contract. Implementations must be safe for concurrent Score calls and must
// never mutate during scoring.
type Model interface {
	Name() string
	Version() string
	Kind() ModelKind
	// Schema is the feature schema this artifact was trained against.
	Schema() feature.Schema
	// Score runs inference on a feature vector. It returns a
	// *SchemaMismatchError when the vector's schema does not match the
	// artifact's, and a *ModelInferenceError when inference itself fails.
	// It never substitutes a default score.
	Score(ctx context.Context, v feature.Vector) (ModelOutput, error)
}

// ArtifactStore loads versioned model artifacts. It is invoked once at
// startup per configured version; the service never writes to the store.
type ArtifactStore interface {
	Load(ctx context.Context, version string) ([]Model, error)
}

// HistoryReader is the historical-context collaborator. The pipeline reads a
// snapshot at call time and performs no coordination across concurrent calls.
type HistoryReader interface {
	GetContext(ctx context.Context, accountID uuid.UUID) (feature.History, error)
}

// VerdictRepository persists completed risk verdicts.
type VerdictRepository interface {
	Save(ctx context.Context, verdict *model.RiskVerdict) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.RiskVerdict, error)
	FindByTransactionID(ctx context.Context, transactionID uuid.UUID) (*model.RiskVerdict, error)
	FindByAccountID(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*model.RiskVerdict, error)
}

// EventPublisher forwards domain events to the alerting/dashboard
// infrastructure.
type EventPublisher interface {
	Publish(ctx context.Context, events ...interface{}) error
}
