package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Shivendra-1710/fraud-detection-system/internal/domain/model"
	"github.com/Shivendra-1710/fraud-detection-system/internal/domain/valueobject"
	pgutil "github.com/Shivendra-1710/fraud-detection-system/pkg/postgres"
)

// VerdictRepository implements port.VerdictRepository using PostgreSQL.
type VerdictRepository struct {
	pool *pgxpool.Pool
}

// NewVerdictRepository creates a new PostgreSQL-backed verdict repository.
func NewVerdictRepository(pool *pgxpool.Pool) *VerdictRepository {
	return &VerdictRepository{pool: pool}
}

const verdictColumns = `
	id, transaction_id, account_id,
	amount, currency,
	risk_score, category, decision, confidence, model_version,
	assessed_at, version, created_at, updated_at
`

// Save persists a verdict and its ordered reason codes. Re-scoring the same
// transaction replaces the previous verdict.
func (r *VerdictRepository) Save(ctx context.Context, verdict *model.RiskVerdict) error {
	return pgutil.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		return r.saveTx(ctx, tx, verdict)
	})
}

func (r *VerdictRepository) saveTx(ctx context.Context, tx pgutil.Querier, verdict *model.RiskVerdict) error {
	// On conflict the stored row keeps its original id, so the persisted id
	// is returned and the reason rows are keyed by it, not by the candidate
	// verdict's id.
	query := `
		INSERT INTO risk_verdicts (` + verdictColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (transaction_id) DO UPDATE SET
			risk_score = EXCLUDED.risk_score,
			category = EXCLUDED.category,
			decision = EXCLUDED.decision,
			confidence = EXCLUDED.confidence,
			model_version = EXCLUDED.model_version,
			assessed_at = EXCLUDED.assessed_at,
			version = EXCLUDED.version,
			updated_at = EXCLUDED.updated_at
		RETURNING id
	`

	var persistedID uuid.UUID
	err := tx.QueryRow(ctx, query,
		verdict.ID(),
		verdict.TransactionID(),
		verdict.AccountID(),
		verdict.Amount(),
		verdict.Currency(),
		verdict.RiskScore(),
		verdict.Category().String(),
		verdict.Decision().String(),
		verdict.Confidence(),
		verdict.ModelVersion(),
		verdict.AssessedAt(),
		verdict.Version(),
		verdict.CreatedAt(),
		verdict.UpdatedAt(),
	).Scan(&persistedID)
	if err != nil {
		return fmt.Errorf("failed to save verdict: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM verdict_reasons WHERE verdict_id = $1`, persistedID); err != nil {
		return fmt.Errorf("failed to delete old reasons: %w", err)
	}
	for i, reason := range verdict.Reasons() {
		_, err := tx.Exec(ctx,
			`INSERT INTO verdict_reasons (verdict_id, position, reason) VALUES ($1, $2, $3)`,
			persistedID, i, reason,
		)
		if err != nil {
			return fmt.Errorf("failed to save reason: %w", err)
		}
	}
	return nil
}

// FindByID retrieves a verdict by its unique identifier. Returns nil when no
// verdict matches.
func (r *VerdictRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.RiskVerdict, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+verdictColumns+` FROM risk_verdicts WHERE id = $1`, id)
	return r.scanVerdict(ctx, row)
}

// FindByTransactionID retrieves the verdict recorded for a transaction.
func (r *VerdictRepository) FindByTransactionID(ctx context.Context, transactionID uuid.UUID) (*model.RiskVerdict, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+verdictColumns+` FROM risk_verdicts WHERE transaction_id = $1`, transactionID)
	return r.scanVerdict(ctx, row)
}

// FindByAccountID retrieves an account's verdicts, newest first.
func (r *VerdictRepository) FindByAccountID(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*model.RiskVerdict, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+verdictColumns+` FROM risk_verdicts
		 WHERE account_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		accountID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query verdicts: %w", err)
	}
	defer rows.Close()

	var verdicts []*model.RiskVerdict
	for rows.Next() {
		verdict, err := r.scanVerdict(ctx, rows)
		if err != nil {
			return nil, err
		}
		verdicts = append(verdicts, verdict)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate verdicts: %w", err)
	}
	return verdicts, nil
}

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func (r *VerdictRepository) scanVerdict(ctx context.Context, row rowScanner) (*model.RiskVerdict, error) {
	var (
		id            uuid.UUID
		transactionID uuid.UUID
		accountID     uuid.UUID
		amount        decimal.Decimal
		currency      string
		riskScore     float64
		categoryStr   string
		decisionStr   string
		confidence    float64
		modelVersion  string
		assessedAt    *time.Time
		version       int
		createdAt     time.Time
		updatedAt     time.Time
	)

	err := row.Scan(
		&id, &transactionID, &accountID,
		&amount, &currency,
		&riskScore, &categoryStr, &decisionStr, &confidence, &modelVersion,
		&assessedAt, &version, &createdAt, &updatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan verdict: %w", err)
	}

	category, err := valueobject.CategoryFromString(categoryStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse category: %w", err)
	}
	decision, err := valueobject.DecisionFromString(decisionStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse decision: %w", err)
	}

	reasons, err := r.loadReasons(ctx, id)
	if err != nil {
		return nil, err
	}

	var assessedAtVal time.Time
	if assessedAt != nil {
		assessedAtVal = *assessedAt
	}

	return model.ReconstructVerdict(
		id, transactionID, accountID,
		amount, currency,
		riskScore, category, decision, reasons, confidence, modelVersion,
		assessedAtVal, version, createdAt, updatedAt,
	), nil
}

func (r *VerdictRepository) loadReasons(ctx context.Context, verdictID uuid.UUID) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT reason FROM verdict_reasons WHERE verdict_id = $1 ORDER BY position`,
		verdictID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query reasons: %w", err)
	}
	defer rows.Close()

	reasons := make([]string, 0)
	for rows.Next() {
		var reason string
		if err := rows.Scan(&reason); err != nil {
			return nil, fmt.Errorf("failed to scan reason: %w", err)
		}
		reasons = append(reasons, reason)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reasons: %w", err)
	}
	return reasons, nil
}
