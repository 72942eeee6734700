package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shivendra-1710/fraud-detection-system/internal/domain/feature"
)

// AccountHistoryReader implements port.HistoryReader over the verdict table.
// It reads a point-in-time snapshot of an account's recent activity; any
// concurrent writers are coordinated by the database, not the pipeline.
type AccountHistoryReader struct {
	pool   *pgxpool.Pool
	window time.Duration
}

// NewAccountHistoryReader creates a reader with the given lookback window.
func NewAccountHistoryReader(pool *pgxpool.Pool, window time.Duration) *AccountHistoryReader {
	return &AccountHistoryReader{pool: pool, window: window}
}

// GetContext returns the sender's recent transaction count and sum inside
// the configured window. Accounts with no history return the zero snapshot.
func (r *AccountHistoryReader) GetContext(ctx context.Context, accountID uuid.UUID) (feature.History, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(amount), 0)
		 FROM risk_verdicts
		 WHERE account_id = $1 AND created_at > $2`,
		accountID, time.Now().UTC().Add(-r.window),
	)

	var count int
	var sum float64
	if err := row.Scan(&count, &sum); err != nil {
		return feature.History{}, fmt.Errorf("failed to read account history: %w", err)
	}

	return feature.History{RecentCount: count, RecentSum: sum}, nil
}
