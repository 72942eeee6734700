package usecase

import (
	"context"
	"log/slog"

	"github.com/Shivendra-1710/fraud-detection-system/internal/application/dto"
)

// BatchResult holds the outcome for one transaction in a batch: either a
// verdict or a structured error, never both.
type BatchResult struct {
	Verdict *dto.VerdictResponse
	Error   *dto.ErrorInfo
}

// BatchAssess scores a list of transactions. A failing item never aborts the
// rest of the batch.
type BatchAssess struct {
	assess *AssessTransaction
	logger *slog.Logger
}

// NewBatchAssess creates the batch use case on top of AssessTransaction.
func NewBatchAssess(assess *AssessTransaction, logger *slog.Logger) *BatchAssess {
	return &BatchAssess{assess: assess, logger: logger}
}

// Execute scores each transaction in order and returns one result per input.
func (uc *BatchAssess) Execute(ctx context.Context, reqs []dto.AssessTransactionRequest) []BatchResult {
	results := make([]BatchResult, 0, len(reqs))
	for _, req := range reqs {
		resp, err := uc.assess.Execute(ctx, req)
		if err != nil {
			info := dto.ErrorInfoFrom(err)
			uc.logger.Warn("batch item failed",
				slog.String("transaction_id", req.TransactionID),
				slog.String("stage", info.Stage),
				slog.String("kind", info.Kind),
			)
			results = append(results, BatchResult{Error: &info})
			continue
		}
		results = append(results, BatchResult{Verdict: &resp})
	}
	return results
}
