package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Shivendra-1710/fraud-detection-system/internal/application/dto"
	"github.com/Shivendra-1710/fraud-detection-system/internal/domain/port"
)

// ErrVerdictNotFound is returned when no verdict matches the lookup.
var ErrVerdictNotFound = fmt.Errorf("verdict not found")

// GetVerdict retrieves an existing verdict by its ID or by the original
// transaction ID.
type GetVerdict struct {
	repo port.VerdictRepository
}

// NewGetVerdict creates the lookup use case.
func NewGetVerdict(repo port.VerdictRepository) *GetVerdict {
	return &GetVerdict{repo: repo}
}

// Execute looks up a verdict. Exactly one of VerdictID or TransactionID must
// be set.
func (uc *GetVerdict) Execute(ctx context.Context, req dto.GetVerdictRequest) (dto.VerdictResponse, error) {
	switch {
	case req.VerdictID != uuid.Nil && req.TransactionID != uuid.Nil:
		return dto.VerdictResponse{}, fmt.Errorf("set either verdict ID or transaction ID, not both")
	case req.VerdictID != uuid.Nil:
		verdict, err := uc.repo.FindByID(ctx, req.VerdictID)
		if err != nil {
			return dto.VerdictResponse{}, fmt.Errorf("failed to find verdict: %w", err)
		}
		if verdict == nil {
			return dto.VerdictResponse{}, ErrVerdictNotFound
		}
		return dto.FromModel(verdict), nil
	case req.TransactionID != uuid.Nil:
		verdict, err := uc.repo.FindByTransactionID(ctx, req.TransactionID)
		if err != nil {
			return dto.VerdictResponse{}, fmt.Errorf("failed to find verdict: %w", err)
		}
		if verdict == nil {
			return dto.VerdictResponse{}, ErrVerdictNotFound
		}
		return dto.FromModel(verdict), nil
	default:
		return dto.VerdictResponse{}, fmt.Errorf("verdict ID or transaction ID is required")
	}
}

// ListAccountVerdicts pages through the verdicts recorded for one account,
// newest first.
type ListAccountVerdicts struct {
	repo port.VerdictRepository
}

// NewListAccountVerdicts creates the listing use case.
func NewListAccountVerdicts(repo port.VerdictRepository) *ListAccountVerdicts {
	return &ListAccountVerdicts{repo: repo}
}

// Execute lists verdicts for an account. Limit defaults to 50 and is capped
// at 500.
func (uc *ListAccountVerdicts) Execute(ctx context.Context, req dto.ListAccountVerdictsRequest) ([]dto.VerdictResponse, error) {
	if req.AccountID == uuid.Nil {
		return nil, fmt.Errorf("account ID is required")
	}
	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 500 {
		limit = 500
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	verdicts, err := uc.repo.FindByAccountID(ctx, req.AccountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list verdicts: %w", err)
	}

	out := make([]dto.VerdictResponse, 0, len(verdicts))
	for _, v := range verdicts {
		out = append(out, dto.FromModel(v))
	}
	return out, nil
}
