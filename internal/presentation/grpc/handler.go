package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Shivendra-1710/fraud-detection-system/internal/application/dto"
	"github.com/Shivendra-1710/fraud-detection-system/internal/application/usecase"
)

// Compile-time assertion that RiskServiceHandler implements RiskServiceServer.
var _ RiskServiceServer = (*RiskServiceHandler)(nil)

// RiskServiceHandler implements the gRPC RiskServiceServer interface.
type RiskServiceHandler struct {
	UnimplementedRiskServiceServer
	assess *usecase.AssessTransaction
	batch  *usecase.BatchAssess
	get    *usecase.GetVerdict
	list   *usecase.ListAccountVerdicts
	logger *slog.Logger
}

// NewRiskServiceHandler creates a new gRPC handler.
func NewRiskServiceHandler(
	assess *usecase.AssessTransaction,
	batch *usecase.BatchAssess,
	get *usecase.GetVerdict,
	list *usecase.ListAccountVerdicts,
	logger *slog.Logger,
) *RiskServiceHandler {
	return &RiskServiceHandler{
		assess: assess,
		batch:  batch,
		get:    get,
		list:   list,
		logger: logger,
	}
}

// Proto-aligned request/response message types.

// AssessTransactionRequest represents the proto AssessTransactionRequest message.
type AssessTransactionRequest struct {
	TransactionID    string            `json:"transaction_id"`
	Amount           string            `json:"amount"`
	Currency         string            `json:"currency"`
	SenderAccount    string            `json:"sender_account"`
	ReceiverAccount  string            `json:"receiver_account"`
	MerchantCategory string            `json:"merchant_category"`
	Timestamp        string            `json:"timestamp"` // RFC 3339
	Metadata         map[string]string `json:"metadata"`
	ModelVersion     string            `json:"model_version"`
}

// VerdictMsg represents the proto RiskVerdict message.
type VerdictMsg struct {
	ID            string   `json:"id"`
	TransactionID string   `json:"transaction_id"`
	AccountID     string   `json:"account_id"`
	Amount        string   `json:"amount"`
	Currency      string   `json:"currency"`
	RiskScore     float64  `json:"risk_score"`
	Category      string   `json:"category"`
	Decision      string   `json:"decision"`
	Reasons       []string `json:"reasons"`
	Confidence    float64  `json:"confidence"`
	ModelVersion  string   `json:"model_version"`
	AssessedAt    string   `json:"assessed_at"`
}

// ScoringErrorMsg represents the proto ScoringError message.
type ScoringErrorMsg struct {
	Stage   string `json:"stage"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// AssessTransactionResponse represents the proto AssessTransactionResponse message.
type AssessTransactionResponse struct {
	Verdict *VerdictMsg `json:"verdict"`
}

// BatchAssessRequest represents the proto BatchAssessRequest message.
type BatchAssessRequest struct {
	Transactions []*AssessTransactionRequest `json:"transactions"`
}

// BatchResultMsg holds one batch outcome: a verdict or an error.
type BatchResultMsg struct {
	Verdict *VerdictMsg      `json:"verdict,omitempty"`
	Error   *ScoringErrorMsg `json:"error,omitempty"`
}

// BatchAssessResponse represents the proto BatchAssessResponse message.
type BatchAssessResponse struct {
	Results []*BatchResultMsg `json:"results"`
}

// GetVerdictRequest represents the proto GetVerdictRequest message.
type GetVerdictRequest struct {
	VerdictID     string `json:"verdict_id"`
	TransactionID string `json:"transaction_id"`
}

// GetVerdictResponse represents the proto GetVerdictResponse message.
type GetVerdictResponse struct {
	Verdict *VerdictMsg `json:"verdict"`
}

// ListAccountVerdictsRequest represents the proto ListAccountVerdictsRequest message.
type ListAccountVerdictsRequest struct {
	AccountID string `json:"account_id"`
	Limit     int32  `json:"limit"`
	Offset    int32  `json:"offset"`
}

// ListAccountVerdictsResponse represents the proto ListAccountVerdictsResponse message.
type ListAccountVerdictsResponse struct {
	Verdicts []*VerdictMsg `json:"verdicts"`
}

// AssessTransaction scores one transaction.
func (h *RiskServiceHandler) AssessTransaction(ctx context.Context, req *AssessTransactionRequest) (*AssessTransactionResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	assessReq, err := toAssessRequest(req)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid timestamp: %v", err)
	}

	result, err := h.assess.Execute(ctx, assessReq)
	if err != nil {
		info := dto.ErrorInfoFrom(err)
		h.logger.Warn("assessment failed",
			slog.String("transaction_id", req.TransactionID),
			slog.String("stage", info.Stage),
			slog.String("kind", info.Kind),
		)
		return nil, statusFromErrorInfo(info)
	}

	return &AssessTransactionResponse{Verdict: verdictMsg(result)}, nil
}

// BatchAssess scores a list of transactions; per-item failures are returned
// inline and never fail the call.
func (h *RiskServiceHandler) BatchAssess(ctx context.Context, req *BatchAssessRequest) (*BatchAssessResponse, error) {
	if req == nil || len(req.Transactions) == 0 {
		return nil, status.Error(codes.InvalidArgument, "at least one transaction is required")
	}

	reqs := make([]dto.AssessTransactionRequest, 0, len(req.Transactions))
	for _, t := range req.Transactions {
		if t == nil {
			reqs = append(reqs, dto.AssessTransactionRequest{})
			continue
		}
		assessReq, err := toAssessRequest(t)
		if err != nil {
			// Zero timestamp; the use case reports it as a per-item
			// validation failure without aborting the batch.
			assessReq, _ = toAssessRequest(&AssessTransactionRequest{
				TransactionID:    t.TransactionID,
				Amount:           t.Amount,
				Currency:         t.Currency,
				SenderAccount:    t.SenderAccount,
				ReceiverAccount:  t.ReceiverAccount,
				MerchantCategory: t.MerchantCategory,
				Metadata:         t.Metadata,
				ModelVersion:     t.ModelVersion,
			})
		}
		reqs = append(reqs, assessReq)
	}

	results := h.batch.Execute(ctx, reqs)

	out := make([]*BatchResultMsg, 0, len(results))
	for _, r := range results {
		msg := &BatchResultMsg{}
		if r.Verdict != nil {
			msg.Verdict = verdictMsg(*r.Verdict)
		}
		if r.Error != nil {
			msg.Error = &ScoringErrorMsg{Stage: r.Error.Stage, Kind: r.Error.Kind, Message: r.Error.Message}
		}
		out = append(out, msg)
	}
	return &BatchAssessResponse{Results: out}, nil
}

// GetVerdict retrieves a stored verdict by its ID or the transaction ID.
func (h *RiskServiceHandler) GetVerdict(ctx context.Context, req *GetVerdictRequest) (*GetVerdictResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	var lookup dto.GetVerdictRequest
	if req.VerdictID != "" {
		id, err := uuid.Parse(req.VerdictID)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid verdict_id: %v", err)
		}
		lookup.VerdictID = id
	}
	if req.TransactionID != "" {
		id, err := uuid.Parse(req.TransactionID)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid transaction_id: %v", err)
		}
		lookup.TransactionID = id
	}

	result, err := h.get.Execute(ctx, lookup)
	if err != nil {
		if errors.Is(err, usecase.ErrVerdictNotFound) {
			return nil, status.Error(codes.NotFound, "verdict not found")
		}
		if lookup.VerdictID == uuid.Nil && lookup.TransactionID == uuid.Nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		if lookup.VerdictID != uuid.Nil && lookup.TransactionID != uuid.Nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		h.logger.Error("verdict lookup failed", slog.String("error", err.Error()))
		return nil, status.Error(codes.Internal, "internal error")
	}

	return &GetVerdictResponse{Verdict: verdictMsg(result)}, nil
}

// ListAccountVerdicts lists stored verdicts for an account, newest first.
func (h *RiskServiceHandler) ListAccountVerdicts(ctx context.Context, req *ListAccountVerdictsRequest) (*ListAccountVerdictsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid account_id: %v", err)
	}

	results, err := h.list.Execute(ctx, dto.ListAccountVerdictsRequest{
		AccountID: accountID,
		Limit:     int(req.Limit),
		Offset:    int(req.Offset),
	})
	if err != nil {
		h.logger.Error("verdict listing failed", slog.String("error", err.Error()))
		return nil, status.Error(codes.Internal, "internal error")
	}

	out := make([]*VerdictMsg, 0, len(results))
	for _, r := range results {
		out = append(out, verdictMsg(r))
	}
	return &ListAccountVerdictsResponse{Verdicts: out}, nil
}

// toAssessRequest maps the wire message onto the application DTO.
func toAssessRequest(req *AssessTransactionRequest) (dto.AssessTransactionRequest, error) {
	var ts time.Time
	if req.Timestamp != "" {
		parsed, err := time.Parse(time.RFC3339, req.Timestamp)
		if err != nil {
			return dto.AssessTransactionRequest{}, err
		}
		ts = parsed
	}
	return dto.AssessTransactionRequest{
		TransactionID:    req.TransactionID,
		Amount:           req.Amount,
		Currency:         req.Currency,
		SenderAccount:    req.SenderAccount,
		ReceiverAccount:  req.ReceiverAccount,
		MerchantCategory: req.MerchantCategory,
		Timestamp:        ts,
		Metadata:         req.Metadata,
		ModelVersion:     req.ModelVersion,
	}, nil
}

// verdictMsg maps the application response onto the wire message.
func verdictMsg(v dto.VerdictResponse) *VerdictMsg {
	return &VerdictMsg{
		ID:            v.ID.String(),
		TransactionID: v.TransactionID.String(),
		AccountID:     v.AccountID.String(),
		Amount:        v.Amount,
		Currency:      v.Currency,
		RiskScore:     v.RiskScore,
		Category:      v.Category,
		Decision:      v.Decision,
		Reasons:       v.Reasons,
		Confidence:    v.Confidence,
		ModelVersion:  v.ModelVersion,
		AssessedAt:    v.AssessedAt.Format(time.RFC3339),
	}
}

// statusFromErrorInfo maps the scoring error taxonomy to gRPC status codes.
func statusFromErrorInfo(info dto.ErrorInfo) error {
	switch info.Kind {
	case dto.ErrorKindValidation:
		return status.Error(codes.InvalidArgument, info.Message)
	case dto.ErrorKindTimeout:
		return status.Error(codes.DeadlineExceeded, info.Message)
	case dto.ErrorKindSchemaMismatch:
		return status.Error(codes.FailedPrecondition, info.Message)
	default:
		return status.Error(codes.Internal, info.Message)
	}
}
