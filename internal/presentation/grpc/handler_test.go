package grpc

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Shivendra-1710/fraud-detection-system/internal/application/usecase"
	"github.com/Shivendra-1710/fraud-detection-system/internal/domain/feature"
	"github.com/Shivendra-1710/fraud-detection-system/internal/domain/model"
	"github.com/Shivendra-1710/fraud-detection-system/internal/domain/port"
	"github.com/Shivendra-1710/fraud-detection-system/internal/domain/service"
	"github.com/Shivendra-1710/fraud-detection-system/internal/domain/valueobject"
)

// --- Mock implementations ---

type mockRepo struct {
	byID   map[uuid.UUID]*model.RiskVerdict
	byTxID map[uuid.UUID]*model.RiskVerdict
}

func newRepo() *mockRepo {
	return &mockRepo{
		byID:   make(map[uuid.UUID]*model.RiskVerdict),
		byTxID: make(map[uuid.UUID]*model.RiskVerdict),
	}
}

func (m *mockRepo) Save(_ context.Context, v *model.RiskVerdict) error {
	m.byID[v.ID()] = v
	m.byTxID[v.TransactionID()] = v
	return nil
}

func (m *mockRepo) FindByID(_ context.Context, id uuid.UUID) (*model.RiskVerdict, error) {
	return m.byID[id], nil
}

func (m *mockRepo) FindByTransactionID(_ context.Context, txID uuid.UUID) (*model.RiskVerdict, error) {
	return m.byTxID[txID], nil
}

func (m *mockRepo) FindByAccountID(_ context.Context, _ uuid.UUID, _, _ int) ([]*model.RiskVerdict, error) {
	out := make([]*model.RiskVerdict, 0, len(m.byID))
	for _, v := range m.byID {
		out = append(out, v)
	}
	return out, nil
}

type nopPublisher struct{}

func (nopPublisher) Publish(_ context.Context, _ ...interface{}) error { return nil }

type emptyHistory struct{}

func (emptyHistory) GetContext(_ context.Context, _ uuid.UUID) (feature.History, error) {
	return feature.History{}, nil
}

type constModel struct {
	kind  port.ModelKind
	score float64
}

func (m constModel) Name() string           { return string(m.kind) }
func (m constModel) Version() string        { return "v1" }
func (m constModel) Kind() port.ModelKind   { return m.kind }
func (m constModel) Schema() feature.Schema { return feature.SchemaV1() }

func (m constModel) Score(_ context.Context, _ feature.Vector) (port.ModelOutput, error) {
	return port.ModelOutput{Model: m.Name(), Version: "v1", Kind: m.kind, Score: m.score}, nil
}

// --- Helpers ---

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func buildTestHandler(t *testing.T, supervised, anomaly float64) (*RiskServiceHandler, *mockRepo) {
	t.Helper()

	scorer, err := service.NewRiskScorer(service.ScorerConfig{
		Weights:      service.Weights{Supervised: 0.6, Anomaly: 0.4},
		Thresholds:   valueobject.DefaultThresholds,
		Significance: 0.8,
		Rules: []service.Rule{
			service.HighAmountRule(decimal.NewFromInt(10000), valueobject.CategoryMedium),
		},
	})
	require.NoError(t, err)

	pipeline, err := service.NewDecisionPipeline(
		feature.NewExtractor(nil, 0.5),
		[]port.Model{
			constModel{kind: port.ModelKindSupervised, score: supervised},
			constModel{kind: port.ModelKindAnomaly, score: anomaly},
		},
		"v1",
		scorer,
		emptyHistory{},
		time.Second,
		testLogger(),
	)
	require.NoError(t, err)

	repo := newRepo()
	assess, err := usecase.NewAssessTransaction(
		map[string]*service.DecisionPipeline{"v1": pipeline},
		"v1",
		repo,
		nopPublisher{},
		testLogger(),
	)
	require.NoError(t, err)

	return NewRiskServiceHandler(
		assess,
		usecase.NewBatchAssess(assess, testLogger()),
		usecase.NewGetVerdict(repo),
		usecase.NewListAccountVerdicts(repo),
		testLogger(),
	), repo
}

func wireRequest() *AssessTransactionRequest {
	return &AssessTransactionRequest{
		TransactionID:    uuid.NewString(),
		Amount:           "150.00",
		Currency:         "USD",
		SenderAccount:    uuid.NewString(),
		ReceiverAccount:  uuid.NewString(),
		MerchantCategory: "RETAIL",
		Timestamp:        "2026-06-01T12:00:00Z",
	}
}

// --- Tests ---

func TestHandler_AssessTransaction(t *testing.T) {
	handler, _ := buildTestHandler(t, 0.1, 0.05)

	resp, err := handler.AssessTransaction(context.Background(), wireRequest())
	require.NoError(t, err)
	require.NotNil(t, resp.Verdict)

	assert.Equal(t, "LOW", resp.Verdict.Category)
	assert.Equal(t, "APPROVE", resp.Verdict.Decision)
	assert.Equal(t, "v1", resp.Verdict.ModelVersion)
	assert.NotEmpty(t, resp.Verdict.ID)
}

func TestHandler_AssessTransaction_ValidationError(t *testing.T) {
	handler, _ := buildTestHandler(t, 0.1, 0.05)

	req := wireRequest()
	req.Amount = "garbage"

	_, err := handler.AssessTransaction(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestHandler_AssessTransaction_BadTimestamp(t *testing.T) {
	handler, _ := buildTestHandler(t, 0.1, 0.05)

	req := wireRequest()
	req.Timestamp = "yesterday"

	_, err := handler.AssessTransaction(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestHandler_AssessTransaction_NilRequest(t *testing.T) {
	handler, _ := buildTestHandler(t, 0.1, 0.05)

	_, err := handler.AssessTransaction(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestHandler_BatchAssess(t *testing.T) {
	handler, _ := buildTestHandler(t, 0.1, 0.05)

	bad := wireRequest()
	bad.SenderAccount = "not-a-uuid"

	resp, err := handler.BatchAssess(context.Background(), &BatchAssessRequest{
		Transactions: []*AssessTransactionRequest{wireRequest(), bad},
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)

	assert.NotNil(t, resp.Results[0].Verdict)
	assert.Nil(t, resp.Results[0].Error)

	require.NotNil(t, resp.Results[1].Error)
	assert.Equal(t, "validation", resp.Results[1].Error.Kind)
}

func TestHandler_BatchAssess_Empty(t *testing.T) {
	handler, _ := buildTestHandler(t, 0.1, 0.05)

	_, err := handler.BatchAssess(context.Background(), &BatchAssessRequest{})
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestHandler_GetVerdict(t *testing.T) {
	handler, _ := buildTestHandler(t, 0.1, 0.05)

	req := wireRequest()
	assessed, err := handler.AssessTransaction(context.Background(), req)
	require.NoError(t, err)

	resp, err := handler.GetVerdict(context.Background(), &GetVerdictRequest{
		VerdictID: assessed.Verdict.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, assessed.Verdict.ID, resp.Verdict.ID)

	resp, err = handler.GetVerdict(context.Background(), &GetVerdictRequest{
		TransactionID: req.TransactionID,
	})
	require.NoError(t, err)
	assert.Equal(t, assessed.Verdict.ID, resp.Verdict.ID)
}

func TestHandler_GetVerdict_NotFound(t *testing.T) {
	handler, _ := buildTestHandler(t, 0.1, 0.05)

	_, err := handler.GetVerdict(context.Background(), &GetVerdictRequest{
		VerdictID: uuid.NewString(),
	})
	require.Error(t, err)
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestHandler_GetVerdict_BadArguments(t *testing.T) {
	handler, _ := buildTestHandler(t, 0.1, 0.05)

	_, err := handler.GetVerdict(context.Background(), &GetVerdictRequest{VerdictID: "xyz"})
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = handler.GetVerdict(context.Background(), &GetVerdictRequest{})
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = handler.GetVerdict(context.Background(), &GetVerdictRequest{
		VerdictID:     uuid.NewString(),
		TransactionID: uuid.NewString(),
	})
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestHandler_ListAccountVerdicts(t *testing.T) {
	handler, _ := buildTestHandler(t, 0.1, 0.05)

	_, err := handler.AssessTransaction(context.Background(), wireRequest())
	require.NoError(t, err)

	resp, err := handler.ListAccountVerdicts(context.Background(), &ListAccountVerdictsRequest{
		AccountID: uuid.NewString(),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Verdicts, 1)

	_, err = handler.ListAccountVerdicts(context.Background(), &ListAccountVerdictsRequest{
		AccountID: "nope",
	})
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}
