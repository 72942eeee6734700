package model_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shivendra-1710/fraud-detection-system/internal/domain/model"
)

func validArgs() (uuid.UUID, time.Time, decimal.Decimal, string, uuid.UUID, uuid.UUID, string, map[string]string) {
	return uuid.New(),
		time.Date(2026, 3, 14, 15, 9, 0, 0, time.UTC),
		decimal.NewFromFloat(120.50),
		"EUR",
		uuid.New(),
		uuid.New(),
		"RETAIL",
		map[string]string{"source_country": "DE"}
}

func TestNewTransaction(t *testing.T) {
	id, ts, amount, currency, sender, receiver, category, meta := validArgs()

	tx, err := model.NewTransaction(id, ts, amount, currency, sender, receiver, category, meta)
	require.NoError(t, err)

	assert.Equal(t, id, tx.ID())
	assert.Equal(t, ts, tx.Timestamp())
	assert.True(t, tx.Amount().Equal(amount))
	assert.Equal(t, "EUR", tx.Currency())
	assert.Equal(t, sender, tx.SenderAccount())
	assert.Equal(t, receiver, tx.ReceiverAccount())
	assert.Equal(t, "RETAIL", tx.MerchantCategory())
	assert.Equal(t, "DE", tx.Metadata("source_country"))
	assert.Equal(t, "", tx.Metadata("device_id"))
}

func TestNewTransaction_GeneratesID(t *testing.T) {
	_, ts, amount, currency, sender, receiver, category, _ := validArgs()

	tx, err := model.NewTransaction(uuid.Nil, ts, amount, currency, sender, receiver, category, nil)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, tx.ID())
}

func TestNewTransaction_UnknownMerchantCategory(t *testing.T) {
	_, ts, amount, currency, sender, receiver, _, _ := validArgs()

	tx, err := model.NewTransaction(uuid.Nil, ts, amount, currency, sender, receiver, "", nil)
	require.NoError(t, err)
	assert.Equal(t, model.MerchantCategoryUnknown, tx.MerchantCategory())
}

func TestNewTransaction_ValidationErrors(t *testing.T) {
	id, ts, amount, currency, sender, receiver, category, meta := validArgs()

	tests := []struct {
		name  string
		field string
		run   func() (model.Transaction, error)
	}{
		{
			name:  "zero timestamp",
			field: "timestamp",
			run: func() (model.Transaction, error) {
				return model.NewTransaction(id, time.Time{}, amount, currency, sender, receiver, category, meta)
			},
		},
		{
			name:  "zero amount",
			field: "amount",
			run: func() (model.Transaction, error) {
				return model.NewTransaction(id, ts, decimal.Zero, currency, sender, receiver, category, meta)
			},
		},
		{
			name:  "negative amount",
			field: "amount",
			run: func() (model.Transaction, error) {
				return model.NewTransaction(id, ts, decimal.NewFromInt(-5), currency, sender, receiver, category, meta)
			},
		},
		{
			name:  "missing currency",
			field: "currency",
			run: func() (model.Transaction, error) {
				return model.NewTransaction(id, ts, amount, "", sender, receiver, category, meta)
			},
		},
		{
			name:  "missing sender",
			field: "sender_account",
			run: func() (model.Transaction, error) {
				return model.NewTransaction(id, ts, amount, currency, uuid.Nil, receiver, category, meta)
			},
		},
		{
			name:  "missing receiver",
			field: "receiver_account",
			run: func() (model.Transaction, error) {
				return model.NewTransaction(id, ts, amount, currency, sender, uuid.Nil, category, meta)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.run()
			require.Error(t, err)

			var vErr *model.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestTransaction_MetadataIsCopied(t *testing.T) {
	id, ts, amount, currency, sender, receiver, category, _ := validArgs()

	meta := map[string]string{"device_id": "abc"}
	tx, err := model.NewTransaction(id, ts, amount, currency, sender, receiver, category, meta)
	require.NoError(t, err)

	// Mutating the caller's map must not leak into the transaction.
	meta["device_id"] = "mutated"
	assert.Equal(t, "abc", tx.Metadata("device_id"))
}
