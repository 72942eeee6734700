package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MerchantCategoryUnknown is the reserved bucket for transactions that arrive
// without a merchant category. Imputing to a named bucket keeps the feature
// vector aligned; silently dropping the field would not.
const MerchantCategoryUnknown = "UNKNOWN"

// ValidationError reports a malformed or incomplete transaction. It is
// returned before any model work happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid transaction: %s %s", e.Field, e.Reason)
}

// Transaction is a single financial transfer event submitted for risk
// evaluation. It is immutable once constructed; the pipeline only reads it.
type Transaction struct {
	timestamp        time.Time
	amount           decimal.Decimal
	currency         string
	merchantCategory string
	metadata         map[string]string
	id               uuid.UUID
	senderAccount    uuid.UUID
	receiverAccount  uuid.UUID
}

// NewTransaction validates and constructs a Transaction. Amount, timestamp,
// currency and both account identifiers are mandatory; the merchant category
// defaults to the UNKNOWN bucket and metadata may be nil. A zero id is
// replaced with a generated one.
func NewTransaction(
	id uuid.UUID,
	timestamp time.Time,
	amount decimal.Decimal,
	currency string,
	senderAccount uuid.UUID,
	receiverAccount uuid.UUID,
	merchantCategory string,
	metadata map[string]string,
) (Transaction, error) {
	if timestamp.IsZero() {
		return Transaction{}, &ValidationError{Field: "timestamp", Reason: "is required"}
	}
	if amount.IsZero() || amount.IsNegative() {
		return Transaction{}, &ValidationError{Field: "amount", Reason: "must be positive"}
	}
	if currency == "" {
		return Transaction{}, &ValidationError{Field: "currency", Reason: "is required"}
	}
	if senderAccount == uuid.Nil {
		return Transaction{}, &ValidationError{Field: "sender_account", Reason: "is required"}
	}
	if receiverAccount == uuid.Nil {
		return Transaction{}, &ValidationError{Field: "receiver_account", Reason: "is required"}
	}

	if id == uuid.Nil {
		id = uuid.New()
	}
	if merchantCategory == "" {
		merchantCategory = MerchantCategoryUnknown
	}

	var meta map[string]string
	if len(metadata) > 0 {
		meta = make(map[string]string, len(metadata))
		for k, v := range metadata {
			meta[k] = v
		}
	}

	return Transaction{
		id:               id,
		timestamp:        timestamp.UTC(),
		amount:           amount,
		currency:         currency,
		senderAccount:    senderAccount,
		receiverAccount:  receiverAccount,
		merchantCategory: merchantCategory,
		metadata:         meta,
	}, nil
}

func (t Transaction) ID() uuid.UUID              { return t.id }
func (t Transaction) Timestamp() time.Time       { return t.timestamp }
func (t Transaction) Amount() decimal.Decimal    { return t.amount }
func (t Transaction) Currency() string           { return t.currency }
func (t Transaction) SenderAccount() uuid.UUID   { return t.senderAccount }
func (t Transaction) ReceiverAccount() uuid.UUID { return t.receiverAccount }
func (t Transaction) MerchantCategory() string   { return t.merchantCategory }

// Metadata returns the optional device/location metadata value for key, or ""
// when absent.
func (t Transaction) Metadata(key string) string {
	return t.metadata[key]
}
