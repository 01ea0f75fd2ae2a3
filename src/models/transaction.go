package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind identifies the direction of a transaction.
type TransactionKind string

const (
	KindBuy  TransactionKind = "BUY"
	KindSell TransactionKind = "SELL"
)

// TransactionStatus is the lifecycle state of a transaction. Only completed
// rows participate in gain/loss computation.
type TransactionStatus string

const (
	StatusCompleted TransactionStatus = "COMPLETED"
	StatusPending   TransactionStatus = "PENDING"
	StatusCancelled TransactionStatus = "CANCELLED"
)

// Transaction is a single buy or sell of an asset as stored for a user.
// Monetary fields are decimals so the engine never accumulates float drift;
// conversion to float happens only at the HTTP response boundary.
type Transaction struct {
	ID        string            `json:"id"`
	UserID    int64             `json:"user_id,omitempty"`
	AssetID   string            `json:"asset_id"`
	AssetName string            `json:"asset_name"`
	Kind      TransactionKind   `json:"kind"`
	Quantity  decimal.Decimal   `json:"quantity"`
	UnitPrice decimal.Decimal   `json:"unit_price"`
	Fee       decimal.Decimal   `json:"fee"`
	Timestamp time.Time         `json:"timestamp"`
	Status    TransactionStatus `json:"status"`
}

// TotalValue is the gross value of the transaction (quantity * unit price),
// before fees.
func (t Transaction) TotalValue() decimal.Decimal {
	return t.Quantity.Mul(t.UnitPrice)
}

// SkippedTransaction reports a malformed input row that was excluded from the
// computation instead of aborting it.
type SkippedTransaction struct {
	TransactionID string `json:"transaction_id"`
	AssetID       string `json:"asset_id"`
	Reason        string `json:"reason"`
}
