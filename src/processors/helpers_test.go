package processors

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/username/gainledger/src/models"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func newTx(id, assetID string, kind models.TransactionKind, qty, price, fee, date string) models.Transaction {
	return models.Transaction{
		ID:        id,
		AssetID:   assetID,
		AssetName: assetID,
		Kind:      kind,
		Quantity:  d(qty),
		UnitPrice: d(price),
		Fee:       d(fee),
		Timestamp: day(date),
		Status:    models.StatusCompleted,
	}
}

func assertDecimal(t *testing.T, name string, got, want decimal.Decimal) {
	t.Helper()
	if !got.Equal(want) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}
