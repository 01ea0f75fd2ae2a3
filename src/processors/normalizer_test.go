package processors

import (
	"testing"

	"github.com/username/gainledger/src/models"
)

func TestNormalizeFiltersAndSorts(t *testing.T) {
	txs := []models.Transaction{
		newTx("t3", "AAPL", models.KindSell, "1", "120", "0", "2025-03-01"),
		newTx("t1", "AAPL", models.KindBuy, "5", "100", "0", "2025-01-10"),
		newTx("t2", "AAPL", models.KindBuy, "5", "110", "0", "2025-02-10"),
	}
	// Out of period, wrong status, wrong kind: all silently out of scope.
	outOfPeriod := newTx("t0", "AAPL", models.KindBuy, "5", "90", "0", "2024-12-31")
	pending := newTx("t4", "AAPL", models.KindBuy, "5", "90", "0", "2025-04-01")
	pending.Status = models.StatusPending
	dividend := newTx("t5", "AAPL", "DIVIDEND", "1", "3", "0", "2025-04-02")
	txs = append(txs, outOfPeriod, pending, dividend)

	normalized, skipped := NormalizeTransactions(txs, day("2025-01-01"), day("2025-12-31"))

	if len(skipped) != 0 {
		t.Fatalf("skipped = %v, want none", skipped)
	}
	if len(normalized) != 3 {
		t.Fatalf("normalized %d transactions, want 3", len(normalized))
	}
	for i, wantID := range []string{"t1", "t2", "t3"} {
		if normalized[i].ID != wantID {
			t.Errorf("normalized[%d].ID = %s, want %s", i, normalized[i].ID, wantID)
		}
	}
}

func TestNormalizeTieBreaksOnID(t *testing.T) {
	txs := []models.Transaction{
		newTx("b", "AAPL", models.KindBuy, "1", "100", "0", "2025-01-10"),
		newTx("a", "AAPL", models.KindBuy, "1", "100", "0", "2025-01-10"),
		newTx("c", "AAPL", models.KindBuy, "1", "100", "0", "2025-01-10"),
	}

	normalized, _ := NormalizeTransactions(txs, day("2025-01-01"), day("2025-12-31"))

	for i, wantID := range []string{"a", "b", "c"} {
		if normalized[i].ID != wantID {
			t.Errorf("normalized[%d].ID = %s, want %s", i, normalized[i].ID, wantID)
		}
	}
}

func TestNormalizeReportsMalformedRows(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*models.Transaction)
		wantReason string
	}{
		{"negative quantity", func(tx *models.Transaction) { tx.Quantity = d("-1") }, "quantity must be positive"},
		{"zero quantity", func(tx *models.Transaction) { tx.Quantity = d("0") }, "quantity must be positive"},
		{"negative price", func(tx *models.Transaction) { tx.UnitPrice = d("-5") }, "unit price cannot be negative"},
		{"negative fee", func(tx *models.Transaction) { tx.Fee = d("-1") }, "fee cannot be negative"},
		{"missing id", func(tx *models.Transaction) { tx.ID = "" }, "missing transaction id"},
		{"missing asset", func(tx *models.Transaction) { tx.AssetID = "" }, "missing asset id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := newTx("bad", "AAPL", models.KindBuy, "1", "100", "0", "2025-01-10")
			tt.mutate(&bad)
			good := newTx("good", "AAPL", models.KindBuy, "1", "100", "0", "2025-01-11")

			normalized, skipped := NormalizeTransactions([]models.Transaction{bad, good}, day("2025-01-01"), day("2025-12-31"))

			if len(normalized) != 1 || normalized[0].ID != "good" {
				t.Fatalf("normalized = %v, want only the valid row", normalized)
			}
			if len(skipped) != 1 {
				t.Fatalf("skipped %d rows, want 1", len(skipped))
			}
			if skipped[0].Reason != tt.wantReason {
				t.Errorf("reason = %q, want %q", skipped[0].Reason, tt.wantReason)
			}
		})
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	normalized, skipped := NormalizeTransactions(nil, day("2025-01-01"), day("2025-12-31"))
	if len(normalized) != 0 || len(skipped) != 0 {
		t.Fatalf("empty input should yield empty output, got %v / %v", normalized, skipped)
	}
}

func TestNormalizePeriodBoundsAreInclusive(t *testing.T) {
	txs := []models.Transaction{
		newTx("first", "AAPL", models.KindBuy, "1", "100", "0", "2025-01-01"),
		newTx("last", "AAPL", models.KindBuy, "1", "100", "0", "2025-12-31"),
	}

	normalized, _ := NormalizeTransactions(txs, day("2025-01-01"), day("2025-12-31"))
	if len(normalized) != 2 {
		t.Fatalf("normalized %d transactions, want both boundary rows", len(normalized))
	}
}
