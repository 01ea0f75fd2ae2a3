package processors

import (
	"sort"
	"time"

	"github.com/username/gainledger/src/models"
)

// NormalizeTransactions filters an arbitrary-order transaction list down to
// the completed buys and sells inside the inclusive [periodStart, periodEnd]
// range and returns them sorted ascending by (timestamp, id). The id
// tie-break gives a total order, so FIFO matching is deterministic even when
// several transactions share a timestamp.
//
// Malformed rows (non-positive quantity, negative price or fee, missing id,
// asset or timestamp) are excluded and reported as skipped rather than
// aborting the whole computation. Rows outside the period, with other kinds,
// or in a non-completed status are silently out of scope.
func NormalizeTransactions(txs []models.Transaction, periodStart, periodEnd time.Time) ([]models.Transaction, []models.SkippedTransaction) {
	normalized := make([]models.Transaction, 0, len(txs))
	var skipped []models.SkippedTransaction

	for _, tx := range txs {
		if tx.Kind != models.KindBuy && tx.Kind != models.KindSell {
			continue
		}
		if tx.Status != models.StatusCompleted {
			continue
		}
		if reason, ok := validate(tx); !ok {
			skipped = append(skipped, models.SkippedTransaction{
				TransactionID: tx.ID,
				AssetID:       tx.AssetID,
				Reason:        reason,
			})
			continue
		}
		if tx.Timestamp.Before(periodStart) || tx.Timestamp.After(periodEnd) {
			continue
		}
		normalized = append(normalized, tx)
	}

	sort.Slice(normalized, func(i, j int) bool {
		if !normalized[i].Timestamp.Equal(normalized[j].Timestamp) {
			return normalized[i].Timestamp.Before(normalized[j].Timestamp)
		}
		return normalized[i].ID < normalized[j].ID
	})

	return normalized, skipped
}

func validate(tx models.Transaction) (string, bool) {
	switch {
	case tx.ID == "":
		return "missing transaction id", false
	case tx.AssetID == "":
		return "missing asset id", false
	case tx.Timestamp.IsZero():
		return "missing timestamp", false
	case !tx.Quantity.IsPositive():
		return "quantity must be positive", false
	case tx.UnitPrice.IsNegative():
		return "unit price cannot be negative", false
	case tx.Fee.IsNegative():
		return "fee cannot be negative", false
	}
	return "", true
}
