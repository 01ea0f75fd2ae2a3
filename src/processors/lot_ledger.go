package processors

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/username/gainledger/src/models"
)

// LotLedger is the FIFO queue of open acquisition lots for a single asset.
// Lots are kept ordered by acquisition time: Acquire only appends (callers
// feed it chronologically sorted buys) and Consume only drains from the head,
// so the oldest lot is always matched first.
//
// A ledger lives for one summary computation and is never shared between
// calls; concurrent requests each build their own ledger set.
type LotLedger struct {
	assetID   string
	assetName string
	lots      []models.Lot
}

func NewLotLedger(assetID, assetName string) *LotLedger {
	return &LotLedger{assetID: assetID, assetName: assetName}
}

// Acquire appends a new open lot at the tail of the queue.
func (l *LotLedger) Acquire(quantity, unitCost decimal.Decimal, acquiredAt time.Time) {
	l.lots = append(l.lots, models.Lot{
		AssetID:    l.assetID,
		AssetName:  l.assetName,
		Quantity:   quantity,
		UnitCost:   unitCost,
		AcquiredAt: acquiredAt,
	})
}

// Consume removes up to quantity units from the head of the queue, oldest
// lot first. It returns the matched portions, each carrying the quantity
// taken and that lot's unit cost, and the shortfall still unsatisfied after
// the queue was exhausted (zero in the normal case). A non-zero shortfall
// means the asset was oversold; the caller decides how to report it.
func (l *LotLedger) Consume(quantity decimal.Decimal) ([]models.LotMatch, decimal.Decimal) {
	var matched []models.LotMatch
	remaining := quantity

	for remaining.IsPositive() && len(l.lots) > 0 {
		lot := &l.lots[0]
		take := decimal.Min(remaining, lot.Quantity)

		matched = append(matched, models.LotMatch{
			AcquiredAt: lot.AcquiredAt,
			Quantity:   take,
			UnitCost:   lot.UnitCost,
		})

		remaining = remaining.Sub(take)
		lot.Quantity = lot.Quantity.Sub(take)
		if lot.Quantity.IsZero() {
			l.lots = l.lots[1:]
		}
	}

	return matched, remaining
}

// RemainingQuantity is the total open (unsold) quantity across all lots.
func (l *LotLedger) RemainingQuantity() decimal.Decimal {
	total := decimal.Zero
	for _, lot := range l.lots {
		total = total.Add(lot.Quantity)
	}
	return total
}

// OpenLots returns a copy of the still-open lots in FIFO order.
func (l *LotLedger) OpenLots() []models.Lot {
	out := make([]models.Lot, len(l.lots))
	copy(out, l.lots)
	return out
}
