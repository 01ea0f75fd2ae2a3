package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lot is a discrete quantity of an asset acquired at a specific price and
// time, tracked until fully sold. Quantity is the remaining (unsold) amount.
type Lot struct {
	AssetID    string          `json:"asset_id"`
	AssetName  string          `json:"asset_name"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	AcquiredAt time.Time       `json:"acquired_at"`
}

// LotMatch is one lot's contribution to satisfying a sell: the quantity
// taken from it and that lot's unit cost.
type LotMatch struct {
	AcquiredAt time.Time       `json:"acquired_at"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
}

// RealizedEvent is the gain or loss recognized by a single sell transaction.
// One event aggregates every lot consumed to satisfy that sell.
type RealizedEvent struct {
	AssetID           string          `json:"asset_id"`
	AssetName         string          `json:"asset_name"`
	SellTransactionID string          `json:"sell_transaction_id"`
	QuantityMatched   decimal.Decimal `json:"quantity_matched"`
	CostBasis         decimal.Decimal `json:"cost_basis"`
	Proceeds          decimal.Decimal `json:"proceeds"`
	GainOrLoss        decimal.Decimal `json:"gain_or_loss"`
	MatchedLots       []LotMatch      `json:"matched_lots"`
}

// OversoldAnomaly reports a sell whose quantity exceeded the total open lot
// quantity for its asset. The ledger cannot produce a cost basis for the
// unmatched residual, so it is surfaced instead of being matched at zero cost.
type OversoldAnomaly struct {
	AssetID           string          `json:"asset_id"`
	AssetName         string          `json:"asset_name"`
	SellTransactionID string          `json:"sell_transaction_id"`
	Timestamp         time.Time       `json:"timestamp"`
	UnmatchedQuantity decimal.Decimal `json:"unmatched_quantity"`
	UnmatchedProceeds decimal.Decimal `json:"unmatched_proceeds"`
}
