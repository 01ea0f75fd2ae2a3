package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxBracket is one tier of the progressive table: net gains in
// [LowerBound, UpperBound) are taxed at Rate. A nil UpperBound means the
// bracket is unbounded above.
type TaxBracket struct {
	LowerBound decimal.Decimal  `json:"lower_bound"`
	UpperBound *decimal.Decimal `json:"upper_bound"`
	Rate       decimal.Decimal  `json:"rate"`
}

// Period is the inclusive date range a tax summary covers.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// AssetSummary is the per-asset breakdown inside a TaxSummary.
type AssetSummary struct {
	AssetID      string          `json:"asset_id"`
	AssetName    string          `json:"asset_name"`
	Invested     decimal.Decimal `json:"invested"`
	Received     decimal.Decimal `json:"received"`
	RealizedGain decimal.Decimal `json:"realized_gain"`
	RealizedLoss decimal.Decimal `json:"realized_loss"`
	NetGainLoss  decimal.Decimal `json:"net_gain_loss"`
}

// ReportedTransaction is a transaction annotated for the summary report.
// GainOrLoss is set only on sell rows that realized a result; buy rows
// carry nil.
type ReportedTransaction struct {
	Transaction
	GainOrLoss *decimal.Decimal `json:"gain_or_loss,omitempty"`
}

// TaxSummary is the engine's sole output: period totals, the estimated tax,
// the per-asset breakdown and the annotated transaction list, plus any rows
// that were skipped or flagged while processing.
type TaxSummary struct {
	Period         Period                `json:"period"`
	TotalInvested  decimal.Decimal       `json:"total_invested"`
	TotalReceived  decimal.Decimal       `json:"total_received"`
	RealizedGains  decimal.Decimal       `json:"realized_gains"`
	RealizedLosses decimal.Decimal       `json:"realized_losses"`
	NetGainLoss    decimal.Decimal       `json:"net_gain_loss"`
	EstimatedTax   decimal.Decimal       `json:"estimated_tax"`
	TaxRate        decimal.Decimal       `json:"tax_rate"`
	ByAsset        []AssetSummary        `json:"by_asset"`
	Transactions   []ReportedTransaction `json:"transactions"`
	Skipped        []SkippedTransaction  `json:"skipped,omitempty"`
	Anomalies      []OversoldAnomaly     `json:"anomalies,omitempty"`
}
