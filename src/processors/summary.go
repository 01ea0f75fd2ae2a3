package processors

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/username/gainledger/src/models"
)

// ComputeTaxSummary turns a user's raw transaction history into the tax
// summary for the inclusive [periodStart, periodEnd] range. It is a pure
// function: no storage, no clock, no shared state — every call builds its own
// ledgers, so concurrent calls for different users or periods are independent.
//
// The caller is responsible for supplying an already-validated period
// (periodStart <= periodEnd, both parseable).
func ComputeTaxSummary(txs []models.Transaction, periodStart, periodEnd time.Time, tiers *TaxTierEngine) *models.TaxSummary {
	normalized, skipped := NormalizeTransactions(txs, periodStart, periodEnd)
	match := NewGainLossMatcher().Process(normalized)
	return aggregate(models.Period{Start: periodStart, End: periodEnd}, normalized, match, skipped, tiers)
}

// aggregate folds the matcher's output and running totals into the final
// summary. No matching logic happens here.
func aggregate(period models.Period, normalized []models.Transaction, match MatchResult, skipped []models.SkippedTransaction, tiers *TaxTierEngine) *models.TaxSummary {
	type assetResult struct {
		gain decimal.Decimal
		loss decimal.Decimal
	}

	realizedGains := decimal.Zero
	realizedLosses := decimal.Zero
	perAsset := make(map[string]*assetResult)
	eventByTx := make(map[string]*models.RealizedEvent, len(match.Events))

	for i := range match.Events {
		ev := &match.Events[i]
		eventByTx[ev.SellTransactionID] = ev

		res := perAsset[ev.AssetID]
		if res == nil {
			res = &assetResult{gain: decimal.Zero, loss: decimal.Zero}
			perAsset[ev.AssetID] = res
		}
		// An exact-zero event is neither a gain nor a loss; it still shows
		// up in the transaction report below.
		switch {
		case ev.GainOrLoss.IsPositive():
			realizedGains = realizedGains.Add(ev.GainOrLoss)
			res.gain = res.gain.Add(ev.GainOrLoss)
		case ev.GainOrLoss.IsNegative():
			realizedLosses = realizedLosses.Add(ev.GainOrLoss.Abs())
			res.loss = res.loss.Add(ev.GainOrLoss.Abs())
		}
	}

	netGainLoss := realizedGains.Sub(realizedLosses)
	estimatedTax, taxRate := tiers.EstimateTax(netGainLoss)

	assetIDs := make([]string, 0, len(match.AssetFlows))
	for assetID := range match.AssetFlows {
		assetIDs = append(assetIDs, assetID)
	}
	sort.Strings(assetIDs)

	byAsset := make([]models.AssetSummary, 0, len(assetIDs))
	for _, assetID := range assetIDs {
		flow := match.AssetFlows[assetID]
		gain, loss := decimal.Zero, decimal.Zero
		if res := perAsset[assetID]; res != nil {
			gain, loss = res.gain, res.loss
		}
		byAsset = append(byAsset, models.AssetSummary{
			AssetID:      assetID,
			AssetName:    flow.AssetName,
			Invested:     flow.Invested,
			Received:     flow.Received,
			RealizedGain: gain,
			RealizedLoss: loss,
			NetGainLoss:  gain.Sub(loss),
		})
	}

	reported := make([]models.ReportedTransaction, 0, len(normalized))
	for _, tx := range normalized {
		row := models.ReportedTransaction{Transaction: tx}
		if ev, ok := eventByTx[tx.ID]; ok {
			gainOrLoss := ev.GainOrLoss
			row.GainOrLoss = &gainOrLoss
		}
		reported = append(reported, row)
	}

	return &models.TaxSummary{
		Period:         period,
		TotalInvested:  match.TotalInvested,
		TotalReceived:  match.TotalReceived,
		RealizedGains:  realizedGains,
		RealizedLosses: realizedLosses,
		NetGainLoss:    netGainLoss,
		EstimatedTax:   estimatedTax,
		TaxRate:        taxRate,
		ByAsset:        byAsset,
		Transactions:   reported,
		Skipped:        skipped,
		Anomalies:      match.Anomalies,
	}
}

// ComputeHoldings runs the matcher over the entire history and returns the
// lots still open, i.e. the user's current FIFO inventory.
func ComputeHoldings(txs []models.Transaction) []models.Lot {
	start := time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)
	normalized, _ := NormalizeTransactions(txs, start, end)
	match := NewGainLossMatcher().Process(normalized)
	return match.OpenLots
}
