package processors

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/username/gainledger/src/models"
)

// AssetFlow accumulates the invested/received cash flow for one asset while
// matching runs.
type AssetFlow struct {
	AssetName string
	Invested  decimal.Decimal
	Received  decimal.Decimal
}

// MatchResult is everything a single matching pass produces.
type MatchResult struct {
	Events        []models.RealizedEvent
	Anomalies     []models.OversoldAnomaly
	TotalInvested decimal.Decimal
	TotalReceived decimal.Decimal
	AssetFlows    map[string]*AssetFlow
	OpenLots      []models.Lot
}

// GainLossMatcher drives one forward pass over a normalized transaction
// sequence, feeding buys into per-asset lot ledgers and consuming sells
// against them. Ledgers are created lazily on the first buy for an asset and
// discarded with the matcher, so separate computations never interact.
type GainLossMatcher struct {
	ledgers map[string]*LotLedger
}

func NewGainLossMatcher() *GainLossMatcher {
	return &GainLossMatcher{ledgers: make(map[string]*LotLedger)}
}

// Process consumes the chronologically sorted transactions and returns the
// realized events, per-asset and total cash flows, oversold anomalies and
// the lots still open at the end of the pass.
//
// A buy contributes quantity*unitPrice + fee to invested. A sell contributes
// its gross quantity*unitPrice to received; its fee reduces net proceeds and
// is never added to cost basis. Positive gainOrLoss is a realized gain,
// negative a realized loss.
func (m *GainLossMatcher) Process(txs []models.Transaction) MatchResult {
	result := MatchResult{
		TotalInvested: decimal.Zero,
		TotalReceived: decimal.Zero,
		AssetFlows:    make(map[string]*AssetFlow),
	}

	for _, tx := range txs {
		flow := result.AssetFlows[tx.AssetID]
		if flow == nil {
			flow = &AssetFlow{
				AssetName: tx.AssetName,
				Invested:  decimal.Zero,
				Received:  decimal.Zero,
			}
			result.AssetFlows[tx.AssetID] = flow
		}

		switch tx.Kind {
		case models.KindBuy:
			ledger := m.ledgers[tx.AssetID]
			if ledger == nil {
				ledger = NewLotLedger(tx.AssetID, tx.AssetName)
				m.ledgers[tx.AssetID] = ledger
			}
			ledger.Acquire(tx.Quantity, tx.UnitPrice, tx.Timestamp)

			invested := tx.TotalValue().Add(tx.Fee)
			result.TotalInvested = result.TotalInvested.Add(invested)
			flow.Invested = flow.Invested.Add(invested)

		case models.KindSell:
			gross := tx.TotalValue()
			result.TotalReceived = result.TotalReceived.Add(gross)
			flow.Received = flow.Received.Add(gross)

			var matched []models.LotMatch
			shortfall := tx.Quantity
			if ledger := m.ledgers[tx.AssetID]; ledger != nil {
				matched, shortfall = ledger.Consume(tx.Quantity)
			}

			matchedQty := tx.Quantity.Sub(shortfall)
			if matchedQty.IsPositive() {
				costBasis := decimal.Zero
				for _, lot := range matched {
					costBasis = costBasis.Add(lot.Quantity.Mul(lot.UnitCost))
				}

				// Proceeds cover only the cost-basis-backed portion of the
				// sell; fee and gross value are prorated when part of the
				// quantity had no lot to match against.
				proceeds := gross.Sub(tx.Fee)
				if shortfall.IsPositive() {
					ratio := matchedQty.Div(tx.Quantity)
					proceeds = matchedQty.Mul(tx.UnitPrice).Sub(tx.Fee.Mul(ratio))
				}

				result.Events = append(result.Events, models.RealizedEvent{
					AssetID:           tx.AssetID,
					AssetName:         tx.AssetName,
					SellTransactionID: tx.ID,
					QuantityMatched:   matchedQty,
					CostBasis:         costBasis,
					Proceeds:          proceeds,
					GainOrLoss:        proceeds.Sub(costBasis),
					MatchedLots:       matched,
				})
			}

			if shortfall.IsPositive() {
				result.Anomalies = append(result.Anomalies, models.OversoldAnomaly{
					AssetID:           tx.AssetID,
					AssetName:         tx.AssetName,
					SellTransactionID: tx.ID,
					Timestamp:         tx.Timestamp,
					UnmatchedQuantity: shortfall,
					UnmatchedProceeds: shortfall.Mul(tx.UnitPrice),
				})
			}
		}
	}

	assetIDs := make([]string, 0, len(m.ledgers))
	for assetID := range m.ledgers {
		assetIDs = append(assetIDs, assetID)
	}
	sort.Strings(assetIDs)
	for _, assetID := range assetIDs {
		result.OpenLots = append(result.OpenLots, m.ledgers[assetID].OpenLots()...)
	}

	return result
}
