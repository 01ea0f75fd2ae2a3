package processors

import (
	"testing"

	"github.com/username/gainledger/src/models"
)

func TestMatcherFIFOCostBasis(t *testing.T) {
	txs := []models.Transaction{
		newTx("b1", "AAPL", models.KindBuy, "5", "100", "0", "2025-01-10"),
		newTx("b2", "AAPL", models.KindBuy, "5", "200", "0", "2025-02-10"),
		newTx("s1", "AAPL", models.KindSell, "6", "150", "0", "2025-03-10"),
	}

	result := NewGainLossMatcher().Process(txs)

	if len(result.Events) != 1 {
		t.Fatalf("got %d events, want 1", len(result.Events))
	}
	ev := result.Events[0]
	assertDecimal(t, "cost basis", ev.CostBasis, d("700")) // 5*100 + 1*200
	assertDecimal(t, "proceeds", ev.Proceeds, d("900"))
	assertDecimal(t, "gain", ev.GainOrLoss, d("200"))
	assertDecimal(t, "quantity matched", ev.QuantityMatched, d("6"))
	if len(ev.MatchedLots) != 2 {
		t.Fatalf("matched %d lots, want 2", len(ev.MatchedLots))
	}

	if len(result.OpenLots) != 1 {
		t.Fatalf("got %d open lots, want 1", len(result.OpenLots))
	}
	assertDecimal(t, "open lot quantity", result.OpenLots[0].Quantity, d("4"))
	assertDecimal(t, "open lot unit cost", result.OpenLots[0].UnitCost, d("200"))
}

func TestMatcherFeesReduceProceedsNotBasis(t *testing.T) {
	txs := []models.Transaction{
		newTx("b1", "AAPL", models.KindBuy, "10", "100", "5", "2025-01-10"),
		newTx("s1", "AAPL", models.KindSell, "10", "120", "3", "2025-02-10"),
	}

	result := NewGainLossMatcher().Process(txs)

	// Buy fee goes into invested, sell fee comes off proceeds.
	assertDecimal(t, "total invested", result.TotalInvested, d("1005"))
	assertDecimal(t, "total received", result.TotalReceived, d("1200"))

	ev := result.Events[0]
	assertDecimal(t, "cost basis", ev.CostBasis, d("1000"))
	assertDecimal(t, "proceeds", ev.Proceeds, d("1197"))
	assertDecimal(t, "gain", ev.GainOrLoss, d("197"))
}

func TestMatcherAssetsNeverInteract(t *testing.T) {
	txs := []models.Transaction{
		newTx("b1", "AAPL", models.KindBuy, "5", "100", "0", "2025-01-10"),
		newTx("b2", "MSFT", models.KindBuy, "5", "10", "0", "2025-01-11"),
		newTx("s1", "AAPL", models.KindSell, "5", "110", "0", "2025-02-10"),
		newTx("s2", "MSFT", models.KindSell, "5", "8", "0", "2025-02-11"),
	}

	result := NewGainLossMatcher().Process(txs)

	if len(result.Events) != 2 {
		t.Fatalf("got %d events, want 2", len(result.Events))
	}
	assertDecimal(t, "AAPL gain", result.Events[0].GainOrLoss, d("50"))
	assertDecimal(t, "MSFT loss", result.Events[1].GainOrLoss, d("-10"))

	assertDecimal(t, "AAPL invested", result.AssetFlows["AAPL"].Invested, d("500"))
	assertDecimal(t, "AAPL received", result.AssetFlows["AAPL"].Received, d("550"))
	assertDecimal(t, "MSFT invested", result.AssetFlows["MSFT"].Invested, d("50"))
	assertDecimal(t, "MSFT received", result.AssetFlows["MSFT"].Received, d("40"))
}

func TestMatcherOversoldProducesAnomaly(t *testing.T) {
	txs := []models.Transaction{
		newTx("b1", "AAPL", models.KindBuy, "4", "100", "0", "2025-01-10"),
		newTx("s1", "AAPL", models.KindSell, "10", "150", "5", "2025-02-10"),
	}

	result := NewGainLossMatcher().Process(txs)

	if len(result.Events) != 1 {
		t.Fatalf("got %d events, want 1", len(result.Events))
	}
	ev := result.Events[0]
	assertDecimal(t, "quantity matched", ev.QuantityMatched, d("4"))
	assertDecimal(t, "cost basis", ev.CostBasis, d("400"))
	// Proceeds cover the matched portion only: 4*150 minus 4/10 of the fee.
	assertDecimal(t, "proceeds", ev.Proceeds, d("598"))
	assertDecimal(t, "gain", ev.GainOrLoss, d("198"))

	if len(result.Anomalies) != 1 {
		t.Fatalf("got %d anomalies, want 1", len(result.Anomalies))
	}
	an := result.Anomalies[0]
	if an.SellTransactionID != "s1" {
		t.Errorf("anomaly transaction = %s, want s1", an.SellTransactionID)
	}
	assertDecimal(t, "unmatched quantity", an.UnmatchedQuantity, d("6"))
	assertDecimal(t, "unmatched proceeds", an.UnmatchedProceeds, d("900"))

	// Gross sale value still counts as received cash.
	assertDecimal(t, "total received", result.TotalReceived, d("1500"))
}

func TestMatcherSellWithNoLotsAtAll(t *testing.T) {
	txs := []models.Transaction{
		newTx("s1", "AAPL", models.KindSell, "3", "50", "0", "2025-02-10"),
	}

	result := NewGainLossMatcher().Process(txs)

	if len(result.Events) != 0 {
		t.Fatalf("got %d events, want none", len(result.Events))
	}
	if len(result.Anomalies) != 1 {
		t.Fatalf("got %d anomalies, want 1", len(result.Anomalies))
	}
	assertDecimal(t, "unmatched quantity", result.Anomalies[0].UnmatchedQuantity, d("3"))
	assertDecimal(t, "total received", result.TotalReceived, d("150"))
}
