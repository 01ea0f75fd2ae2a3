package processors

import (
	"testing"
)

func TestLotLedgerConsumesOldestFirst(t *testing.T) {
	ledger := NewLotLedger("AAPL", "Apple Inc.")
	ledger.Acquire(d("5"), d("100"), day("2025-01-10"))
	ledger.Acquire(d("5"), d("200"), day("2025-02-10"))

	matched, shortfall := ledger.Consume(d("6"))

	if !shortfall.IsZero() {
		t.Fatalf("shortfall = %s, want 0", shortfall)
	}
	if len(matched) != 2 {
		t.Fatalf("matched %d lots, want 2", len(matched))
	}
	assertDecimal(t, "first lot quantity", matched[0].Quantity, d("5"))
	assertDecimal(t, "first lot unit cost", matched[0].UnitCost, d("100"))
	assertDecimal(t, "second lot quantity", matched[1].Quantity, d("1"))
	assertDecimal(t, "second lot unit cost", matched[1].UnitCost, d("200"))
	assertDecimal(t, "remaining quantity", ledger.RemainingQuantity(), d("4"))
}

func TestLotLedgerPartialLotStaysAtHead(t *testing.T) {
	ledger := NewLotLedger("BTC", "Bitcoin")
	ledger.Acquire(d("10"), d("100"), day("2025-01-01"))

	matched, shortfall := ledger.Consume(d("3"))
	if !shortfall.IsZero() || len(matched) != 1 {
		t.Fatalf("matched = %v, shortfall = %s", matched, shortfall)
	}
	assertDecimal(t, "remaining after partial consume", ledger.RemainingQuantity(), d("7"))

	// The partially consumed lot must keep its cost for the next sell.
	matched, _ = ledger.Consume(d("7"))
	if len(matched) != 1 {
		t.Fatalf("matched %d lots, want 1", len(matched))
	}
	assertDecimal(t, "unit cost of residual lot", matched[0].UnitCost, d("100"))
	assertDecimal(t, "remaining after full consume", ledger.RemainingQuantity(), d("0"))
}

func TestLotLedgerReportsShortfall(t *testing.T) {
	ledger := NewLotLedger("ETH", "Ethereum")
	ledger.Acquire(d("2"), d("50"), day("2025-03-01"))

	matched, shortfall := ledger.Consume(d("5"))

	assertDecimal(t, "shortfall", shortfall, d("3"))
	if len(matched) != 1 {
		t.Fatalf("matched %d lots, want 1", len(matched))
	}
	assertDecimal(t, "matched quantity", matched[0].Quantity, d("2"))
	assertDecimal(t, "remaining", ledger.RemainingQuantity(), d("0"))
}

func TestLotLedgerConserversQuantity(t *testing.T) {
	ledger := NewLotLedger("MSFT", "Microsoft")
	ledger.Acquire(d("4"), d("10"), day("2025-01-01"))
	ledger.Acquire(d("6"), d("12"), day("2025-01-02"))
	ledger.Acquire(d("2.5"), d("9"), day("2025-01-03"))

	consumed := d("0")
	for _, q := range []string{"3", "4.5", "1"} {
		matched, shortfall := ledger.Consume(d(q))
		if !shortfall.IsZero() {
			t.Fatalf("unexpected shortfall %s consuming %s", shortfall, q)
		}
		for _, m := range matched {
			consumed = consumed.Add(m.Quantity)
		}
		// acquired == consumed + remaining at every step
		assertDecimal(t, "conservation", consumed.Add(ledger.RemainingQuantity()), d("12.5"))
	}
}
