package processors

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/username/gainledger/src/models"
)

func defaultEngine(t *testing.T) *TaxTierEngine {
	t.Helper()
	engine, err := NewTaxTierEngine(DefaultTaxBrackets())
	if err != nil {
		t.Fatalf("default bracket table rejected: %v", err)
	}
	return engine
}

func TestTaxTierWholeGainTaxedAtBracketRate(t *testing.T) {
	engine := defaultEngine(t)

	tests := []struct {
		name     string
		netGain  string
		wantTax  string
		wantRate string
	}{
		{"small gain lands in first tier", "200", "30", "0.15"},
		{"upper edge of first tier", "9999.99", "1499.9985", "0.15"},
		{"first threshold moves whole gain to second tier", "10000", "1750", "0.175"},
		{"third tier", "45000", "9000", "0.20"},
		{"top tier is unbounded", "1000000", "225000", "0.225"},
		{"zero gain", "0", "0", "0"},
		{"net loss clamps to zero", "-500", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tax, rate := engine.EstimateTax(d(tt.netGain))
			assertDecimal(t, "tax", tax, d(tt.wantTax))
			assertDecimal(t, "rate", rate, d(tt.wantRate))
		})
	}
}

func TestNewTaxTierEngineRejectsBadTables(t *testing.T) {
	bound := func(s string) *decimal.Decimal {
		v := d(s)
		return &v
	}

	tests := []struct {
		name     string
		brackets []models.TaxBracket
	}{
		{"empty table", nil},
		{"first bracket not at zero", []models.TaxBracket{
			{LowerBound: d("100"), Rate: d("0.15")},
		}},
		{"gap between brackets", []models.TaxBracket{
			{LowerBound: d("0"), UpperBound: bound("100"), Rate: d("0.15")},
			{LowerBound: d("200"), Rate: d("0.20")},
		}},
		{"bounded last bracket", []models.TaxBracket{
			{LowerBound: d("0"), UpperBound: bound("100"), Rate: d("0.15")},
			{LowerBound: d("100"), UpperBound: bound("200"), Rate: d("0.20")},
		}},
		{"inverted bounds", []models.TaxBracket{
			{LowerBound: d("0"), UpperBound: bound("0"), Rate: d("0.15")},
			{LowerBound: d("0"), Rate: d("0.20")},
		}},
		{"negative rate", []models.TaxBracket{
			{LowerBound: d("0"), Rate: d("-0.15")},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewTaxTierEngine(tt.brackets); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}

func TestLoadTaxBrackets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brackets.json")
	content := `[
		{"lower_bound": "0", "upper_bound": "5000", "rate": "0.10"},
		{"lower_bound": "5000", "upper_bound": null, "rate": "0.30"}
	]`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	brackets, err := LoadTaxBrackets(path)
	if err != nil {
		t.Fatalf("LoadTaxBrackets: %v", err)
	}
	engine, err := NewTaxTierEngine(brackets)
	if err != nil {
		t.Fatalf("loaded table rejected: %v", err)
	}

	tax, rate := engine.EstimateTax(d("1000"))
	assertDecimal(t, "tax", tax, d("100"))
	assertDecimal(t, "rate", rate, d("0.10"))
}

func TestLoadTaxBracketsMissingFile(t *testing.T) {
	if _, err := LoadTaxBrackets(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
