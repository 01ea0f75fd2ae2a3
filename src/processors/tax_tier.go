package processors

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/username/gainledger/src/models"
)

// TaxTierEngine maps a net realized gain to an estimated tax liability via a
// progressive bracket table. The whole net gain is taxed at the flat rate of
// the single bracket it falls into; brackets do not split marginally.
type TaxTierEngine struct {
	brackets []models.TaxBracket
}

// NewTaxTierEngine validates the bracket table: ordered by lower bound,
// contiguous, non-overlapping, starting at zero and unbounded at the top.
func NewTaxTierEngine(brackets []models.TaxBracket) (*TaxTierEngine, error) {
	if len(brackets) == 0 {
		return nil, fmt.Errorf("tax bracket table is empty")
	}
	if !brackets[0].LowerBound.IsZero() {
		return nil, fmt.Errorf("first tax bracket must start at 0, got %s", brackets[0].LowerBound)
	}
	for i, b := range brackets {
		if b.Rate.IsNegative() {
			return nil, fmt.Errorf("tax bracket %d has negative rate %s", i, b.Rate)
		}
		last := i == len(brackets)-1
		if last {
			if b.UpperBound != nil {
				return nil, fmt.Errorf("last tax bracket must be unbounded")
			}
			continue
		}
		if b.UpperBound == nil {
			return nil, fmt.Errorf("tax bracket %d is unbounded but not last", i)
		}
		if !b.UpperBound.GreaterThan(b.LowerBound) {
			return nil, fmt.Errorf("tax bracket %d has upper bound %s <= lower bound %s", i, b.UpperBound, b.LowerBound)
		}
		if !brackets[i+1].LowerBound.Equal(*b.UpperBound) {
			return nil, fmt.Errorf("tax brackets %d and %d are not contiguous", i, i+1)
		}
	}
	return &TaxTierEngine{brackets: brackets}, nil
}

// Rate returns the flat rate for the bracket containing netGain. Net gains
// are clamped to zero first: losses never produce a negative tax or rebate,
// and a non-positive net gain yields a zero rate.
func (e *TaxTierEngine) Rate(netGain decimal.Decimal) decimal.Decimal {
	if !netGain.IsPositive() {
		return decimal.Zero
	}
	for _, b := range e.brackets {
		if netGain.GreaterThanOrEqual(b.LowerBound) && (b.UpperBound == nil || netGain.LessThan(*b.UpperBound)) {
			return b.Rate
		}
	}
	// Unreachable with a validated table.
	return decimal.Zero
}

// EstimateTax returns the estimated tax on netGain and the rate applied.
func (e *TaxTierEngine) EstimateTax(netGain decimal.Decimal) (tax, rate decimal.Decimal) {
	rate = e.Rate(netGain)
	if rate.IsZero() {
		return decimal.Zero, decimal.Zero
	}
	return netGain.Mul(rate), rate
}

// DefaultTaxBrackets is the built-in four-tier table. The exact thresholds
// are a configuration concern; deployments override them via LoadTaxBrackets.
func DefaultTaxBrackets() []models.TaxBracket {
	bound := func(s string) *decimal.Decimal {
		d := decimal.RequireFromString(s)
		return &d
	}
	return []models.TaxBracket{
		{LowerBound: decimal.Zero, UpperBound: bound("10000"), Rate: decimal.RequireFromString("0.15")},
		{LowerBound: decimal.RequireFromString("10000"), UpperBound: bound("30000"), Rate: decimal.RequireFromString("0.175")},
		{LowerBound: decimal.RequireFromString("30000"), UpperBound: bound("60000"), Rate: decimal.RequireFromString("0.20")},
		{LowerBound: decimal.RequireFromString("60000"), UpperBound: nil, Rate: decimal.RequireFromString("0.225")},
	}
}

// LoadTaxBrackets reads a bracket table from a JSON data file, in the same
// way the historical data loaders work: called once at startup, result passed
// into the engine construction.
func LoadTaxBrackets(path string) ([]models.TaxBracket, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tax bracket file %s: %w", path, err)
	}
	var brackets []models.TaxBracket
	if err := json.Unmarshal(data, &brackets); err != nil {
		return nil, fmt.Errorf("parsing tax bracket file %s: %w", path, err)
	}
	return brackets, nil
}
