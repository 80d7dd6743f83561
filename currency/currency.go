// currency provides minor-unit-aware conversion of spend amounts into a
// trip's base currency. All math uses decimal arithmetic; fx rates are
// manual/approximate in v1, there is no live rate lookup.
package currency

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Table maps an ISO 4217 code to its minor-unit exponent. It is immutable
// once built; pass it into whatever needs it rather than reaching for a
// package-level variable.
type Table struct {
	exponents map[string]int32
}

// DefaultExponent applies to every ISO currency not listed explicitly.
const DefaultExponent = 2

// zero- and three-decimal currencies per ISO 4217.
var (
	zeroDecimal  = []string{"BIF", "CLP", "DJF", "GNF", "ISK", "JPY", "KMF", "KRW", "PYG", "RWF", "UGX", "VND", "VUV", "XAF", "XOF", "XPF"}
	threeDecimal = []string{"BHD", "IQD", "JOD", "KWD", "LYD", "OMR", "TND"}
)

// DefaultTable builds the standard ISO 4217 minor-unit table.
func DefaultTable() *Table {
	exponents := make(map[string]int32)
	for _, code := range zeroDecimal {
		exponents[code] = 0
	}
	for _, code := range threeDecimal {
		exponents[code] = 3
	}
	return &Table{exponents: exponents}
}

// Exponent returns the minor-unit exponent for a currency code.
func (t *Table) Exponent(code string) int32 {
	if exp, ok := t.exponents[code]; ok {
		return exp
	}
	return DefaultExponent
}

// MinorUnit returns one minor unit of the currency (0.01 for GBP, 1 for JPY).
func (t *Table) MinorUnit(code string) decimal.Decimal {
	return decimal.New(1, -t.Exponent(code))
}

// Normalizer converts spend amounts into a trip's base currency.
type Normalizer struct {
	table *Table
}

// NewNormalizer creates a normalizer backed by the given table.
func NewNormalizer(table *Table) *Normalizer {
	return &Normalizer{table: table}
}

// Normalize converts an amount through its fx rate and rounds to the base
// currency's minor-unit precision. Pure function, no side effects.
func (n *Normalizer) Normalize(amount, fxRate decimal.Decimal, baseCurrency string) decimal.Decimal {
	return amount.Mul(fxRate).Round(n.table.Exponent(baseCurrency))
}

// Round rounds an amount to the currency's minor-unit precision.
func (n *Normalizer) Round(amount decimal.Decimal, code string) decimal.Decimal {
	return amount.Round(n.table.Exponent(code))
}

// MinorUnit exposes the table's quantum for a currency.
func (n *Normalizer) MinorUnit(code string) decimal.Decimal {
	return n.table.MinorUnit(code)
}

// ValidateCode checks a currency code is a plausible ISO 4217 code.
func ValidateCode(code string) error {
	if len(code) != 3 {
		return fmt.Errorf("invalid currency code %q", code)
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return fmt.Errorf("invalid currency code %q", code)
		}
	}
	return nil
}

// DefaultFxRate is used when the spend currency already matches the trip's
// base currency, or when no rate was supplied.
func DefaultFxRate() decimal.Decimal {
	return decimal.NewFromInt(1)
}
