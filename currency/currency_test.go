package currency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTable_Exponent(t *testing.T) {
	table := DefaultTable()

	assert.Equal(t, int32(2), table.Exponent("USD"))
	assert.Equal(t, int32(2), table.Exponent("GBP"))
	assert.Equal(t, int32(0), table.Exponent("JPY"))
	assert.Equal(t, int32(0), table.Exponent("KRW"))
	assert.Equal(t, int32(3), table.Exponent("BHD"))
	assert.Equal(t, int32(3), table.Exponent("KWD"))

	// Unknown codes fall back to two decimals
	assert.Equal(t, int32(2), table.Exponent("XYZ"))
}

func TestTable_MinorUnit(t *testing.T) {
	table := DefaultTable()

	assert.True(t, table.MinorUnit("GBP").Equal(decimal.RequireFromString("0.01")))
	assert.True(t, table.MinorUnit("JPY").Equal(decimal.RequireFromString("1")))
	assert.True(t, table.MinorUnit("BHD").Equal(decimal.RequireFromString("0.001")))
}

func TestNormalizer_Normalize(t *testing.T) {
	normalizer := NewNormalizer(DefaultTable())

	// 100.00 EUR at 0.85 into GBP rounds to the penny
	amount := decimal.RequireFromString("100.00")
	fxRate := decimal.RequireFromString("0.85")
	assert.True(t, normalizer.Normalize(amount, fxRate, "GBP").Equal(decimal.RequireFromString("85.00")))

	// Fractional result rounds half-up to the minor unit
	amount = decimal.RequireFromString("33.33")
	fxRate = decimal.RequireFromString("1.005")
	assert.True(t, normalizer.Normalize(amount, fxRate, "USD").Equal(decimal.RequireFromString("33.50")))

	// JPY has no minor decimals
	amount = decimal.RequireFromString("10.50")
	fxRate = decimal.RequireFromString("150")
	assert.True(t, normalizer.Normalize(amount, fxRate, "JPY").Equal(decimal.RequireFromString("1575")))
}

func TestNormalizer_NormalizeIdentityRate(t *testing.T) {
	normalizer := NewNormalizer(DefaultTable())

	amount := decimal.RequireFromString("42.42")
	assert.True(t, normalizer.Normalize(amount, DefaultFxRate(), "USD").Equal(amount))
}

func TestValidateCode(t *testing.T) {
	assert.NoError(t, ValidateCode("USD"))
	assert.NoError(t, ValidateCode("JPY"))

	assert.Error(t, ValidateCode(""))
	assert.Error(t, ValidateCode("US"))
	assert.Error(t, ValidateCode("usd"))
	assert.Error(t, ValidateCode("USDX"))
	assert.Error(t, ValidateCode("U5D"))
}
