package rate

import (
	"testing"

	"github.com/raykavin/ratebot/pkg/core"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(v string) core.Price {
	return core.NewPrice(decimal.RequireFromString(v))
}

func TestPercentageChange(t *testing.T) {
	tests := []struct {
		current, previous string
		expected          string
	}{
		{"5", "4", "25"},
		{"3", "4", "-25"},
		{"4", "4", "0"},
		{"0.000412", "0.000400", "3"},
		{"1", "3", "-66.67"},
	}

	for _, tc := range tests {
		change := PercentageChange(price(tc.current), price(tc.previous))
		require.True(t, change.Valid)
		assert.Equal(t, tc.expected, change.Decimal.Round(2).String(), "%s vs %s", tc.current, tc.previous)
	}
}

func TestPercentageChange_Sign(t *testing.T) {
	pairs := [][2]string{{"10", "1"}, {"1", "10"}, {"100.5", "100.4"}, {"0.1", "0.2"}}
	for _, pair := range pairs {
		current, previous := price(pair[0]), price(pair[1])
		change := PercentageChange(current, previous)
		require.True(t, change.Valid)
		require.Equal(t, current.Decimal.Cmp(previous.Decimal), change.Decimal.Sign())
	}
}

func TestPercentageChange_Absent(t *testing.T) {
	assert.False(t, PercentageChange(core.NoPrice, price("4")).Valid)
	assert.False(t, PercentageChange(price("5"), core.NoPrice).Valid)
	assert.False(t, PercentageChange(core.NoPrice, core.NoPrice).Valid)
	assert.False(t, PercentageChange(price("5"), price("0")).Valid)
}

func TestFiatConvert(t *testing.T) {
	converted := FiatConvert(price("5"), price("90"))
	require.True(t, converted.Valid)
	require.True(t, converted.Decimal.Equal(decimal.RequireFromString("450")))

	converted = FiatConvert(price("0.000412"), price("91.5"))
	require.Equal(t, "0.037698", converted.Decimal.String())

	assert.False(t, FiatConvert(core.NoPrice, price("90")).Valid)
	assert.False(t, FiatConvert(price("5"), core.NoPrice).Valid)
	assert.False(t, FiatConvert(core.NoPrice, core.NoPrice).Valid)
}

func TestCompute(t *testing.T) {
	previous := core.Readings{Primary: price("4"), Secondary: price("0.0004")}
	current := core.Readings{Primary: price("5"), Conversion: price("90"), Secondary: core.NoPrice}

	snapshot := Compute(current, previous)
	assert.Equal(t, "450", snapshot.PrimaryFiat.Decimal.String())
	assert.Equal(t, "25", snapshot.PrimaryChange.Decimal.String())
	assert.Equal(t, "90", snapshot.Conversion.Decimal.String())
	assert.False(t, snapshot.SecondaryUSD.Valid)
	assert.False(t, snapshot.SecondaryFiat.Valid)
	assert.False(t, snapshot.SecondaryChange.Valid)

	snapshot = Compute(core.Readings{Primary: price("5")}, core.Readings{})
	assert.True(t, snapshot.PrimaryUSD.Valid)
	assert.False(t, snapshot.PrimaryFiat.Valid)
	assert.False(t, snapshot.PrimaryChange.Valid)
}
