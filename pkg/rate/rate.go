// Package rate derives fiat prices and percentage changes from raw readings.
// Every function is pure; an absent input always yields an absent output.
package rate

import (
	"github.com/raykavin/ratebot/pkg/core"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Snapshot holds every value rendered in one message
type Snapshot struct {
	PrimaryUSD      core.Price
	PrimaryFiat     core.Price
	PrimaryChange   core.Price
	Conversion      core.Price
	SecondaryUSD    core.Price
	SecondaryFiat   core.Price
	SecondaryChange core.Price
}

// PercentageChange returns (current - previous) / previous * 100.
// A zero previous value has no defined change and yields absent.
func PercentageChange(current, previous core.Price) core.Price {
	if !current.Valid || !previous.Valid || previous.Decimal.IsZero() {
		return core.NoPrice
	}

	change := current.Decimal.Sub(previous.Decimal).
		Div(previous.Decimal).
		Mul(hundred)

	return core.NewPrice(change)
}

// FiatConvert returns priceUSD * rate
func FiatConvert(priceUSD, rate core.Price) core.Price {
	if !priceUSD.Valid || !rate.Valid {
		return core.NoPrice
	}

	return core.NewPrice(priceUSD.Decimal.Mul(rate.Decimal))
}

// Compute derives the snapshot of a cycle from its readings and the previous ones
func Compute(current, previous core.Readings) Snapshot {
	return Snapshot{
		PrimaryUSD:      current.Primary,
		PrimaryFiat:     FiatConvert(current.Primary, current.Conversion),
		PrimaryChange:   PercentageChange(current.Primary, previous.Primary),
		Conversion:      current.Conversion,
		SecondaryUSD:    current.Secondary,
		SecondaryFiat:   FiatConvert(current.Secondary, current.Conversion),
		SecondaryChange: PercentageChange(current.Secondary, previous.Secondary),
	}
}
