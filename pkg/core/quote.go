package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Price is a decimal value that may be absent. Absent is never the same as zero.
type Price = decimal.NullDecimal

// NoPrice is the absent price
var NoPrice = Price{}

// NewPrice wraps a present decimal value
func NewPrice(value decimal.Decimal) Price {
	return decimal.NewNullDecimal(value)
}

// PriceFromFloat is a shorthand used by tests and fixtures
func PriceFromFloat(value float64) Price {
	return NewPrice(decimal.NewFromFloat(value))
}

// Quote is a single fetched price for one asset
type Quote struct {
	Asset     string
	Price     Price
	FetchedAt time.Time
}

// Readings holds the values of one cycle: the primary asset in USD,
// the USDT to fiat conversion rate and the secondary asset in USD.
type Readings struct {
	Primary    Price `json:"primary"`
	Conversion Price `json:"conversion"`
	Secondary  Price `json:"secondary"`
}

// Next returns the readings to keep for the following cycle. With retain
// disabled the current readings are kept as they are, absent values included.
// With retain enabled an absent current value falls back to the previous one.
func (r Readings) Next(previous Readings, retain bool) Readings {
	if !retain {
		return r
	}

	return Readings{
		Primary:    keepKnown(r.Primary, previous.Primary),
		Conversion: keepKnown(r.Conversion, previous.Conversion),
		Secondary:  keepKnown(r.Secondary, previous.Secondary),
	}
}

func keepKnown(current, previous Price) Price {
	if current.Valid {
		return current
	}
	return previous
}
