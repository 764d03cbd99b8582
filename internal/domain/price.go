package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// UnknownCurrency is the reserved currency literal paired with an
// unavailable price on the wire and in responses.
const UnknownCurrency = "N/A"

// FuelPrice is a price snapshot for one country: an amount and its currency
// code. Available is false for the "no price data" sentinel, in which case
// Amount is NaN and Currency is UnknownCurrency.
type FuelPrice struct {
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Available bool    `json:"available"`
}

// NewFuelPrice creates an available price snapshot.
func NewFuelPrice(amount float64, currency string) FuelPrice {
	return FuelPrice{Amount: amount, Currency: currency, Available: true}
}

// UnknownFuelPrice returns the sentinel pair representing "no price data".
func UnknownFuelPrice() FuelPrice {
	return FuelPrice{Amount: math.NaN(), Currency: UnknownCurrency, Available: false}
}

// EncodeCacheValue serializes the snapshot in the "<price>:<currency>"
// form stored in the cache.
func (p FuelPrice) EncodeCacheValue() string {
	return fmt.Sprintf("%s:%s", strconv.FormatFloat(p.Amount, 'f', -1, 64), p.Currency)
}

// ParseCachedPrice deserializes a stored "<price>:<currency>" value. A
// missing delimiter or non-numeric price is an error; callers treat that as
// a cache miss rather than a crash.
func ParseCachedPrice(value string) (FuelPrice, error) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return FuelPrice{}, fmt.Errorf("malformed cached price %q: missing delimiter", value)
	}
	amount, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return FuelPrice{}, fmt.Errorf("malformed cached price %q: %w", value, err)
	}
	return NewFuelPrice(amount, parts[1]), nil
}

// NormalizeCountry turns a geocoded country name into the identifier used
// for cache keys and publisher URLs: whitespace-trimmed, spaces joined with
// "-". No case or accent folding is applied.
func NormalizeCountry(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), " ", "-")
}
