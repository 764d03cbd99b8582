package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrCacheMiss is returned when a key is absent from the price cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrUpstreamFailure is returned when an external provider responds with a non-success status
	ErrUpstreamFailure = errors.New("upstream request failed")

	// ErrRecordNotFound is returned when a patient, counselor or account record does not exist
	ErrRecordNotFound = errors.New("record not found")

	// ErrNoRouteFound is returned when the routing provider yields no route between two points
	ErrNoRouteFound = errors.New("no route found between locations")

	// ErrNoGeocodeResult is returned when forward geocoding yields no coordinates for an address
	ErrNoGeocodeResult = errors.New("no geocoding result for address")

	// ErrPriceUnavailable is returned when a savings comparison needs a fuel price
	// and only the unknown sentinel is available
	ErrPriceUnavailable = errors.New("fuel price unavailable")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")
)

// CountryLookupError is returned when reverse geocoding cannot resolve a
// country for a coordinate pair. The message carries both literal input
// values for diagnosability.
type CountryLookupError struct {
	Latitude  float64
	Longitude float64
}

func (e *CountryLookupError) Error() string {
	return fmt.Sprintf("country not found for lat %v and long %v", e.Latitude, e.Longitude)
}
