package domain

import (
	"math"
	"strings"
)

// Coordinates is a WGS84 point in decimal degrees. No range validation is
// performed here; out-of-range values are passed through to the geocoding
// and routing providers, which are the error source of record.
type Coordinates struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"long"`
}

// Address is the structured address attached to an account record.
type Address struct {
	Street  string `json:"street"`
	Suite   string `json:"suite,omitempty"`
	City    string `json:"city"`
	Zipcode string `json:"zipcode"`
}

// Query renders the address as a single comma-joined line suitable for a
// forward-geocoding request.
func (a Address) Query() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.Street, a.Suite, a.City, a.Zipcode} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	return strings.Join(parts, ", ")
}

// RouteSummary is the distance and travel time between two points, both
// rounded to 3 decimals. The rounding is a contract: downstream cost
// computation consumes the rounded distance.
type RouteSummary struct {
	DistanceKm float64 `json:"distance"`
	TimeMin    float64 `json:"time"`
}

// Round3 rounds to 3 decimal places.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
