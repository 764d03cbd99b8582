package domain

import (
	"context"
	"time"
)

// CacheRepository defines the flat key-value store holding price snapshots.
// Values are the serialized "<price>:<currency>" strings; every write fully
// replaces the prior entry and resets its lifetime.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Exists(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, key string) error
}

// ReverseGeocoder resolves a coordinate pair to a normalized country
// identifier. A missing country resolves to a *CountryLookupError.
type ReverseGeocoder interface {
	CountryFor(ctx context.Context, lat, long float64) (string, error)
}

// Geocoder resolves a structured address to coordinates.
type Geocoder interface {
	Locate(ctx context.Context, address Address) (Coordinates, error)
}

// PriceSource fetches a fresh price snapshot for a country from the fuel
// price publisher. A structurally empty price table yields the unknown
// sentinel with a nil error; network and parse failures are errors.
type PriceSource interface {
	FetchPrice(ctx context.Context, country string) (FuelPrice, error)
}

// RouteProvider computes driving distance and time between two points.
type RouteProvider interface {
	Route(ctx context.Context, origin, destination Coordinates) (RouteSummary, error)
}

// DirectoryClient reads the patient/counselor and account record stores.
type DirectoryClient interface {
	// AccountID looks up a person record (patient or counselor endpoint,
	// selected by isPatient) and returns the linked account id.
	AccountID(ctx context.Context, personID int, isPatient bool) (int, error)
	// AccountAddress looks up an account record and returns its address.
	AccountAddress(ctx context.Context, accountID int) (Address, error)
}

// FuelPriceAPI is the fuel price service's own HTTP endpoint, consumed by
// the comparison service across the deployment boundary.
type FuelPriceAPI interface {
	PriceAt(ctx context.Context, location Coordinates) (FuelPrice, error)
}

// CO2Estimator estimates CO2 mass saved for a transport mode over a
// distance in km.
type CO2Estimator interface {
	Estimate(mode string, distanceKm float64) (float64, error)
}
