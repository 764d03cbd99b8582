// Package googlegeo forward-geocodes structured addresses with the Google
// Geocoding API.
package googlegeo

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"

	"github.com/commutewise/backend/internal/domain"
)

// Geocoder handles interactions with the Google Geocoding API.
type Geocoder struct {
	client *maps.Client
}

// NewGeocoder creates a new Geocoder with the given API key.
func NewGeocoder(apiKey string) (*Geocoder, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &Geocoder{client: client}, nil
}

// NewGeocoderWithClient wraps an existing maps client. Used by tests.
func NewGeocoderWithClient(client *maps.Client) *Geocoder {
	return &Geocoder{client: client}
}

// Locate resolves an address to coordinates, taking the first result.
func (g *Geocoder) Locate(ctx context.Context, address domain.Address) (domain.Coordinates, error) {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{
		Address: address.Query(),
	})
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("%w: %v", domain.ErrUpstreamFailure, err)
	}

	if len(results) == 0 {
		return domain.Coordinates{}, fmt.Errorf("%w: %q", domain.ErrNoGeocodeResult, address.Query())
	}

	location := results[0].Geometry.Location
	return domain.Coordinates{Latitude: location.Lat, Longitude: location.Lng}, nil
}
