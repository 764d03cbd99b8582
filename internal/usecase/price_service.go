package usecase

import (
	"context"
	"log"
	"time"

	"github.com/commutewise/backend/internal/domain"
)

// PriceServiceConfig holds configuration for the price service
type PriceServiceConfig struct {
	CacheTTL time.Duration
}

// PriceService answers fuel price lookups with a cache-or-fetch-and-populate
// policy over the publisher scraper.
type PriceService struct {
	cache    domain.CacheRepository
	source   domain.PriceSource
	geocoder domain.ReverseGeocoder
	cacheTTL time.Duration
}

// NewPriceService creates a new price service with dependencies
func NewPriceService(
	cache domain.CacheRepository,
	source domain.PriceSource,
	geocoder domain.ReverseGeocoder,
	config PriceServiceConfig,
) *PriceService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}

	return &PriceService{
		cache:    cache,
		source:   source,
		geocoder: geocoder,
		cacheTTL: cacheTTL,
	}
}

// QuoteByLocation resolves a coordinate pair to a country and returns its
// fuel price quote.
func (s *PriceService) QuoteByLocation(ctx context.Context, lat, long float64) (domain.FuelPrice, error) {
	country, err := s.geocoder.CountryFor(ctx, lat, long)
	if err != nil {
		return domain.FuelPrice{}, err
	}
	return s.QuoteByCountry(ctx, country)
}

// QuoteByCountry returns the cached price for a country if a fresh entry
// exists, otherwise fetches from the publisher and populates the cache.
// An empty country identifier short-circuits to the unknown sentinel
// without touching cache or fetcher. The sentinel from a failed scrape is
// never cached, so the next call retries the fetch.
func (s *PriceService) QuoteByCountry(ctx context.Context, country string) (domain.FuelPrice, error) {
	if country == "" {
		return domain.UnknownFuelPrice(), nil
	}

	if exists, err := s.cache.Exists(ctx, country); err == nil && exists {
		if stored, err := s.cache.Get(ctx, country); err == nil {
			if price, err := domain.ParseCachedPrice(stored); err == nil {
				return price, nil
			}
			// A malformed stored value is treated as a miss and re-fetched.
		}
	}

	price, err := s.source.FetchPrice(ctx, country)
	if err != nil {
		return domain.FuelPrice{}, err
	}

	if price.Available {
		// A failed cache write does not invalidate a fresh scrape; the
		// quote is still served.
		if err := s.cache.Set(ctx, country, price.EncodeCacheValue(), s.cacheTTL); err != nil {
			log.Printf("WARNING: failed to cache price for %s: %v", country, err)
		}
	}

	return price, nil
}
