package usecase

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/commutewise/backend/internal/domain"
)

// MockCacheRepository is a mock implementation of domain.CacheRepository
type MockCacheRepository struct {
	data         map[string]string
	ttls         map[string]time.Duration
	existsError  error
	getError     error
	setError     error
	existsCalled int
	getCalled    int
	setCalled    int
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{
		data: make(map[string]string),
		ttls: make(map[string]time.Duration),
	}
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) (string, error) {
	m.getCalled++
	if m.getError != nil {
		return "", m.getError
	}
	if value, ok := m.data[key]; ok {
		return value, nil
	}
	return "", domain.ErrCacheMiss
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	m.setCalled++
	if m.setError != nil {
		return m.setError
	}
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	m.existsCalled++
	if m.existsError != nil {
		return false, m.existsError
	}
	_, ok := m.data[key]
	return ok, nil
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	delete(m.ttls, key)
	return nil
}

// MockPriceSource is a mock implementation of domain.PriceSource
type MockPriceSource struct {
	price       domain.FuelPrice
	fetchError  error
	fetchCalled int
	lastCountry string
}

func (m *MockPriceSource) FetchPrice(ctx context.Context, country string) (domain.FuelPrice, error) {
	m.fetchCalled++
	m.lastCountry = country
	if m.fetchError != nil {
		return domain.FuelPrice{}, m.fetchError
	}
	return m.price, nil
}

// MockReverseGeocoder is a mock implementation of domain.ReverseGeocoder
type MockReverseGeocoder struct {
	country     string
	lookupError error
}

func (m *MockReverseGeocoder) CountryFor(ctx context.Context, lat, long float64) (string, error) {
	if m.lookupError != nil {
		return "", m.lookupError
	}
	return m.country, nil
}

func TestNewPriceService(t *testing.T) {
	cache := NewMockCacheRepository()
	source := &MockPriceSource{}
	geocoder := &MockReverseGeocoder{}

	t.Run("defaults TTL to 24h", func(t *testing.T) {
		svc := NewPriceService(cache, source, geocoder, PriceServiceConfig{})
		if svc.cacheTTL != 24*time.Hour {
			t.Errorf("cacheTTL = %v, want 24h", svc.cacheTTL)
		}
	})

	t.Run("keeps custom TTL", func(t *testing.T) {
		svc := NewPriceService(cache, source, geocoder, PriceServiceConfig{CacheTTL: time.Hour})
		if svc.cacheTTL != time.Hour {
			t.Errorf("cacheTTL = %v, want 1h", svc.cacheTTL)
		}
	})
}

func TestQuoteByCountry(t *testing.T) {
	ctx := context.Background()

	t.Run("empty country returns sentinel without touching cache or fetcher", func(t *testing.T) {
		cache := NewMockCacheRepository()
		source := &MockPriceSource{}
		svc := NewPriceService(cache, source, &MockReverseGeocoder{}, PriceServiceConfig{})

		price, err := svc.QuoteByCountry(ctx, "")
		if err != nil {
			t.Fatalf("QuoteByCountry() error = %v", err)
		}
		if price.Available || !math.IsNaN(price.Amount) || price.Currency != "N/A" {
			t.Errorf("price = %+v, want NaN/N-A sentinel", price)
		}
		if cache.existsCalled != 0 || cache.getCalled != 0 || cache.setCalled != 0 {
			t.Error("cache was touched for empty country")
		}
		if source.fetchCalled != 0 {
			t.Error("fetcher was invoked for empty country")
		}
	})

	t.Run("fresh cache entry is returned without invoking the fetcher", func(t *testing.T) {
		cache := NewMockCacheRepository()
		cache.data["USA"] = "2.345:USD"
		source := &MockPriceSource{}
		svc := NewPriceService(cache, source, &MockReverseGeocoder{}, PriceServiceConfig{})

		price, err := svc.QuoteByCountry(ctx, "USA")
		if err != nil {
			t.Fatalf("QuoteByCountry() error = %v", err)
		}
		if price.Amount != 2.345 || price.Currency != "USD" {
			t.Errorf("price = %+v, want (2.345, USD)", price)
		}
		if source.fetchCalled != 0 {
			t.Error("fetcher was invoked despite fresh cache entry")
		}
		if cache.setCalled != 0 {
			t.Error("cache hit must not rewrite the entry")
		}
	})

	t.Run("miss fetches exactly once and populates the cache", func(t *testing.T) {
		cache := NewMockCacheRepository()
		source := &MockPriceSource{price: domain.NewFuelPrice(0.914, "USD")}
		svc := NewPriceService(cache, source, &MockReverseGeocoder{}, PriceServiceConfig{})

		price, err := svc.QuoteByCountry(ctx, "USA")
		if err != nil {
			t.Fatalf("QuoteByCountry() error = %v", err)
		}
		if price.Amount != 0.914 || price.Currency != "USD" {
			t.Errorf("price = %+v, want (0.914, USD)", price)
		}
		if source.fetchCalled != 1 {
			t.Errorf("fetchCalled = %d, want 1", source.fetchCalled)
		}
		if source.lastCountry != "USA" {
			t.Errorf("fetched country = %q, want USA", source.lastCountry)
		}
		if got := cache.data["USA"]; got != "0.914:USD" {
			t.Errorf("cached value = %q, want \"0.914:USD\"", got)
		}
		if got := cache.ttls["USA"]; got != 86400*time.Second {
			t.Errorf("cached TTL = %v, want 86400s", got)
		}
	})

	t.Run("round trip through the cache", func(t *testing.T) {
		cache := NewMockCacheRepository()
		source := &MockPriceSource{price: domain.NewFuelPrice(0.914, "USD")}
		svc := NewPriceService(cache, source, &MockReverseGeocoder{}, PriceServiceConfig{})

		if _, err := svc.QuoteByCountry(ctx, "USA"); err != nil {
			t.Fatalf("first QuoteByCountry() error = %v", err)
		}
		price, err := svc.QuoteByCountry(ctx, "USA")
		if err != nil {
			t.Fatalf("second QuoteByCountry() error = %v", err)
		}
		if price.Amount != 0.914 || price.Currency != "USD" {
			t.Errorf("price = %+v, want (0.914, USD)", price)
		}
		if source.fetchCalled != 1 {
			t.Errorf("fetchCalled = %d, want 1 (second read served from cache)", source.fetchCalled)
		}
	})

	t.Run("sentinel from the fetcher is returned verbatim and not cached", func(t *testing.T) {
		cache := NewMockCacheRepository()
		source := &MockPriceSource{price: domain.UnknownFuelPrice()}
		svc := NewPriceService(cache, source, &MockReverseGeocoder{}, PriceServiceConfig{})

		price, err := svc.QuoteByCountry(ctx, "Atlantis")
		if err != nil {
			t.Fatalf("QuoteByCountry() error = %v", err)
		}
		if price.Available || price.Currency != "N/A" {
			t.Errorf("price = %+v, want sentinel", price)
		}
		if cache.setCalled != 0 {
			t.Error("sentinel must not be written to the cache")
		}

		// The next call re-fetches: availability over efficiency.
		if _, err := svc.QuoteByCountry(ctx, "Atlantis"); err != nil {
			t.Fatalf("second QuoteByCountry() error = %v", err)
		}
		if source.fetchCalled != 2 {
			t.Errorf("fetchCalled = %d, want 2", source.fetchCalled)
		}
	})

	t.Run("fetch errors propagate", func(t *testing.T) {
		cache := NewMockCacheRepository()
		fetchErr := errors.New("publisher unreachable")
		source := &MockPriceSource{fetchError: fetchErr}
		svc := NewPriceService(cache, source, &MockReverseGeocoder{}, PriceServiceConfig{})

		_, err := svc.QuoteByCountry(ctx, "USA")
		if !errors.Is(err, fetchErr) {
			t.Errorf("error = %v, want %v", err, fetchErr)
		}
		if cache.setCalled != 0 {
			t.Error("failed fetch must not write the cache")
		}
	})

	t.Run("malformed stored value falls back to a re-fetch", func(t *testing.T) {
		tests := []struct {
			name   string
			stored string
		}{
			{"missing delimiter", "0.914USD"},
			{"non-numeric price", "cheap:USD"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				cache := NewMockCacheRepository()
				cache.data["USA"] = tt.stored
				source := &MockPriceSource{price: domain.NewFuelPrice(0.914, "USD")}
				svc := NewPriceService(cache, source, &MockReverseGeocoder{}, PriceServiceConfig{})

				price, err := svc.QuoteByCountry(ctx, "USA")
				if err != nil {
					t.Fatalf("QuoteByCountry() error = %v", err)
				}
				if price.Amount != 0.914 {
					t.Errorf("price = %+v, want re-fetched (0.914, USD)", price)
				}
				if source.fetchCalled != 1 {
					t.Errorf("fetchCalled = %d, want 1", source.fetchCalled)
				}
				if got := cache.data["USA"]; got != "0.914:USD" {
					t.Errorf("cached value = %q, want repaired \"0.914:USD\"", got)
				}
			})
		}
	})

	t.Run("cache backend errors degrade to a fetch", func(t *testing.T) {
		cache := NewMockCacheRepository()
		cache.existsError = errors.New("redis down")
		source := &MockPriceSource{price: domain.NewFuelPrice(1.234, "GBP")}
		svc := NewPriceService(cache, source, &MockReverseGeocoder{}, PriceServiceConfig{})

		price, err := svc.QuoteByCountry(ctx, "United-Kingdom")
		if err != nil {
			t.Fatalf("QuoteByCountry() error = %v", err)
		}
		if price.Amount != 1.234 || price.Currency != "GBP" {
			t.Errorf("price = %+v, want (1.234, GBP)", price)
		}
	})

	t.Run("failed cache write still serves the quote", func(t *testing.T) {
		cache := NewMockCacheRepository()
		cache.setError = errors.New("redis down")
		source := &MockPriceSource{price: domain.NewFuelPrice(0.914, "USD")}
		svc := NewPriceService(cache, source, &MockReverseGeocoder{}, PriceServiceConfig{})

		price, err := svc.QuoteByCountry(ctx, "USA")
		if err != nil {
			t.Fatalf("QuoteByCountry() error = %v", err)
		}
		if price.Amount != 0.914 || price.Currency != "USD" {
			t.Errorf("price = %+v, want (0.914, USD)", price)
		}
	})
}

func TestQuoteByLocation(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves country then quotes", func(t *testing.T) {
		cache := NewMockCacheRepository()
		cache.data["United-States"] = "0.914:USD"
		source := &MockPriceSource{}
		geocoder := &MockReverseGeocoder{country: "United-States"}
		svc := NewPriceService(cache, source, geocoder, PriceServiceConfig{})

		price, err := svc.QuoteByLocation(ctx, 37.7749, -122.4194)
		if err != nil {
			t.Fatalf("QuoteByLocation() error = %v", err)
		}
		if price.Amount != 0.914 || price.Currency != "USD" {
			t.Errorf("price = %+v, want (0.914, USD)", price)
		}
	})

	t.Run("lookup errors propagate with their coordinates", func(t *testing.T) {
		lookupErr := &domain.CountryLookupError{Latitude: 37.7749, Longitude: -122.4194}
		geocoder := &MockReverseGeocoder{lookupError: lookupErr}
		svc := NewPriceService(NewMockCacheRepository(), &MockPriceSource{}, geocoder, PriceServiceConfig{})

		_, err := svc.QuoteByLocation(ctx, 37.7749, -122.4194)
		var got *domain.CountryLookupError
		if !errors.As(err, &got) {
			t.Fatalf("error = %v, want CountryLookupError", err)
		}
	})
}
