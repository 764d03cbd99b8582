package main

import (
	"fmt"
	"log"
	"os"

	"github.com/commutewise/backend/config"
	httpDelivery "github.com/commutewise/backend/internal/delivery/http"
	"github.com/commutewise/backend/internal/domain"
	"github.com/commutewise/backend/internal/infrastructure/cache"
	"github.com/commutewise/backend/internal/infrastructure/nominatim"
	"github.com/commutewise/backend/internal/infrastructure/petrolprices"
	"github.com/commutewise/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting CommuteWise Fuel Price Service v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.FuelPort)
	log.Printf("Cache Type: %s", cfg.Cache.Type)
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	// Initialize infrastructure dependencies
	var priceCache domain.CacheRepository
	switch cfg.Cache.Type {
	case "redis":
		redisCache := cache.NewRedisCache(cfg.Cache.RedisAddr)
		defer redisCache.Close()
		priceCache = redisCache
		log.Printf("Redis cache configured: %s", cfg.Cache.RedisAddr)
	default:
		memCache := cache.NewMemoryCache()
		defer memCache.Stop()
		priceCache = memCache
	}

	geocoder := nominatim.NewClient(cfg.Geo.NominatimURL, cfg.Geo.UserAgent)
	scraper := petrolprices.NewClient(cfg.Fuel.PublisherURL)
	log.Printf("Price publisher configured: %s", cfg.Fuel.PublisherURL)

	// Initialize usecase layer
	priceService := usecase.NewPriceService(
		priceCache,
		scraper,
		geocoder,
		usecase.PriceServiceConfig{
			CacheTTL: cfg.Cache.TTL,
		},
	)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewFuelHandler(priceService)

	// Setup router
	router := httpDelivery.SetupFuelRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.FuelPort)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
