package main

import (
	"fmt"
	"log"
	"os"

	"github.com/commutewise/backend/config"
	httpDelivery "github.com/commutewise/backend/internal/delivery/http"
	"github.com/commutewise/backend/internal/infrastructure/directory"
	"github.com/commutewise/backend/internal/infrastructure/fuelapi"
	"github.com/commutewise/backend/internal/infrastructure/googlegeo"
	"github.com/commutewise/backend/internal/infrastructure/tomtom"
	"github.com/commutewise/backend/internal/infrastructure/transportco2"
	"github.com/commutewise/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting CommuteWise Comparison Service v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.ComparisonPort)

	if cfg.Geo.GoogleAPIKey == "" {
		log.Fatalf("Google Maps API key is required (set COMMUTEWISE_GEO_GOOGLE_API_KEY)")
	}
	if cfg.Routing.APIKey == "" {
		log.Fatalf("TomTom API key is required (set COMMUTEWISE_ROUTING_API_KEY)")
	}
	if cfg.Directory.PatientURL == "" || cfg.Directory.CounselorURL == "" || cfg.Directory.AccountURL == "" {
		log.Fatalf("Record store URLs are required (set COMMUTEWISE_DIRECTORY_PATIENT_URL, COMMUTEWISE_DIRECTORY_COUNSELOR_URL and COMMUTEWISE_DIRECTORY_ACCOUNT_URL)")
	}

	// Initialize infrastructure dependencies
	geocoder, err := googlegeo.NewGeocoder(cfg.Geo.GoogleAPIKey)
	if err != nil {
		log.Fatalf("Failed to create Google Maps client: %v", err)
	}

	router := tomtom.NewClient(cfg.Routing.TomTomURL, cfg.Routing.APIKey)
	fuelClient := fuelapi.NewClient(cfg.Fuel.ServiceURL)
	log.Printf("Fuel price service configured: %s", cfg.Fuel.ServiceURL)

	directoryClient := directory.NewClient(
		cfg.Directory.PatientURL,
		cfg.Directory.CounselorURL,
		cfg.Directory.AccountURL,
	)
	estimator := transportco2.NewEstimator()

	// Initialize usecase layer
	comparisonService := usecase.NewComparisonService(
		directoryClient,
		geocoder,
		router,
		fuelClient,
		estimator,
		usecase.ComparisonServiceConfig{
			AvgFuelConsumption: cfg.Savings.AvgFuelConsumption,
		},
	)

	log.Printf("Savings: avg fuel consumption=%.1f L/100km", cfg.Savings.AvgFuelConsumption)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewComparisonHandler(comparisonService)

	// Setup router
	engine := httpDelivery.SetupComparisonRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.ComparisonPort)
	log.Printf("Server listening on %s", addr)

	if err := engine.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
