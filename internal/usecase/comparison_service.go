package usecase

import (
	"context"

	"github.com/commutewise/backend/internal/domain"
)

// ComparisonServiceConfig holds configuration for the comparison service
type ComparisonServiceConfig struct {
	AvgFuelConsumption float64
}

// ComparisonService estimates what an in-person visit would cost compared
// to a remote one: resolve both participants to coordinates, route between
// them, price the fuel, and derive the savings.
type ComparisonService struct {
	directory          domain.DirectoryClient
	geocoder           domain.Geocoder
	router             domain.RouteProvider
	fuelAPI            domain.FuelPriceAPI
	estimator          domain.CO2Estimator
	avgFuelConsumption float64
}

// NewComparisonService creates a new comparison service with dependencies
func NewComparisonService(
	directory domain.DirectoryClient,
	geocoder domain.Geocoder,
	router domain.RouteProvider,
	fuelAPI domain.FuelPriceAPI,
	estimator domain.CO2Estimator,
	config ComparisonServiceConfig,
) *ComparisonService {
	avgFuelConsumption := config.AvgFuelConsumption
	if avgFuelConsumption <= 0 {
		avgFuelConsumption = DefaultAvgFuelConsumption
	}

	return &ComparisonService{
		directory:          directory,
		geocoder:           geocoder,
		router:             router,
		fuelAPI:            fuelAPI,
		estimator:          estimator,
		avgFuelConsumption: avgFuelConsumption,
	}
}

// Compare runs the full chain for a patient/counselor pair. Any upstream
// failure aborts the whole request; there are no retries and no partial
// results.
func (s *ComparisonService) Compare(ctx context.Context, patientID, counselorID int) (*domain.ComparisonResult, error) {
	patientCoords, err := s.locate(ctx, patientID, true)
	if err != nil {
		return nil, err
	}

	counselorCoords, err := s.locate(ctx, counselorID, false)
	if err != nil {
		return nil, err
	}

	route, err := s.router.Route(ctx, patientCoords, counselorCoords)
	if err != nil {
		return nil, err
	}

	// Fuel is priced at the patient's location, fetched from the fuel
	// service across the deployment boundary.
	price, err := s.fuelAPI.PriceAt(ctx, patientCoords)
	if err != nil {
		return nil, err
	}
	if !price.Available {
		return nil, domain.ErrPriceUnavailable
	}

	savings, err := CalculateSavings(route.DistanceKm, price.Amount, s.avgFuelConsumption, s.estimator)
	if err != nil {
		return nil, err
	}

	return &domain.ComparisonResult{
		TotalTimeSavedInMins: route.TimeMin,
		TotalCostSaved:       savings.TotalCost,
		Currency:             price.Currency,
		CO2Saved:             savings.CO2Saved,
		MethaneSaved:         savings.MethaneSaved,
	}, nil
}

// locate resolves a person to coordinates: person record -> linked account
// -> structured address -> forward geocode.
func (s *ComparisonService) locate(ctx context.Context, personID int, isPatient bool) (domain.Coordinates, error) {
	accountID, err := s.directory.AccountID(ctx, personID, isPatient)
	if err != nil {
		return domain.Coordinates{}, err
	}

	address, err := s.directory.AccountAddress(ctx, accountID)
	if err != nil {
		return domain.Coordinates{}, err
	}

	return s.geocoder.Locate(ctx, address)
}
