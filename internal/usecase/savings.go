package usecase

import (
	"github.com/commutewise/backend/internal/domain"
)

const (
	// DefaultAvgFuelConsumption is the assumed consumption (L/100km-equivalent
	// unit) when the caller does not supply one.
	DefaultAvgFuelConsumption = 6.5

	// methaneEmissionFactor is the methane mass per litre of fuel, in kg/L.
	methaneEmissionFactor = 0.001

	// carMode is the transport mode assumed for the avoided trip.
	carMode = "car"
)

// CalculateSavings derives the monetary cost and emissions avoided by not
// driving distanceKm at the given fuel price. Pure arithmetic apart from
// the CO2 estimate, which is delegated to the estimator.
func CalculateSavings(
	distanceKm float64,
	fuelPrice float64,
	avgFuelConsumption float64,
	estimator domain.CO2Estimator,
) (domain.Savings, error) {
	if avgFuelConsumption <= 0 {
		avgFuelConsumption = DefaultAvgFuelConsumption
	}

	co2Saved, err := estimator.Estimate(carMode, distanceKm)
	if err != nil {
		return domain.Savings{}, err
	}

	litres := distanceKm / avgFuelConsumption
	return domain.Savings{
		TotalCost:    litres * fuelPrice,
		CO2Saved:     co2Saved,
		MethaneSaved: litres * methaneEmissionFactor,
	}, nil
}
