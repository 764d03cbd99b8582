// Package transportco2 estimates CO2-equivalent emissions saved by not
// traveling a distance with a given transport mode. Factors follow the
// common per-mode lifecycle averages: grams CO2e per vehicle-km divided by
// average occupancy.
package transportco2

import (
	"fmt"
	"strings"
)

type modeFactor struct {
	gramsPerVehicleKm float64
	avgOccupancy      float64
}

var factors = map[string]modeFactor{
	"walk":       {gramsPerVehicleKm: 0, avgOccupancy: 1},
	"bicycle":    {gramsPerVehicleKm: 0, avgOccupancy: 1},
	"scooter":    {gramsPerVehicleKm: 86.4, avgOccupancy: 1.2},
	"small_car":  {gramsPerVehicleKm: 168, avgOccupancy: 1.5},
	"car":        {gramsPerVehicleKm: 192, avgOccupancy: 1.5},
	"large_car":  {gramsPerVehicleKm: 220, avgOccupancy: 1.5},
	"bus":        {gramsPerVehicleKm: 863, avgOccupancy: 12.7},
	"light_rail": {gramsPerVehicleKm: 2184, avgOccupancy: 156},
}

// Estimator computes per-passenger CO2e estimates.
type Estimator struct{}

// NewEstimator creates a new estimator.
func NewEstimator() *Estimator {
	return &Estimator{}
}

// Estimate returns the estimated grams of CO2e emitted by one passenger
// traveling distanceKm with the given mode.
func (e *Estimator) Estimate(mode string, distanceKm float64) (float64, error) {
	factor, ok := factors[strings.ToLower(strings.TrimSpace(mode))]
	if !ok {
		return 0, fmt.Errorf("unknown transport mode %q", mode)
	}
	return factor.gramsPerVehicleKm / factor.avgOccupancy * distanceKm, nil
}
