package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/commutewise/backend/internal/domain"
)

// PriceQuoter answers fuel price lookups for a coordinate pair.
type PriceQuoter interface {
	QuoteByLocation(ctx context.Context, lat, long float64) (domain.FuelPrice, error)
}

// Comparer runs the in-person vs remote comparison for a participant pair.
type Comparer interface {
	Compare(ctx context.Context, patientID, counselorID int) (*domain.ComparisonResult, error)
}

// FuelHandler holds dependencies for the fuel price endpoints
type FuelHandler struct {
	prices PriceQuoter
}

// NewFuelHandler creates a new fuel price handler
func NewFuelHandler(prices PriceQuoter) *FuelHandler {
	return &FuelHandler{prices: prices}
}

// fuelPriceResponse is the wire format of the fuel price endpoint:
// fuel_price is null when no data is available, currency then carries the
// reserved "N/A" literal.
type fuelPriceResponse struct {
	FuelPrice *float64 `json:"fuel_price"`
	Currency  string   `json:"currency"`
}

// GetFuelPrice handles GET /fuel-price/:lat/:long
func (h *FuelHandler) GetFuelPrice(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Param("lat"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "latitude must be a decimal number"})
		return
	}
	long, err := strconv.ParseFloat(c.Param("long"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "longitude must be a decimal number"})
		return
	}

	price, err := h.prices.QuoteByLocation(c.Request.Context(), lat, long)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response := fuelPriceResponse{Currency: price.Currency}
	if price.Available {
		amount := price.Amount
		response.FuelPrice = &amount
	}
	c.JSON(http.StatusOK, response)
}

// HealthCheck returns the health status of the fuel service
func (h *FuelHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "commutewise-fuel",
		"version": "1.0.0",
	})
}

// ComparisonHandler holds dependencies for the comparison endpoints
type ComparisonHandler struct {
	comparisons Comparer
}

// NewComparisonHandler creates a new comparison handler
func NewComparisonHandler(comparisons Comparer) *ComparisonHandler {
	return &ComparisonHandler{comparisons: comparisons}
}

// Readiness handles GET / with a fixed plain-text message
func (h *ComparisonHandler) Readiness(c *gin.Context) {
	c.String(http.StatusOK, "Api is working, Please give the patient_id and counselor_id after /")
}

// Compare handles GET /:patient_id/:counselor_id
func (h *ComparisonHandler) Compare(c *gin.Context) {
	patientID, err := strconv.Atoi(c.Param("patient_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "patient_id must be an integer"})
		return
	}
	counselorID, err := strconv.Atoi(c.Param("counselor_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "counselor_id must be an integer"})
		return
	}

	result, err := h.comparisons.Compare(c.Request.Context(), patientID, counselorID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// HealthCheck returns the health status of the comparison service
func (h *ComparisonHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "commutewise-comparison",
		"version": "1.0.0",
	})
}

// writeServiceError maps service errors to HTTP statuses. Upstream
// failures become 502; not-found conditions 404; everything else 500.
func writeServiceError(c *gin.Context, err error) {
	var lookupErr *domain.CountryLookupError
	switch {
	case errors.As(err, &lookupErr):
		c.JSON(http.StatusNotFound, gin.H{"error": lookupErr.Error()})
	case errors.Is(err, domain.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUpstreamFailure),
		errors.Is(err, domain.ErrNoRouteFound),
		errors.Is(err, domain.ErrNoGeocodeResult),
		errors.Is(err, domain.ErrPriceUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
