// Package fuelapi is the HTTP client for the fuel price service's own
// endpoint. The comparison service calls it over the network: the two
// services are deployed and owned separately, so the call keeps its own
// failure domain.
package fuelapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/commutewise/backend/internal/domain"
)

// Client handles communication with the fuel price service
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new fuel price service client
func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// priceResponse mirrors the fuel endpoint's wire format: fuel_price is
// null when no data is available.
type priceResponse struct {
	FuelPrice *float64 `json:"fuel_price"`
	Currency  string   `json:"currency"`
}

// PriceAt fetches the fuel price for a coordinate pair.
func (c *Client) PriceAt(ctx context.Context, location domain.Coordinates) (domain.FuelPrice, error) {
	reqURL := fmt.Sprintf("%s/fuel-price/%s/%s", c.baseURL,
		strconv.FormatFloat(location.Latitude, 'f', -1, 64),
		strconv.FormatFloat(location.Longitude, 'f', -1, 64))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return domain.FuelPrice{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.FuelPrice{}, fmt.Errorf("%w: %v", domain.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.FuelPrice{}, fmt.Errorf("%w: fuel service status %d, body: %s", domain.ErrUpstreamFailure, resp.StatusCode, string(body))
	}

	var price priceResponse
	if err := json.NewDecoder(resp.Body).Decode(&price); err != nil {
		return domain.FuelPrice{}, fmt.Errorf("failed to decode response: %w", err)
	}

	if price.FuelPrice == nil {
		return domain.UnknownFuelPrice(), nil
	}
	return domain.NewFuelPrice(*price.FuelPrice, price.Currency), nil
}
