// Package tomtom computes driving distance and time between two points
// using the TomTom routing API.
package tomtom

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/commutewise/backend/internal/domain"
)

// Client handles communication with the TomTom routing API
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a new routing client
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

// routeResponse is the subset of the calculateRoute response we read.
// Summary fields are pointers so a missing field is distinguishable from
// zero and treated as a hard failure.
type routeResponse struct {
	Routes []struct {
		Summary struct {
			LengthInMeters      *float64 `json:"lengthInMeters"`
			TravelTimeInSeconds *float64 `json:"travelTimeInSeconds"`
		} `json:"summary"`
	} `json:"routes"`
}

// Route returns distance (km) and time (min) between two points, both
// rounded to 3 decimals.
func (c *Client) Route(ctx context.Context, origin, destination domain.Coordinates) (domain.RouteSummary, error) {
	locations := fmt.Sprintf("%s,%s:%s,%s",
		formatCoord(origin.Latitude), formatCoord(origin.Longitude),
		formatCoord(destination.Latitude), formatCoord(destination.Longitude))

	reqURL := fmt.Sprintf("%s/calculateRoute/%s/json?key=%s", c.baseURL, locations, url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return domain.RouteSummary{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.RouteSummary{}, fmt.Errorf("%w: %v", domain.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.RouteSummary{}, fmt.Errorf("%w: tomtom status %d, body: %s", domain.ErrUpstreamFailure, resp.StatusCode, string(body))
	}

	var route routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&route); err != nil {
		return domain.RouteSummary{}, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(route.Routes) == 0 {
		return domain.RouteSummary{}, domain.ErrNoRouteFound
	}

	summary := route.Routes[0].Summary
	if summary.LengthInMeters == nil || summary.TravelTimeInSeconds == nil {
		return domain.RouteSummary{}, fmt.Errorf("route summary missing length or travel time")
	}

	return domain.RouteSummary{
		DistanceKm: domain.Round3(*summary.LengthInMeters / 1000),
		TimeMin:    domain.Round3(*summary.TravelTimeInSeconds / 60),
	}, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
