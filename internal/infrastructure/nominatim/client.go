// Package nominatim resolves coordinates to a normalized country
// identifier using the Nominatim reverse-geocoding API.
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/commutewise/backend/internal/domain"
)

// Client handles communication with a Nominatim server
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// NewClient creates a new Nominatim client. Nominatim's usage policy
// requires an identifying User-Agent on every request.
func NewClient(baseURL, userAgent string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		baseURL:   baseURL,
		userAgent: userAgent,
	}
}

// reverseResponse is the subset of the Nominatim reverse response we read.
type reverseResponse struct {
	Address *struct {
		Country string `json:"country"`
	} `json:"address"`
}

// CountryFor reverse-geocodes a coordinate pair and returns the normalized
// country identifier (spaces joined with "-"). A result lacking address or
// country data fails with *domain.CountryLookupError carrying both literal
// input values.
func (c *Client) CountryFor(ctx context.Context, lat, long float64) (string, error) {
	endpoint := fmt.Sprintf("%s/reverse", c.baseURL)
	params := url.Values{}
	params.Add("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Add("lon", strconv.FormatFloat(long, 'f', -1, 64))
	params.Add("format", "jsonv2")
	params.Add("accept-language", "en")

	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: nominatim status %d, body: %s", domain.ErrUpstreamFailure, resp.StatusCode, string(body))
	}

	var reverse reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&reverse); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if reverse.Address == nil || reverse.Address.Country == "" {
		return "", &domain.CountryLookupError{Latitude: lat, Longitude: long}
	}

	return domain.NormalizeCountry(reverse.Address.Country), nil
}
