// Package petrolprices scrapes the fuel price publisher's per-country
// price table.
package petrolprices

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/commutewise/backend/internal/domain"
)

// Client fetches and parses the publisher's gasoline price pages.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rate.Limiter
}

// NewClient creates a new publisher client. The publisher is a scraped
// website rather than an API with a quota, so requests are kept polite.
func NewClient(baseURL string) *Client {
	limiter := rate.NewLimiter(rate.Limit(1), 3)

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:     strings.TrimRight(baseURL, "/"),
		rateLimiter: limiter,
	}
}

// FetchPrice retrieves the price page for a country identifier and extracts
// the first data row: first td holds the price, first th the currency code.
// A missing table or a table with only a header row yields the unknown
// sentinel with a nil error; HTTP and parse failures are hard errors.
func (c *Client) FetchPrice(ctx context.Context, country string) (domain.FuelPrice, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return domain.FuelPrice{}, fmt.Errorf("rate limiter error: %w", err)
	}

	reqURL := fmt.Sprintf("%s/%s/gasoline_prices/", c.baseURL, country)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return domain.FuelPrice{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "commutewise/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.FuelPrice{}, fmt.Errorf("%w: %v", domain.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.FuelPrice{}, fmt.Errorf("%w: publisher status %d, body: %s", domain.ErrUpstreamFailure, resp.StatusCode, string(body))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return domain.FuelPrice{}, fmt.Errorf("failed to parse publisher page: %w", err)
	}

	rows := doc.Find("div#graphPageLeft table").First().Find("tr")
	if rows.Length() < 2 {
		// Structurally empty table: a legitimate "no data" answer.
		return domain.UnknownFuelPrice(), nil
	}

	dataRow := rows.Eq(1)
	priceText := strings.TrimSpace(dataRow.Find("td").First().Text())
	currency := strings.TrimSpace(dataRow.Find("th").First().Text())

	price, err := strconv.ParseFloat(priceText, 64)
	if err != nil {
		return domain.FuelPrice{}, fmt.Errorf("failed to parse fuel price %q for %s: %w", priceText, country, err)
	}

	return domain.NewFuelPrice(price, currency), nil
}
