// Package directory reads the patient/counselor and account record stores.
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/commutewise/backend/internal/domain"
)

// Client handles communication with the record stores
type Client struct {
	httpClient   *http.Client
	patientURL   string
	counselorURL string
	accountURL   string
}

// NewClient creates a new directory client over the three record store
// base URLs.
func NewClient(patientURL, counselorURL, accountURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		patientURL:   strings.TrimRight(patientURL, "/"),
		counselorURL: strings.TrimRight(counselorURL, "/"),
		accountURL:   strings.TrimRight(accountURL, "/"),
	}
}

// personRecord is the subset of a patient/counselor record we read.
type personRecord struct {
	ID     int `json:"id"`
	UserID int `json:"userId"`
}

// accountRecord is the subset of an account record we read.
type accountRecord struct {
	ID      int            `json:"id"`
	Address domain.Address `json:"address"`
}

// AccountID looks up a person record at the patient- or counselor-specific
// endpoint and returns the linked account id.
func (c *Client) AccountID(ctx context.Context, personID int, isPatient bool) (int, error) {
	base := c.counselorURL
	if isPatient {
		base = c.patientURL
	}

	var record personRecord
	if err := c.getJSON(ctx, fmt.Sprintf("%s/%d", base, personID), &record); err != nil {
		return 0, err
	}
	return record.UserID, nil
}

// AccountAddress looks up an account record and returns its address.
func (c *Client) AccountAddress(ctx context.Context, accountID int) (domain.Address, error) {
	var record accountRecord
	if err := c.getJSON(ctx, fmt.Sprintf("%s/%d", c.accountURL, accountID), &record); err != nil {
		return domain.Address{}, err
	}
	return record.Address, nil
}

// getJSON executes a GET and decodes the JSON body. Any non-success status
// aborts the lookup; there are no retries.
func (c *Client) getJSON(ctx context.Context, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", domain.ErrRecordNotFound, reqURL)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: record store status %d, body: %s", domain.ErrUpstreamFailure, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
