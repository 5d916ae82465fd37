// Package shelfradar implements the client for the Tolmol ShelfRadar
// aggregate search API, which returns grouped product listings across
// grocery-delivery platforms for a query and location.
package shelfradar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tolmol/backend/internal/domain"
	"golang.org/x/time/rate"
)

// Client calls the ShelfRadar aggregate API
type Client struct {
	httpClient  *http.Client
	baseURL     string
	authToken   string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a ShelfRadar client. timeout bounds one aggregate call
// end to end; callers additionally pass per-item deadline contexts.
func NewClient(baseURL, authToken string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:     baseURL,
		authToken:   authToken,
		rateLimiter: rate.NewLimiter(rate.Limit(5), 10),
	}
}

// SetDebug toggles request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// Search runs one aggregate query and returns the product groups. Non-2xx
// responses, timeouts and malformed payloads all surface as ErrSearchFailure
// scoped to this one call.
func (c *Client) Search(ctx context.Context, query string, coords domain.Coordinates) ([]domain.ProductGroup, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	params := url.Values{}
	params.Add("q", query)
	params.Add("lat", strconv.FormatFloat(coords.Lat, 'f', -1, 64))
	params.Add("long", strconv.FormatFloat(coords.Long, 'f', -1, 64))
	reqURL := fmt.Sprintf("%s/api/v4/aggregate?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Product-Price-Info-Tool/1.0")
	if c.authToken != "" {
		req.Header.Set("Authorization", c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSearchFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		if c.debug {
			log.Printf("[SEARCH] API error for %q - status: %d, body: %s", query, resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("%w: %d", domain.ErrSearchFailure, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSearchFailure, err)
	}

	groups, err := ParseAggregateResponse(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSearchFailure, err)
	}

	if c.debug {
		log.Printf("[SEARCH] %q -> %d groups", query, len(groups))
	}

	return groups, nil
}

// aggregateResponse is the envelope of the aggregate endpoint. Groups are
// kept raw because the API occasionally emits non-array entries.
type aggregateResponse struct {
	Products []json.RawMessage `json:"products"`
}

// ParseAggregateResponse decodes the loosely-typed aggregate payload into
// normalized product groups. Entries that are not arrays of objects are
// skipped rather than failing the whole response.
func ParseAggregateResponse(body []byte) ([]domain.ProductGroup, error) {
	var envelope aggregateResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("malformed aggregate payload: %w", err)
	}

	groups := make([]domain.ProductGroup, 0, len(envelope.Products))
	for _, raw := range envelope.Products {
		var entries []map[string]interface{}
		if err := json.Unmarshal(raw, &entries); err != nil {
			continue
		}
		group := make(domain.ProductGroup, 0, len(entries))
		for _, entry := range entries {
			group = append(group, AdaptRecord(entry))
		}
		groups = append(groups, group)
	}

	return groups, nil
}
