// Package geocode implements the forward-geocoding client used to resolve
// free-text locations to coordinates via the maps.co geocoding API.
package geocode

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

// Client calls the geocoding API
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a geocoding client. The free tier allows roughly one
// request per second, so requests are paced accordingly with a small burst.
func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: rate.NewLimiter(rate.Limit(1), 5),
	}
}

// SetDebug toggles request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// geocodeResult mirrors the relevant fields of one API result entry.
// Coordinates come back as strings.
type geocodeResult struct {
	PlaceID     int    `json:"place_id"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

// Geocode resolves a location string to coordinates using the first (most
// relevant) result. An empty result set is an error: there is no fallback
// for an unresolvable location.
func (c *Client) Geocode(ctx context.Context, location string) (*domain.GeoLocation, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	params := url.Values{}
	params.Add("q", location)
	params.Add("api_key", c.apiKey)
	reqURL := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Product-Price-Info-Tool/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGeocodeFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		if c.debug {
			log.Printf("[GEOCODE] API error - status: %d, body: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("%w: status %d", domain.ErrGeocodeFailure, resp.StatusCode)
	}

	var results []geocodeResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("%w: no results for %q", domain.ErrLocationNotFound, location)
	}

	first := results[0]
	lat, err := strconv.ParseFloat(first.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad latitude %q", domain.ErrGeocodeFailure, first.Lat)
	}
	long, err := strconv.ParseFloat(first.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad longitude %q", domain.ErrGeocodeFailure, first.Lon)
	}

	if c.debug {
		log.Printf("[GEOCODE] %q -> (%.4f, %.4f) %s", location, lat, long, first.DisplayName)
	}

	return &domain.GeoLocation{
		Coordinates: domain.Coordinates{Lat: lat, Long: long},
		DisplayName: first.DisplayName,
	}, nil
}
