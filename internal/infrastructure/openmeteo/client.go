// Package openmeteo implements the hourly forecast client for the
// Open-Meteo weather API.
package openmeteo

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

	"github.com/tolmol/backend/internal/domain"
	"golang.org/x/time/rate"
)

// Hourly variable names understood by the forecast endpoint
const (
	varTemperature   = "temperature_2m"
	varHumidity      = "relativehumidity_2m"
	varPrecipitation = "precipitation"
	varWindSpeed     = "windspeed_10m"
)

// hourlyTimeLayout is the timestamp format of the hourly series
const hourlyTimeLayout = "2006-01-02T15:04"

// Client calls the Open-Meteo forecast API
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rate.Limiter
}

// NewClient creates an Open-Meteo client. The API is unauthenticated but
// rate limited, so requests are paced.
func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:     baseURL,
		rateLimiter: rate.NewLimiter(rate.Limit(2), 5),
	}
}

// forecastResponse mirrors the forecast endpoint payload
type forecastResponse struct {
	Latitude         float64      `json:"latitude"`
	Longitude        float64      `json:"longitude"`
	Elevation        float64      `json:"elevation"`
	UTCOffsetSeconds int          `json:"utc_offset_seconds"`
	Hourly           hourlySeries `json:"hourly"`
}

type hourlySeries struct {
	Time          []string  `json:"time"`
	Temperature   []float64 `json:"temperature_2m"`
	Humidity      []float64 `json:"relativehumidity_2m"`
	Precipitation []float64 `json:"precipitation"`
	WindSpeed     []float64 `json:"windspeed_10m"`
}

// Forecast fetches the hourly series for a coordinate pair. Only the
// variables selected in opts are requested and populated.
func (c *Client) Forecast(ctx context.Context, coords domain.Coordinates, opts domain.ForecastOptions) (*domain.HourlyForecast, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	hourlyVars := []string{varTemperature}
	if opts.IncludeHumidity {
		hourlyVars = append(hourlyVars, varHumidity)
	}
	if opts.IncludePrecipitation {
		hourlyVars = append(hourlyVars, varPrecipitation)
	}
	if opts.IncludeWindSpeed {
		hourlyVars = append(hourlyVars, varWindSpeed)
	}

	days := opts.Days
	if days <= 0 {
		days = 1
	}

	params := url.Values{}
	params.Add("latitude", strconv.FormatFloat(coords.Lat, 'f', -1, 64))
	params.Add("longitude", strconv.FormatFloat(coords.Long, 'f', -1, 64))
	params.Add("hourly", strings.Join(hourlyVars, ","))
	params.Add("forecast_days", strconv.Itoa(days))
	params.Add("timezone", "auto")
	reqURL := fmt.Sprintf("%s/v1/forecast?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrWeatherFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status %d, body: %s", domain.ErrWeatherFailure, resp.StatusCode, string(body))
	}

	var forecast forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&forecast); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	times := make([]time.Time, 0, len(forecast.Hourly.Time))
	for _, ts := range forecast.Hourly.Time {
		t, err := time.Parse(hourlyTimeLayout, ts)
		if err != nil {
			return nil, fmt.Errorf("%w: bad hourly timestamp %q", domain.ErrWeatherFailure, ts)
		}
		times = append(times, t)
	}

	return &domain.HourlyForecast{
		Latitude:         forecast.Latitude,
		Longitude:        forecast.Longitude,
		Elevation:        forecast.Elevation,
		UTCOffsetSeconds: forecast.UTCOffsetSeconds,
		Time:             times,
		Temperature:      forecast.Hourly.Temperature,
		Humidity:         forecast.Hourly.Humidity,
		Precipitation:    forecast.Hourly.Precipitation,
		WindSpeed:        forecast.Hourly.WindSpeed,
	}, nil
}
