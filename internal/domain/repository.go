package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// GeocodeClient resolves a free-text location to coordinates
type GeocodeClient interface {
	Geocode(ctx context.Context, location string) (*GeoLocation, error)
}

// ProductSearchClient queries the upstream product aggregation API.
// It returns zero or more groups of same-product listings.
type ProductSearchClient interface {
	Search(ctx context.Context, query string, coords Coordinates) ([]ProductGroup, error)
}

// WeatherClient fetches an hourly forecast for a coordinate pair
type WeatherClient interface {
	Forecast(ctx context.Context, coords Coordinates, opts ForecastOptions) (*HourlyForecast, error)
}
