package usecase

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/tolmol/backend/internal/domain"
)

// Forecast day bounds supported by the weather API
const (
	minForecastDays = 1
	maxForecastDays = 16
)

// WeatherService resolves a city name and produces a summarized forecast
type WeatherService struct {
	geocoder           domain.GeocodeClient
	weather            domain.WeatherClient
	enableDebugLogging bool
}

// NewWeatherService creates a weather service with its dependencies
func NewWeatherService(geocoder domain.GeocodeClient, weather domain.WeatherClient, enableDebugLogging bool) *WeatherService {
	return &WeatherService{
		geocoder:           geocoder,
		weather:            weather,
		enableDebugLogging: enableDebugLogging,
	}
}

// ForecastByCity geocodes the city and fetches its hourly forecast.
// Days outside the supported range are clamped.
func (s *WeatherService) ForecastByCity(ctx context.Context, city string, opts domain.ForecastOptions) (*domain.WeatherForecast, error) {
	if city == "" {
		return nil, domain.ErrInvalidRequest
	}
	if opts.Days < minForecastDays {
		opts.Days = minForecastDays
	}
	if opts.Days > maxForecastDays {
		opts.Days = maxForecastDays
	}

	loc, err := s.geocoder.Geocode(ctx, city)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLocationNotFound, err)
	}

	hourly, err := s.weather.Forecast(ctx, loc.Coordinates, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrWeatherFailure, err)
	}
	if len(hourly.Temperature) == 0 {
		return nil, fmt.Errorf("%w: temperature data not available", domain.ErrWeatherFailure)
	}

	if s.enableDebugLogging {
		log.Printf("[WEATHER] %q resolved to %q, %d hourly points", city, loc.DisplayName, len(hourly.Temperature))
	}

	return &domain.WeatherForecast{
		City:        city,
		DisplayName: loc.DisplayName,
		Hourly:      hourly,
		Summary:     summarize(hourly),
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// summarize computes the headline temperature numbers and a coarse
// description from the hourly series.
func summarize(hourly *domain.HourlyForecast) domain.WeatherSummary {
	temps := hourly.Temperature
	current := temps[0]
	minTemp := temps[0]
	maxTemp := temps[0]
	sum := 0.0
	for _, t := range temps {
		sum += t
		if t < minTemp {
			minTemp = t
		}
		if t > maxTemp {
			maxTemp = t
		}
	}
	avg := sum / float64(len(temps))

	return domain.WeatherSummary{
		CurrentTemp: round1(current),
		AvgTemp:     round1(avg),
		MinTemp:     round1(minTemp),
		MaxTemp:     round1(maxTemp),
		Description: describe(avg, hourly.Precipitation),
	}
}

// describe buckets the average temperature and appends a rain note when
// precipitation was requested and present.
func describe(avgTemp float64, precipitation []float64) string {
	var description string
	switch {
	case avgTemp < 0:
		description = "Very Cold"
	case avgTemp < 10:
		description = "Cold"
	case avgTemp < 20:
		description = "Cool"
	case avgTemp < 30:
		description = "Warm"
	default:
		description = "Hot"
	}

	total := 0.0
	for _, p := range precipitation {
		total += p
	}
	if total > 5 {
		description += " with Heavy Rain"
	} else if total > 0.5 {
		description += " with Light Rain"
	}

	return description
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
