package domain

import "time"

// ForecastOptions selects which hourly variables to request
type ForecastOptions struct {
	Days                 int  `json:"days"`
	IncludeHumidity      bool `json:"includeHumidity"`
	IncludePrecipitation bool `json:"includePrecipitation"`
	IncludeWindSpeed     bool `json:"includeWindSpeed"`
}

// HourlyForecast is the raw hourly series returned by the weather API.
// Optional slices are nil when the variable was not requested.
type HourlyForecast struct {
	Latitude         float64     `json:"latitude"`
	Longitude        float64     `json:"longitude"`
	Elevation        float64     `json:"elevation"`
	UTCOffsetSeconds int         `json:"utcOffsetSeconds"`
	Time             []time.Time `json:"time"`
	Temperature      []float64   `json:"temperature"`
	Humidity         []float64   `json:"humidity,omitempty"`
	Precipitation    []float64   `json:"precipitation,omitempty"`
	WindSpeed        []float64   `json:"windSpeed,omitempty"`
}

// WeatherSummary condenses an hourly series into headline numbers
type WeatherSummary struct {
	CurrentTemp float64 `json:"currentTemp"`
	AvgTemp     float64 `json:"avgTemp"`
	MinTemp     float64 `json:"minTemp"`
	MaxTemp     float64 `json:"maxTemp"`
	Description string  `json:"description"`
}

// WeatherForecast is the complete forecast for a resolved city
type WeatherForecast struct {
	City        string          `json:"requestedCity"`
	DisplayName string          `json:"resolvedLocation"`
	Hourly      *HourlyForecast `json:"hourly"`
	Summary     WeatherSummary  `json:"summary"`
	GeneratedAt time.Time       `json:"generatedAt"`
}
