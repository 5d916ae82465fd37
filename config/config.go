package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Geocode  GeocodeConfig
	Search   SearchConfig
	Weather  WeatherConfig
	Cache    CacheConfig
	Matching MatchingConfig
	Stores   []StoreConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// GeocodeConfig holds geocoding API configuration
type GeocodeConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// SearchConfig holds ShelfRadar aggregate API configuration
type SearchConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	AuthToken string        `mapstructure:"auth_token"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// WeatherConfig holds Open-Meteo API configuration
type WeatherConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	GeocodeTTL time.Duration `mapstructure:"geocode_ttl"`
	SearchTTL  time.Duration `mapstructure:"search_ttl"`
}

// MatchingConfig holds the scoring policy. The weights are deliberately
// configuration, not literals: product-name relevance must dominate brand,
// which must dominate size, but the exact numbers are tunable.
type MatchingConfig struct {
	ProductNameWeight  int  `mapstructure:"product_name_weight"`
	BrandBonus         int  `mapstructure:"brand_bonus"`
	SizeBonus          int  `mapstructure:"size_bonus"`
	FuzzyMaxDistance   int  `mapstructure:"fuzzy_max_distance"`
	EnableDebugLogging bool `mapstructure:"enable_debug_logging"`
}

// StoreConfig is one canonical store in the configured roster. Order
// matters: results are always emitted in roster order.
type StoreConfig struct {
	Name     string   `mapstructure:"name"`
	Aliases  []string `mapstructure:"aliases"`
	Homepage string   `mapstructure:"homepage"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	// A local .env file is a convenience for development; real deployments
	// set environment variables directly
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/tolmol/")

	v.SetEnvPrefix("TOLMOL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults cover everything
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Upstream API defaults. The secrets default to empty so viper knows
	// the keys exist and AutomaticEnv can resolve them; validate rejects
	// them if they stay empty.
	v.SetDefault("geocode.base_url", "https://geocode.maps.co")
	v.SetDefault("geocode.api_key", "")
	v.SetDefault("search.base_url", "https://tolmol-api.prod.shelfradar.ai")
	v.SetDefault("search.auth_token", "")
	v.SetDefault("search.timeout", "8s")
	v.SetDefault("weather.base_url", "https://api.open-meteo.com")

	// Cache defaults
	v.SetDefault("cache.geocode_ttl", "1h")
	v.SetDefault("cache.search_ttl", "5m")

	// Matching policy defaults
	v.SetDefault("matching.product_name_weight", 10)
	v.SetDefault("matching.brand_bonus", 5)
	v.SetDefault("matching.size_bonus", 3)
	v.SetDefault("matching.fuzzy_max_distance", 1)
	v.SetDefault("matching.enable_debug_logging", false)
}

// loadEnvFile loads KEY=VALUE pairs from a .env file in the working
// directory, if one exists. Existing environment variables are never
// overridden.
func loadEnvFile() error {
	file, err := os.Open(".env")
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if _, exists := os.LookupEnv(key); !exists {
			os.Setenv(key, value)
		}
	}

	return scanner.Err()
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Geocode.APIKey == "" {
		return fmt.Errorf("geocoding API key is required (set TOLMOL_GEOCODE_API_KEY)")
	}

	if config.Search.AuthToken == "" {
		return fmt.Errorf("search API auth token is required (set TOLMOL_SEARCH_AUTH_TOKEN)")
	}

	for i, store := range config.Stores {
		if store.Name == "" {
			return fmt.Errorf("stores[%d]: name is required", i)
		}
	}

	return nil
}
