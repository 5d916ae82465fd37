package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	cleanupEnv := func() {
		os.Unsetenv("TOLMOL_SERVER_PORT")
		os.Unsetenv("TOLMOL_SERVER_ENVIRONMENT")
		os.Unsetenv("TOLMOL_GEOCODE_API_KEY")
		os.Unsetenv("TOLMOL_GEOCODE_BASE_URL")
		os.Unsetenv("TOLMOL_SEARCH_BASE_URL")
		os.Unsetenv("TOLMOL_SEARCH_AUTH_TOKEN")
		os.Unsetenv("TOLMOL_SEARCH_TIMEOUT")
		os.Unsetenv("TOLMOL_WEATHER_BASE_URL")
		os.Unsetenv("TOLMOL_CACHE_GEOCODE_TTL")
		os.Unsetenv("TOLMOL_MATCHING_PRODUCT_NAME_WEIGHT")
	}

	t.Run("loads with defaults when only secrets are set", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("TOLMOL_GEOCODE_API_KEY", "test-key")
		os.Setenv("TOLMOL_SEARCH_AUTH_TOKEN", "test-token")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.Geocode.BaseURL != "https://geocode.maps.co" {
			t.Errorf("Geocode.BaseURL = %s, want https://geocode.maps.co", cfg.Geocode.BaseURL)
		}
		if cfg.Search.Timeout != 8*time.Second {
			t.Errorf("Search.Timeout = %v, want 8s", cfg.Search.Timeout)
		}
		if cfg.Cache.GeocodeTTL != time.Hour {
			t.Errorf("Cache.GeocodeTTL = %v, want 1h", cfg.Cache.GeocodeTTL)
		}
		if cfg.Matching.ProductNameWeight != 10 || cfg.Matching.BrandBonus != 5 || cfg.Matching.SizeBonus != 3 {
			t.Errorf("Matching weights = %d/%d/%d, want 10/5/3",
				cfg.Matching.ProductNameWeight, cfg.Matching.BrandBonus, cfg.Matching.SizeBonus)
		}
		if cfg.Matching.FuzzyMaxDistance != 1 {
			t.Errorf("Matching.FuzzyMaxDistance = %d, want 1", cfg.Matching.FuzzyMaxDistance)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("TOLMOL_SERVER_PORT", "9090")
		os.Setenv("TOLMOL_SERVER_ENVIRONMENT", "production")
		os.Setenv("TOLMOL_GEOCODE_API_KEY", "custom-key")
		os.Setenv("TOLMOL_SEARCH_AUTH_TOKEN", "custom-token")
		os.Setenv("TOLMOL_SEARCH_BASE_URL", "https://staging.shelfradar.test")
		os.Setenv("TOLMOL_SEARCH_TIMEOUT", "15s")
		os.Setenv("TOLMOL_CACHE_GEOCODE_TTL", "30m")
		os.Setenv("TOLMOL_MATCHING_PRODUCT_NAME_WEIGHT", "20")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.Geocode.APIKey != "custom-key" {
			t.Errorf("Geocode.APIKey = %s, want custom-key", cfg.Geocode.APIKey)
		}
		if cfg.Search.BaseURL != "https://staging.shelfradar.test" {
			t.Errorf("Search.BaseURL = %s, want staging URL", cfg.Search.BaseURL)
		}
		if cfg.Search.Timeout != 15*time.Second {
			t.Errorf("Search.Timeout = %v, want 15s", cfg.Search.Timeout)
		}
		if cfg.Cache.GeocodeTTL != 30*time.Minute {
			t.Errorf("Cache.GeocodeTTL = %v, want 30m", cfg.Cache.GeocodeTTL)
		}
		if cfg.Matching.ProductNameWeight != 20 {
			t.Errorf("Matching.ProductNameWeight = %d, want 20", cfg.Matching.ProductNameWeight)
		}
	})

	t.Run("fails validation when geocode API key is missing", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("TOLMOL_SEARCH_AUTH_TOKEN", "test-token")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for missing geocode API key")
		}
	})

	t.Run("fails validation when search auth token is missing", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("TOLMOL_GEOCODE_API_KEY", "test-key")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for missing search auth token")
		}
	})
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Geocode: GeocodeConfig{APIKey: "k"},
			Search:  SearchConfig{AuthToken: "t"},
		}
	}

	t.Run("passes with required secrets", func(t *testing.T) {
		if err := validate(base()); err != nil {
			t.Errorf("validate() error = %v, want nil", err)
		}
	})

	t.Run("fails for a nameless configured store", func(t *testing.T) {
		cfg := base()
		cfg.Stores = []StoreConfig{{Name: "blinkit"}, {Name: ""}}
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for empty store name")
		}
	})

	t.Run("accepts a custom store roster", func(t *testing.T) {
		cfg := base()
		cfg.Stores = []StoreConfig{
			{Name: "blinkit", Homepage: "https://blinkit.com"},
			{Name: "zepto"},
		}
		if err := validate(cfg); err != nil {
			t.Errorf("validate() error = %v, want nil", err)
		}
	})
}

func TestLoadEnvFile(t *testing.T) {
	t.Run("returns nil when .env file does not exist", func(t *testing.T) {
		originalDir, _ := os.Getwd()
		defer os.Chdir(originalDir)
		os.Chdir(t.TempDir())

		if err := loadEnvFile(); err != nil {
			t.Errorf("loadEnvFile() error = %v, want nil", err)
		}
	})

	t.Run("loads variables without overriding existing ones", func(t *testing.T) {
		originalDir, _ := os.Getwd()
		defer os.Chdir(originalDir)
		os.Chdir(t.TempDir())

		envContent := `
# comment
TEST_ENV_NEW=from-file
TEST_ENV_EXISTING=from-file
`
		if err := os.WriteFile(".env", []byte(envContent), 0644); err != nil {
			t.Fatalf("failed to write .env: %v", err)
		}

		os.Unsetenv("TEST_ENV_NEW")
		os.Setenv("TEST_ENV_EXISTING", "from-env")
		defer func() {
			os.Unsetenv("TEST_ENV_NEW")
			os.Unsetenv("TEST_ENV_EXISTING")
		}()

		if err := loadEnvFile(); err != nil {
			t.Fatalf("loadEnvFile() error = %v, want nil", err)
		}

		if os.Getenv("TEST_ENV_NEW") != "from-file" {
			t.Errorf("TEST_ENV_NEW = %s, want from-file", os.Getenv("TEST_ENV_NEW"))
		}
		if os.Getenv("TEST_ENV_EXISTING") != "from-env" {
			t.Errorf("TEST_ENV_EXISTING = %s, want from-env (no override)", os.Getenv("TEST_ENV_EXISTING"))
		}
	})
}
