package main

import (
	"log"

	"github.com/tolmol/backend/config"
	httpDelivery "github.com/tolmol/backend/internal/delivery/http"
	mcpDelivery "github.com/tolmol/backend/internal/delivery/mcp"
	"github.com/tolmol/backend/internal/infrastructure/cache"
	"github.com/tolmol/backend/internal/infrastructure/geocode"
	"github.com/tolmol/backend/internal/infrastructure/openmeteo"
	"github.com/tolmol/backend/internal/infrastructure/shelfradar"
	"github.com/tolmol/backend/internal/usecase"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	debug := cfg.Matching.EnableDebugLogging

	// Infrastructure
	memCache := cache.NewMemoryCache()

	geocodeClient := geocode.NewClient(cfg.Geocode.APIKey, cfg.Geocode.BaseURL)
	geocodeClient.SetDebug(debug)

	searchClient := shelfradar.NewClient(cfg.Search.BaseURL, cfg.Search.AuthToken, cfg.Search.Timeout)
	searchClient.SetDebug(debug)

	weatherClient := openmeteo.NewClient(cfg.Weather.BaseURL)

	// Use cases
	matcher := usecase.NewMatchingService(usecase.MatchConfig{
		ProductNameWeight:  cfg.Matching.ProductNameWeight,
		BrandBonus:         cfg.Matching.BrandBonus,
		SizeBonus:          cfg.Matching.SizeBonus,
		FuzzyMaxDistance:   cfg.Matching.FuzzyMaxDistance,
		EnableDebugLogging: debug,
	})

	roster := make([]usecase.StoreDef, 0, len(cfg.Stores))
	for _, store := range cfg.Stores {
		roster = append(roster, usecase.StoreDef{
			Name:     store.Name,
			Aliases:  store.Aliases,
			Homepage: store.Homepage,
		})
	}
	stores := usecase.NewStoreNormalizer(roster)

	shoppingService := usecase.NewShoppingService(
		memCache,
		geocodeClient,
		searchClient,
		matcher,
		stores,
		usecase.ShoppingConfig{
			SearchTimeout:      cfg.Search.Timeout,
			GeocodeCacheTTL:    cfg.Cache.GeocodeTTL,
			SearchCacheTTL:     cfg.Cache.SearchTTL,
			EnableDebugLogging: debug,
		},
	)

	weatherService := usecase.NewWeatherService(geocodeClient, weatherClient, debug)

	// Delivery
	handler := httpDelivery.NewHandler(shoppingService, weatherService)
	mcpServer := mcpDelivery.NewServer(shoppingService, weatherService, version)
	router := httpDelivery.SetupRouter(cfg, handler, mcpServer.Handler())

	log.Printf("Starting server on port %s (environment: %s)", cfg.Server.Port, cfg.Server.Environment)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
