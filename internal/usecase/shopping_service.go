package usecase

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/tolmol/backend/internal/domain"
)

// DefaultLocation is used when a request does not specify one
const DefaultLocation = "Mumbai"

// ShoppingConfig holds configuration for the shopping service
type ShoppingConfig struct {
	SearchTimeout      time.Duration
	GeocodeCacheTTL    time.Duration
	SearchCacheTTL     time.Duration
	EnableDebugLogging bool
}

// ShoppingService orchestrates a price-comparison request: geocode once,
// fan out product searches per item, then run the pure matching pipeline.
type ShoppingService struct {
	cache              domain.CacheRepository
	geocoder           domain.GeocodeClient
	searcher           domain.ProductSearchClient
	matcher            *MatchingService
	stores             *StoreNormalizer
	searchTimeout      time.Duration
	geocodeCacheTTL    time.Duration
	searchCacheTTL     time.Duration
	enableDebugLogging bool
}

// NewShoppingService creates a shopping service with its dependencies
func NewShoppingService(
	cache domain.CacheRepository,
	geocoder domain.GeocodeClient,
	searcher domain.ProductSearchClient,
	matcher *MatchingService,
	stores *StoreNormalizer,
	config ShoppingConfig,
) *ShoppingService {
	searchTimeout := config.SearchTimeout
	if searchTimeout <= 0 {
		searchTimeout = 8 * time.Second
	}
	geocodeTTL := config.GeocodeCacheTTL
	if geocodeTTL <= 0 {
		geocodeTTL = time.Hour
	}
	searchTTL := config.SearchCacheTTL
	if searchTTL <= 0 {
		searchTTL = 5 * time.Minute
	}

	return &ShoppingService{
		cache:              cache,
		geocoder:           geocoder,
		searcher:           searcher,
		matcher:            matcher,
		stores:             stores,
		searchTimeout:      searchTimeout,
		geocodeCacheTTL:    geocodeTTL,
		searchCacheTTL:     searchTTL,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// fetchResult carries one item's upstream outcome across the fan-in
type fetchResult struct {
	groups []domain.ProductGroup
	err    error
}

// MatchItems resolves the location, searches every item concurrently and
// returns one MatchResult per item in input order.
//
// A geocoding failure aborts the whole request. A failed item search is
// captured as data on that item only; sibling items are unaffected and the
// result set always has exactly one entry per requested item. In strict
// mode each result is additionally normalized to one row per canonical
// store.
func (s *ShoppingService) MatchItems(
	ctx context.Context,
	items []domain.StructuredItem,
	location string,
	mode Mode,
) (*domain.ShoppingResult, error) {
	if err := domain.ValidateItems(items); err != nil {
		return nil, err
	}
	if location == "" {
		location = DefaultLocation
	}

	loc, err := s.resolveLocation(ctx, location)
	if err != nil {
		return nil, err
	}

	if s.enableDebugLogging {
		log.Printf("[SHOPPING] %d items in %q (%.2f, %.2f), mode=%s",
			len(items), location, loc.Lat, loc.Long, mode)
	}

	fetched := make([]fetchResult, len(items))
	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func(i int, item domain.StructuredItem) {
			defer wg.Done()
			searchCtx, cancel := context.WithTimeout(ctx, s.searchTimeout)
			defer cancel()
			groups, err := s.search(searchCtx, item.SearchQuery(), loc.Coordinates)
			fetched[i] = fetchResult{groups: groups, err: err}
		}(i, item)
	}
	wg.Wait()

	results := make([]domain.MatchResult, len(items))
	for i, item := range items {
		if fetched[i].err != nil {
			// Converted to data here so one bad item never partially fails
			// a multi-item request
			results[i] = domain.MatchResult{
				SearchQuery: item.DisplayQuery(),
				Error:       fetched[i].err.Error(),
				NotFound:    true,
			}
		} else {
			results[i] = s.matcher.RankGroups(item, fetched[i].groups, mode)
		}
		if mode == ModeStrict {
			results[i] = s.stores.Normalize(results[i])
		}
	}

	return &domain.ShoppingResult{
		Location:    location,
		Coordinates: loc.Coordinates,
		Results:     results,
		TotalItems:  len(items),
		Timestamp:   time.Now().UTC(),
	}, nil
}

// Roster exposes the canonical store roster for presentation callers
func (s *ShoppingService) Roster() *StoreNormalizer {
	return s.stores
}

// search runs one upstream query through a short-lived response cache so a
// repeated shopping list does not hammer the aggregate API. Errors are never
// cached.
func (s *ShoppingService) search(ctx context.Context, query string, coords domain.Coordinates) ([]domain.ProductGroup, error) {
	cacheKey := fmt.Sprintf("search:%s:%.4f:%.4f", normalize(query), coords.Lat, coords.Long)

	if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
		if groups, ok := cached.([]domain.ProductGroup); ok {
			return groups, nil
		}
	}

	groups, err := s.searcher.Search(ctx, query, coords)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKey, groups, s.searchCacheTTL); err != nil && s.enableDebugLogging {
		log.Printf("[SHOPPING] search cache write failed: %v", err)
	}

	return groups, nil
}

// resolveLocation geocodes a free-text location, consulting the cache
// first. Geocode results are stable enough to cache across requests.
func (s *ShoppingService) resolveLocation(ctx context.Context, location string) (*domain.GeoLocation, error) {
	cacheKey := "geocode:" + normalize(location)

	if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
		if loc, ok := cached.(*domain.GeoLocation); ok {
			return loc, nil
		}
	}

	loc, err := s.geocoder.Geocode(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLocationNotFound, err)
	}

	if err := s.cache.Set(ctx, cacheKey, loc, s.geocodeCacheTTL); err != nil && s.enableDebugLogging {
		log.Printf("[SHOPPING] geocode cache write failed: %v", err)
	}

	return loc, nil
}
