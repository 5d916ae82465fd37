package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrLocationNotFound is returned when a location cannot be geocoded.
	// It is fatal to the whole request.
	ErrLocationNotFound = errors.New("location not found")

	// ErrGeocodeFailure is returned when the geocoding API request fails
	ErrGeocodeFailure = errors.New("geocoding API request failed")

	// ErrSearchFailure is returned when an upstream product search fails.
	// It is scoped to a single item and never aborts sibling items.
	ErrSearchFailure = errors.New("API request failed")

	// ErrWeatherFailure is returned when the weather API request fails
	ErrWeatherFailure = errors.New("weather API request failed")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)

// ValidationError reports every violated input constraint at once so the
// caller can fix the request in a single round trip.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s", ErrInvalidRequest, strings.Join(e.Violations, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidRequest
}

// ValidateItems checks a shopping-list request before any network call is
// made. It collects all violations rather than stopping at the first.
func ValidateItems(items []StructuredItem) error {
	var violations []string
	if len(items) == 0 {
		violations = append(violations, "items: at least one item is required")
	}
	for i, item := range items {
		if strings.TrimSpace(item.ProductName) == "" {
			violations = append(violations, fmt.Sprintf("items[%d].product_name: required", i))
		}
	}
	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}
