package domain

import (
	"strings"
	"time"
)

// StructuredItem represents one parsed shopping-list entry
type StructuredItem struct {
	Size        string `json:"size,omitempty"`
	BrandName   string `json:"brand_name,omitempty"`
	ProductName string `json:"product_name" binding:"required"`
	Query       string `json:"query,omitempty"`
}

// SearchQuery builds the upstream search string from the structured fields.
// The optional free-text query is appended for extra context but never scored.
func (i StructuredItem) SearchQuery() string {
	parts := make([]string, 0, 4)
	if i.Size != "" {
		parts = append(parts, i.Size)
	}
	if i.BrandName != "" {
		parts = append(parts, i.BrandName)
	}
	parts = append(parts, i.ProductName)
	if i.Query != "" {
		parts = append(parts, i.Query)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// DisplayQuery is the human-readable form used in results and diagnostics.
// Unlike SearchQuery it omits the free-text context.
func (i StructuredItem) DisplayQuery() string {
	parts := make([]string, 0, 3)
	if i.Size != "" {
		parts = append(parts, i.Size)
	}
	if i.BrandName != "" {
		parts = append(parts, i.BrandName)
	}
	parts = append(parts, i.ProductName)
	return strings.TrimSpace(strings.Join(parts, " "))
}

// ProductRecord is one seller's listing for a candidate product. The upstream
// aggregate API has no enforced schema, so every field is optional and the
// adapter in the shelfradar package fills in safe defaults.
type ProductRecord struct {
	ProductID     string  `json:"productId,omitempty"`
	Name          string  `json:"name"`
	Brand         string  `json:"brand,omitempty"`
	Size          string  `json:"size,omitempty"`
	Unit          string  `json:"unit,omitempty"`
	Platform      string  `json:"platform"`
	Store         string  `json:"store,omitempty"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"originalPrice,omitempty"`
	Discount      float64 `json:"discount,omitempty"`
	InStock       bool    `json:"inStock"`
	URL           string  `json:"url"`
	Image         string  `json:"image,omitempty"`
	Category      string  `json:"category,omitempty"`
	Description   string  `json:"description,omitempty"`
	Rating        float64 `json:"rating,omitempty"`
	Reviews       int     `json:"reviews,omitempty"`
	Availability  string  `json:"availability,omitempty"`
	NotFound      bool    `json:"notFound,omitempty"`
}

// ProductGroup is an ordered set of listings the upstream API considers the
// same underlying product across seller platforms. Grouping is never redone
// here; groups are only re-scored and reordered.
type ProductGroup []ProductRecord

// MatchResult holds the matching outcome for a single shopping-list item.
// It is created once per request and never mutated after construction.
type MatchResult struct {
	SearchQuery string         `json:"searchItem"`
	Matches     []ProductGroup `json:"matches"`
	Error       string         `json:"error,omitempty"`
	NotFound    bool           `json:"notFound"`
}

// Coordinates is a resolved geographic position
type Coordinates struct {
	Lat  float64 `json:"lat"`
	Long float64 `json:"long"`
}

// GeoLocation is the result of geocoding a free-text location
type GeoLocation struct {
	Coordinates
	DisplayName string `json:"displayName,omitempty"`
}

// ShoppingResult is the per-request output of the matching engine
type ShoppingResult struct {
	Location    string        `json:"location"`
	Coordinates Coordinates   `json:"coordinates"`
	Results     []MatchResult `json:"processedResults"`
	TotalItems  int           `json:"totalItems"`
	Timestamp   time.Time     `json:"timestamp"`
}

// StoreSummary aggregates one store's view of a full shopping list
type StoreSummary struct {
	Store             string          `json:"store"`
	Products          []ProductRecord `json:"products"`
	ItemsAvailable    int             `json:"itemsAvailable"`
	TotalItems        int             `json:"totalItemsSearched"`
	CompletenessScore int             `json:"completenessScore"`
	HasAllItems       bool            `json:"hasAllItems"`
	TotalCartPrice    float64         `json:"totalCartPrice"`
	AverageItemPrice  float64         `json:"averageItemPrice"`
	Homepage          string          `json:"storeHomepage"`
}
