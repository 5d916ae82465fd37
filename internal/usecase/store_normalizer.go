package usecase

import (
	"github.com/tolmol/backend/internal/domain"
)

// Placeholder availability labels
const (
	availabilityOutOfStock = "Out of Stock"
	availabilityNotFound   = "Not Found"
)

// StoreDef is one canonical store in the roster: its display name, the
// alias strings recognized when mapping upstream platform names, and the
// store homepage used by the comparison view.
type StoreDef struct {
	Name     string   `mapstructure:"name" json:"name"`
	Aliases  []string `mapstructure:"aliases" json:"aliases,omitempty"`
	Homepage string   `mapstructure:"homepage" json:"homepage,omitempty"`
}

// DefaultStores is the built-in roster of grocery-delivery platforms,
// used when no roster is configured.
func DefaultStores() []StoreDef {
	return []StoreDef{
		{Name: "swiggy instamart", Aliases: []string{"swiggy"}, Homepage: "https://www.swiggy.com/instamart"},
		{Name: "blinkit", Homepage: "https://blinkit.com"},
		{Name: "zepto", Homepage: "https://www.zepto.com"},
		{Name: "bbnow", Aliases: []string{"bigbasket", "bb"}, Homepage: "https://www.bigbasket.com"},
		{Name: "dmart", Homepage: "https://www.dmart.in"},
	}
}

// StoreNormalizer guarantees every canonical store appears exactly once in
// an item's final output, in roster order, regardless of upstream data
// quality.
type StoreNormalizer struct {
	roster []StoreDef
}

// NewStoreNormalizer creates a normalizer for the given roster. An empty
// roster falls back to the default store list.
func NewStoreNormalizer(roster []StoreDef) *StoreNormalizer {
	if len(roster) == 0 {
		roster = DefaultStores()
	}
	return &StoreNormalizer{roster: roster}
}

// Roster returns the canonical store definitions in order
func (n *StoreNormalizer) Roster() []StoreDef {
	return n.roster
}

// MatchStore maps an upstream platform/store string onto a canonical roster
// entry via bidirectional substring containment on normalized names. The
// first roster entry that matches wins. Platform strings from the upstream
// API are not guaranteed stable or exact, hence the deliberately loose rule.
func (n *StoreNormalizer) MatchStore(platform string) (StoreDef, bool) {
	candidate := normalizeSize(platform)
	if candidate == "" {
		return StoreDef{}, false
	}
	for _, def := range n.roster {
		names := append([]string{def.Name}, def.Aliases...)
		for _, name := range names {
			if containsEither(candidate, normalizeSize(name)) {
				return def, true
			}
		}
	}
	return StoreDef{}, false
}

// Normalize reshapes one item's ranked matches into a single group with
// exactly one entry per canonical store, in roster order. Items with no
// surviving matches (or an upstream error) get a full group of "Not Found"
// placeholders; stores missing from the top-ranked group get "Out of Stock"
// placeholders. Only the top-ranked group is consulted for real records.
func (n *StoreNormalizer) Normalize(result domain.MatchResult) domain.MatchResult {
	if result.NotFound || len(result.Matches) == 0 {
		group := make(domain.ProductGroup, 0, len(n.roster))
		for _, def := range n.roster {
			group = append(group, n.placeholder(def.Name, result.SearchQuery, availabilityNotFound, true))
		}
		result.Matches = []domain.ProductGroup{group}
		return result
	}

	// A deliberate simplification: only the best group feeds the per-store
	// view, one row per store.
	top := result.Matches[0]

	byStore := make(map[string]domain.ProductRecord, len(n.roster))
	for _, rec := range top {
		platform := rec.Platform
		if platform == "" {
			platform = rec.Store
		}
		def, ok := n.MatchStore(platform)
		if !ok {
			continue
		}
		// First mapping wins; later candidates for the same store are dropped
		if _, taken := byStore[def.Name]; !taken {
			// Stamp the canonical name so consumers never have to re-map
			// loose upstream platform strings
			rec.Store = def.Name
			byStore[def.Name] = rec
		}
	}

	group := make(domain.ProductGroup, 0, len(n.roster))
	for _, def := range n.roster {
		if rec, ok := byStore[def.Name]; ok {
			group = append(group, rec)
		} else {
			group = append(group, n.placeholder(def.Name, result.SearchQuery, availabilityOutOfStock, false))
		}
	}

	result.Matches = []domain.ProductGroup{group}
	return result
}

// placeholder builds a synthetic record for a store with nothing to show
func (n *StoreNormalizer) placeholder(store, searchQuery, availability string, notFound bool) domain.ProductRecord {
	return domain.ProductRecord{
		Store:        store,
		Platform:     store,
		Name:         searchQuery,
		Price:        0,
		InStock:      false,
		URL:          "#",
		Availability: availability,
		NotFound:     notFound,
	}
}
