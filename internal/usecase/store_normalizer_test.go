package usecase

import (
	"testing"

	"github.com/tolmol/backend/internal/domain"
)

func TestMatchStore(t *testing.T) {
	n := NewStoreNormalizer(nil)

	tests := []struct {
		platform string
		expected string
		ok       bool
	}{
		{"Swiggy Instamart", "swiggy instamart", true},
		{"swiggy", "swiggy instamart", true},
		{"Blinkit", "blinkit", true},
		{"zepto ", "zepto", true},
		{"BigBasket", "bbnow", true},
		{"bb now", "bbnow", true},
		{"DMart Ready", "dmart", true},
		{"amazon fresh", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.platform, func(t *testing.T) {
			def, ok := n.MatchStore(tt.platform)
			if ok != tt.ok {
				t.Fatalf("MatchStore(%q) ok = %v, want %v", tt.platform, ok, tt.ok)
			}
			if ok && def.Name != tt.expected {
				t.Errorf("MatchStore(%q) = %q, want %q", tt.platform, def.Name, tt.expected)
			}
		})
	}
}

func TestNormalizeRosterCompleteness(t *testing.T) {
	n := NewStoreNormalizer(nil)
	rosterSize := len(n.Roster())

	t.Run("fills missing stores with out-of-stock placeholders", func(t *testing.T) {
		result := domain.MatchResult{
			SearchQuery: "500ml Amul cow milk",
			Matches: []domain.ProductGroup{
				{
					{Name: "Amul Gold Cow Milk", Platform: "blinkit", Price: 33, InStock: true, URL: "https://blinkit.com/p/1"},
					{Name: "Amul Gold Cow Milk", Platform: "zepto", Price: 35, InStock: true, URL: "https://zepto.com/p/1"},
				},
			},
		}

		normalized := n.Normalize(result)
		if len(normalized.Matches) != 1 {
			t.Fatalf("len(Matches) = %d, want 1", len(normalized.Matches))
		}
		group := normalized.Matches[0]
		if len(group) != rosterSize {
			t.Fatalf("len(group) = %d, want %d", len(group), rosterSize)
		}

		seen := map[string]int{}
		for _, rec := range group {
			seen[rec.Store]++
		}
		for _, def := range n.Roster() {
			if seen[def.Name] != 1 {
				t.Errorf("store %q appears %d times, want exactly 1", def.Name, seen[def.Name])
			}
		}

		for _, rec := range group {
			switch rec.Store {
			case "blinkit":
				if rec.Price != 33 || !rec.InStock {
					t.Errorf("blinkit row = %+v, want the real record", rec)
				}
			case "zepto":
				if rec.Price != 35 {
					t.Errorf("zepto row price = %v, want 35", rec.Price)
				}
			default:
				if !rec.InStock && rec.NotFound {
					t.Errorf("%q placeholder marked NotFound, want out-of-stock", rec.Store)
				}
				if rec.Availability != "Out of Stock" {
					t.Errorf("%q Availability = %q, want Out of Stock", rec.Store, rec.Availability)
				}
				if rec.Price != 0 || rec.URL != "#" {
					t.Errorf("%q placeholder = %+v, want zero price and # url", rec.Store, rec)
				}
			}
		}
	})

	t.Run("rows come out in roster order", func(t *testing.T) {
		result := domain.MatchResult{
			SearchQuery: "milk",
			Matches: []domain.ProductGroup{
				{
					{Name: "Milk", Platform: "dmart", Price: 30, InStock: true},
					{Name: "Milk", Platform: "swiggy instamart", Price: 32, InStock: true},
				},
			},
		}

		group := n.Normalize(result).Matches[0]
		for i, def := range n.Roster() {
			if group[i].Store != def.Name {
				t.Errorf("group[%d].Store = %q, want %q", i, group[i].Store, def.Name)
			}
		}
	})

	t.Run("not-found item yields a full placeholder group", func(t *testing.T) {
		result := domain.MatchResult{
			SearchQuery: "unobtainium",
			Error:       `No products found matching "unobtainium"`,
			NotFound:    true,
		}

		normalized := n.Normalize(result)
		group := normalized.Matches[0]
		if len(group) != rosterSize {
			t.Fatalf("len(group) = %d, want %d", len(group), rosterSize)
		}
		for _, rec := range group {
			if !rec.NotFound {
				t.Errorf("%q NotFound = false, want true", rec.Store)
			}
			if rec.Availability != "Not Found" {
				t.Errorf("%q Availability = %q, want Not Found", rec.Store, rec.Availability)
			}
			if rec.Name != "unobtainium" {
				t.Errorf("%q placeholder Name = %q, want the search query", rec.Store, rec.Name)
			}
		}
		if !normalized.NotFound || normalized.Error == "" {
			t.Error("NotFound flag and Error must survive normalization")
		}
	})

	t.Run("mapped records are stamped with canonical store names", func(t *testing.T) {
		result := domain.MatchResult{
			SearchQuery: "milk",
			Matches: []domain.ProductGroup{
				{
					// Upstream rows typically carry only a platform string
					{Name: "Milk", Platform: "BigBasket", Price: 40, InStock: true},
					{Name: "Milk", Platform: "Swiggy", Price: 42, InStock: true},
				},
			},
		}

		group := n.Normalize(result).Matches[0]
		for i, def := range n.Roster() {
			if group[i].Store != def.Name {
				t.Errorf("group[%d].Store = %q, want canonical %q", i, group[i].Store, def.Name)
			}
		}
		for _, rec := range group {
			switch rec.Store {
			case "bbnow":
				if rec.Price != 40 {
					t.Errorf("bbnow row price = %v, want the mapped BigBasket record", rec.Price)
				}
			case "swiggy instamart":
				if rec.Price != 42 {
					t.Errorf("swiggy instamart row price = %v, want the mapped Swiggy record", rec.Price)
				}
			}
		}
	})

	t.Run("duplicate platform rows keep the first mapping", func(t *testing.T) {
		result := domain.MatchResult{
			SearchQuery: "milk",
			Matches: []domain.ProductGroup{
				{
					{Name: "Milk A", Platform: "blinkit", Price: 30, InStock: true},
					{Name: "Milk B", Platform: "Blinkit", Price: 99, InStock: true},
				},
			},
		}

		group := n.Normalize(result).Matches[0]
		for _, rec := range group {
			if rec.Store == "blinkit" && rec.Name != "Milk A" {
				t.Errorf("blinkit row = %q, want the first mapped record", rec.Name)
			}
		}
	})

	t.Run("only the top-ranked group contributes records", func(t *testing.T) {
		result := domain.MatchResult{
			SearchQuery: "milk",
			Matches: []domain.ProductGroup{
				{{Name: "Milk", Platform: "blinkit", Price: 30, InStock: true}},
				{{Name: "Milk", Platform: "zepto", Price: 25, InStock: true}},
			},
		}

		group := n.Normalize(result).Matches[0]
		for _, rec := range group {
			if rec.Store == "zepto" && rec.Price != 0 {
				t.Errorf("zepto row = %+v, want a placeholder (second group ignored)", rec)
			}
		}
	})

	t.Run("unknown platforms are dropped", func(t *testing.T) {
		result := domain.MatchResult{
			SearchQuery: "milk",
			Matches: []domain.ProductGroup{
				{{Name: "Milk", Platform: "amazon fresh", Price: 20, InStock: true}},
			},
		}

		group := n.Normalize(result).Matches[0]
		if len(group) != rosterSize {
			t.Fatalf("len(group) = %d, want %d", len(group), rosterSize)
		}
		for _, rec := range group {
			if rec.Price != 0 {
				t.Errorf("%q row has price %v, want all placeholders", rec.Store, rec.Price)
			}
		}
	})
}

func TestNewStoreNormalizerCustomRoster(t *testing.T) {
	n := NewStoreNormalizer([]StoreDef{
		{Name: "storeA"},
		{Name: "storeB", Aliases: []string{"b-mart"}},
	})

	if len(n.Roster()) != 2 {
		t.Fatalf("len(Roster) = %d, want 2", len(n.Roster()))
	}
	if def, ok := n.MatchStore("B-Mart Online"); !ok || def.Name != "storeB" {
		t.Errorf("MatchStore(B-Mart Online) = %v/%v, want storeB", def.Name, ok)
	}
}
