package usecase

import (
	"math"
	"sort"

	"github.com/tolmol/backend/internal/domain"
)

// BuildStoreComparison pivots store-normalized per-item results into a
// per-store shopping summary: which items each store carries, what the full
// cart would cost there, and how complete the store is. Placeholder rows
// and zero-priced or out-of-stock listings do not count toward totals.
//
// Stores that carry every item sort first (cheapest cart wins ties);
// partial stores follow, most complete first.
func (n *StoreNormalizer) BuildStoreComparison(result *domain.ShoppingResult) []domain.StoreSummary {
	products := make(map[string][]domain.ProductRecord, len(n.roster))
	available := make(map[string]int, len(n.roster))

	for _, item := range result.Results {
		if len(item.Matches) == 0 {
			continue
		}
		for _, rec := range item.Matches[0] {
			name := n.canonicalName(rec)
			products[name] = append(products[name], rec)
			if isAvailable(rec) {
				available[name]++
			}
		}
	}

	summaries := make([]domain.StoreSummary, 0, len(n.roster))
	for _, def := range n.roster {
		recs, ok := products[def.Name]
		if !ok {
			continue
		}

		total := 0.0
		for _, rec := range recs {
			if isAvailable(rec) {
				total += rec.Price
			}
		}

		count := available[def.Name]
		avg := 0.0
		if count > 0 {
			avg = round2(total / float64(count))
		}

		summaries = append(summaries, domain.StoreSummary{
			Store:             def.Name,
			Products:          recs,
			ItemsAvailable:    count,
			TotalItems:        result.TotalItems,
			CompletenessScore: int(math.Round(float64(count) / float64(result.TotalItems) * 100)),
			HasAllItems:       count == result.TotalItems,
			TotalCartPrice:    round2(total),
			AverageItemPrice:  avg,
			Homepage:          def.Homepage,
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		a, b := summaries[i], summaries[j]
		if a.HasAllItems != b.HasAllItems {
			return a.HasAllItems
		}
		if a.HasAllItems && b.HasAllItems {
			return a.TotalCartPrice < b.TotalCartPrice
		}
		return a.CompletenessScore > b.CompletenessScore
	})

	return summaries
}

// canonicalName maps a record back onto its roster store; normalized rows
// already carry canonical platform names, raw records may not.
func (n *StoreNormalizer) canonicalName(rec domain.ProductRecord) string {
	platform := rec.Platform
	if platform == "" {
		platform = rec.Store
	}
	if def, ok := n.MatchStore(platform); ok {
		return def.Name
	}
	return platform
}

func isAvailable(rec domain.ProductRecord) bool {
	return !rec.NotFound && rec.InStock && rec.Price > 0
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
