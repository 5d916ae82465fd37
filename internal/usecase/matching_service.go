package usecase

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/tolmol/backend/internal/domain"
)

// Mode selects the matching policy applied to candidate groups
type Mode string

const (
	// ModeScored computes a weighted relevance score and sorts groups by it
	ModeScored Mode = "scored"

	// ModeStrict requires every supplied field to pass a containment check
	// and keeps groups in their upstream order
	ModeStrict Mode = "strict"
)

// Scoring policy defaults. Product-name relevance dominates brand relevance,
// which dominates size relevance: the x10 multiplier guarantees any
// difference in product-name score outweighs the maximum brand+size bonus.
const (
	defaultProductNameWeight = 10
	defaultBrandBonus        = 5
	defaultSizeBonus         = 3
	defaultFuzzyMaxDistance  = 1

	tokenExactPoints = 2 // query token appears verbatim in the combined string
	tokenFuzzyPoints = 1 // query token within edit distance of a combined word
)

// MatchConfig holds the tunable scoring policy for the matching service
type MatchConfig struct {
	ProductNameWeight  int
	BrandBonus         int
	SizeBonus          int
	FuzzyMaxDistance   int
	EnableDebugLogging bool
}

// MatchingService scores and ranks upstream product groups against a
// structured shopping-list item. All methods are pure and safe for
// concurrent use.
type MatchingService struct {
	productNameWeight  int
	brandBonus         int
	sizeBonus          int
	fuzzyMaxDistance   int
	enableDebugLogging bool
}

// NewMatchingService creates a matching service with the given policy.
// Zero or negative weights fall back to the defaults.
func NewMatchingService(config MatchConfig) *MatchingService {
	s := &MatchingService{
		productNameWeight:  config.ProductNameWeight,
		brandBonus:         config.BrandBonus,
		sizeBonus:          config.SizeBonus,
		fuzzyMaxDistance:   config.FuzzyMaxDistance,
		enableDebugLogging: config.EnableDebugLogging,
	}
	if s.productNameWeight <= 0 {
		s.productNameWeight = defaultProductNameWeight
	}
	if s.brandBonus <= 0 {
		s.brandBonus = defaultBrandBonus
	}
	if s.sizeBonus <= 0 {
		s.sizeBonus = defaultSizeBonus
	}
	if s.fuzzyMaxDistance <= 0 {
		s.fuzzyMaxDistance = defaultFuzzyMaxDistance
	}
	return s
}

// parsedItem holds the pre-normalized scoring components of a query item
type parsedItem struct {
	size    string // whitespace-stripped, lowercase
	brand   string // lowercase
	product string // lowercase, whole string for strict containment
	tokens  []string
}

func parseItem(item domain.StructuredItem) parsedItem {
	return parsedItem{
		size:    normalizeSize(item.Size),
		brand:   normalize(item.BrandName),
		product: normalize(item.ProductName),
		tokens:  tokenize(item.ProductName),
	}
}

// fieldMatch is the per-record outcome of the three field checks
type fieldMatch struct {
	brandMatch       bool
	sizeMatch        bool
	nameMatch        bool // strict mode only
	productNameScore int  // scored mode only
}

// matchFields evaluates one candidate record against the parsed query.
// Absent candidate fields degrade to empty-string comparisons and never
// cause an error.
func (s *MatchingService) matchFields(q parsedItem, rec domain.ProductRecord, mode Mode) fieldMatch {
	prodBrand := normalize(rec.Brand)
	prodName := normalize(rec.Name)
	prodSize := normalizeSize(rec.Size)
	combined := strings.TrimSpace(prodBrand + " " + prodName)

	var m fieldMatch

	// No brand requirement means the check passes; a requirement against a
	// record with no brand fails.
	switch {
	case q.brand == "":
		m.brandMatch = true
	case prodBrand == "":
		m.brandMatch = false
	default:
		m.brandMatch = containsEither(prodBrand, q.brand)
	}

	switch {
	case q.size == "":
		m.sizeMatch = true
	case prodSize == "":
		m.sizeMatch = false
	default:
		m.sizeMatch = containsEither(prodSize, q.size)
	}

	if mode == ModeStrict {
		m.nameMatch = strings.Contains(combined, q.product) || strings.Contains(prodName, q.product)
		return m
	}

	words := splitWords(combined)
	for _, token := range q.tokens {
		if token == "" {
			continue
		}
		if strings.Contains(combined, token) {
			m.productNameScore += tokenExactPoints
			continue
		}
		for _, w := range words {
			if fuzzyEquals(w, token, s.fuzzyMaxDistance) {
				m.productNameScore += tokenFuzzyPoints
				break
			}
		}
	}

	return m
}

// combinedScore folds the field results into a single relevance number
func (s *MatchingService) combinedScore(m fieldMatch) int {
	score := m.productNameScore * s.productNameWeight
	if m.brandMatch {
		score += s.brandBonus
	}
	if m.sizeMatch {
		score += s.sizeBonus
	}
	return score
}

// passesStrict reports whether a record survives the strict filter
func passesStrict(m fieldMatch) bool {
	return m.brandMatch && m.sizeMatch && m.nameMatch
}

// scoredGroup pairs a group with its best record score; transient only
type scoredGroup struct {
	group domain.ProductGroup
	score int
}

// RankGroups applies the selected matching policy to every group returned
// by the upstream search for one item.
//
// Scored mode promotes matched groups to the front, sorted descending by
// best record score (stable, ties keep upstream order), and keeps unmatched
// groups behind them in their original order.
//
// Strict mode keeps only groups where at least one record passes every
// supplied field check, in original order, and reports the most specific
// available reason when nothing passes.
func (s *MatchingService) RankGroups(item domain.StructuredItem, groups []domain.ProductGroup, mode Mode) domain.MatchResult {
	q := parseItem(item)
	searchQuery := item.DisplayQuery()

	if mode == ModeStrict {
		return s.filterStrict(item, q, searchQuery, groups)
	}

	var matched []scoredGroup
	var others []domain.ProductGroup

	for _, group := range groups {
		bestScore := 0
		for _, rec := range group {
			if score := s.combinedScore(s.matchFields(q, rec, ModeScored)); score > bestScore {
				bestScore = score
			}
		}
		if bestScore > 0 {
			matched = append(matched, scoredGroup{group: group, score: bestScore})
		} else {
			others = append(others, group)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].score > matched[j].score
	})

	if s.enableDebugLogging {
		log.Printf("[MATCH] %q: %d matched groups, %d others", searchQuery, len(matched), len(others))
	}

	reordered := make([]domain.ProductGroup, 0, len(groups))
	for _, m := range matched {
		reordered = append(reordered, m.group)
	}
	reordered = append(reordered, others...)

	return domain.MatchResult{
		SearchQuery: searchQuery,
		Matches:     reordered,
	}
}

func (s *MatchingService) filterStrict(item domain.StructuredItem, q parsedItem, searchQuery string, groups []domain.ProductGroup) domain.MatchResult {
	var kept []domain.ProductGroup
	for _, group := range groups {
		for _, rec := range group {
			if passesStrict(s.matchFields(q, rec, ModeStrict)) {
				kept = append(kept, group)
				break
			}
		}
	}

	if len(kept) == 0 {
		// Report the most specific reason available: brand > size > generic
		errMsg := fmt.Sprintf("No products found matching %q", searchQuery)
		if q.brand != "" {
			errMsg = fmt.Sprintf("No products found with brand %q", item.BrandName)
		} else if q.size != "" {
			errMsg = fmt.Sprintf("No products found with size %q", item.Size)
		}

		if s.enableDebugLogging {
			log.Printf("[MATCH] %q: no groups passed strict filter", searchQuery)
		}

		return domain.MatchResult{
			SearchQuery: searchQuery,
			Error:       errMsg,
			NotFound:    true,
		}
	}

	return domain.MatchResult{
		SearchQuery: searchQuery,
		Matches:     kept,
	}
}
