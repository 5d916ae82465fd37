package usecase

import (
	"regexp"
	"strings"
)

// whitespaceRegex collapses runs of whitespace; compiled once at package level
var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	nonWordRegex    = regexp.MustCompile(`\W+`)
)

// normalize lowercases and trims a string. Total over any input; empty in,
// empty out.
func normalize(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}

// normalizeSize normalizes a size string and strips all whitespace so
// "500 ml" and "500ml" compare equal.
func normalizeSize(s string) string {
	return whitespaceRegex.ReplaceAllString(normalize(s), "")
}

// tokenize lowercases a string and splits it into non-empty word tokens
func tokenize(s string) []string {
	return strings.Fields(strings.ToLower(s))
}

// splitWords breaks a normalized string into word runs, dropping punctuation.
// Used for fuzzy comparison against individual query tokens.
func splitWords(s string) []string {
	var words []string
	for _, w := range nonWordRegex.Split(s, -1) {
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}

// levenshteinDistance calculates the edit distance between two strings
// over Unicode code points. Insert, delete and substitute each cost 1.
func levenshteinDistance(s1, s2 string) int {
	if s1 == s2 {
		return 0
	}
	if len(s1) == 0 {
		return len([]rune(s2))
	}
	if len(s2) == 0 {
		return len([]rune(s1))
	}

	r1 := []rune(s1)
	r2 := []rune(s2)
	m := len(r1)
	n := len(r2)

	// Use two rows instead of the full matrix for space efficiency
	prev := make([]int, n+1)
	curr := make([]int, n+1)

	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[n]
}

// fuzzyEquals reports whether two tokens are within maxDistance edits
func fuzzyEquals(a, b string, maxDistance int) bool {
	if a == b {
		return true
	}
	return levenshteinDistance(a, b) <= maxDistance
}

// containsEither reports bidirectional substring containment, the rule used
// for brand and size comparison ("Amul Dairy" vs "Amul" must match both ways)
func containsEither(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}
