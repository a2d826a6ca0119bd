package search

import (
	"strings"
	"unicode"
)

// Trigram text similarity in the style of PostgreSQL's pg_trgm: strings are
// lowercased and split into alphanumeric words, each word is padded with two
// leading and one trailing space, and similarity is the Jaccard overlap of
// the resulting trigram sets.

// words splits text into lowercased alphanumeric runs.
func words(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// trigramSet extracts the padded-trigram set of text.
func trigramSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, word := range words(text) {
		padded := "  " + word + " "
		runes := []rune(padded)
		for i := 0; i+3 <= len(runes); i++ {
			set[string(runes[i:i+3])] = struct{}{}
		}
	}
	return set
}

// trigramSimilarity returns the Jaccard similarity of the trigram sets of a
// and b, in [0,1]. Two strings with no alphanumeric content score 0.
func trigramSimilarity(a, b string) float64 {
	setA := trigramSet(a)
	setB := trigramSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for t := range setA {
		if _, ok := setB[t]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// wordSimilarity scores how well query matches term at word granularity:
// the best trigram similarity between the query and any single word of the
// term, or the whole term, whichever is greater. This makes a short typed
// prefix like "aerodyn" score high against "Aerodynamics" and tolerates
// typos inside multi-word terms.
func wordSimilarity(query, term string) float64 {
	best := trigramSimilarity(query, term)
	for _, word := range words(term) {
		if s := trigramSimilarity(query, word); s > best {
			best = s
		}
	}
	return best
}

// containsFold reports whether s contains substr, case-insensitively.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// dotProduct calculates the dot product of two vectors. For unit-norm
// vectors this equals cosine similarity (1 - cosine distance).
func dotProduct(a, b []float32) float64 {
	var sum float64
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	for i := 0; i < minLen; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
