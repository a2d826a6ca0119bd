package search

import (
	"context"
	"sort"
	"strings"

	"github.com/examtrail/qbank/core"
)

// Suggestion bounds.
const (
	DefaultSuggestionLimit = 5
	MaxSuggestionLimit     = 20

	// minimum similarity for a term to qualify as a suggestion.
	suggestionThreshold = 0.3
)

// Suggest returns search term completions for a partial query, drawn from
// the keyword and concept metadata of stored questions. Only terms that
// actually occur in the corpus are ever suggested.
//
// Inputs shorter than two characters return no suggestions. Terms are ranked
// by word similarity to the partial query, descending, with the term itself
// as the tie-break.
func (s *Searcher) Suggest(ctx context.Context, partial string, limit int) ([]string, error) {
	partial = strings.TrimSpace(partial)
	if len([]rune(partial)) < 2 {
		return []string{}, nil
	}

	switch {
	case limit < 1:
		limit = DefaultSuggestionLimit
	case limit > MaxSuggestionLimit:
		limit = MaxSuggestionLimit
	}

	pool, err := s.suggestionPool(ctx)
	if err != nil {
		return nil, err
	}

	type scoredTerm struct {
		term  string
		score float64
	}

	var matches []scoredTerm
	for term := range pool {
		score := wordSimilarity(partial, term)
		if score > suggestionThreshold {
			matches = append(matches, scoredTerm{term: term, score: score})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return matches[i].term < matches[j].term
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	terms := make([]string, 0, len(matches))
	for _, m := range matches {
		terms = append(terms, m.term)
	}
	return terms, nil
}

// suggestionPool collects the distinct candidate terms: tier-3 search
// keywords plus tier-1 concept names and topics. Terms of two runes or
// fewer are too short to be useful completions and are dropped. Dedup is
// case-insensitive, first casing wins.
func (s *Searcher) suggestionPool(ctx context.Context) (map[string]struct{}, error) {
	pool := make(map[string]struct{})
	seen := make(map[string]struct{})

	add := func(term string) {
		term = strings.TrimSpace(term)
		if len([]rune(term)) <= 2 {
			return
		}
		key := strings.ToLower(term)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		pool[term] = struct{}{}
	}

	err := s.repository.IterQuestions(ctx, func(q *core.Question) error {
		for _, kw := range q.SearchKeywords() {
			add(kw)
		}
		for _, concept := range q.ConceptNames() {
			add(concept)
		}
		add(q.Topic())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pool, nil
}
