package search

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/examtrail/qbank/ai"
	"github.com/examtrail/qbank/core"
	"github.com/examtrail/qbank/storage"
)

// Relevance weights for score fusion. These are fixed constants of the
// design, not tunables: relevance = 0.7*semantic + 0.3*lexical, with both
// sub-scores in [0,1] for unit-norm vectors, so relevance is in [0,1].
const (
	semanticWeight = 0.7
	lexicalWeight  = 0.3
)

// Pagination bounds.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// truncated question text length in search results, in runes.
const summaryTextLimit = 1000

// maximum concepts carried in a result summary.
const summaryConceptLimit = 5

// Searcher provides hybrid semantic and lexical search over stored questions.
type Searcher struct {
	repository storage.QuestionRepository
	embedder   ai.Embedder
	logger     *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(repository storage.QuestionRepository, provider ai.Provider, opts ...Option) (*Searcher, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
	}
	if provider == nil {
		return nil, ErrProviderRequired
	}

	s := &Searcher{
		repository: repository,
		embedder:   provider.Embedder(),
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// candidate pairs a search entry with its fused relevance score.
type candidate struct {
	entry *core.SearchEntry
	score float64
}

// Search ranks stored questions against a free-text query, applies the
// structured filters and paginates.
//
// With an empty query no ranking happens: the filtered set is returned in
// browse order (year descending, question number ascending). With a
// non-empty query, candidates must pass the containment gate before being
// scored, and results are ordered by relevance descending with the question
// ID as a deterministic tie-break so pagination is stable.
//
// The total in the returned page counts the full filtered set before
// pagination. An embedding failure fails the whole call; a degraded query
// vector would silently corrupt the ranking, so there is no fallback.
func (s *Searcher) Search(ctx context.Context, query string, filters *core.SearchFilters, page, pageSize int) (*core.SearchPage, error) {
	query = strings.TrimSpace(query)
	if page < 1 {
		page = 1
	}
	switch {
	case pageSize < 1:
		pageSize = DefaultPageSize
	case pageSize > MaxPageSize:
		pageSize = MaxPageSize
	}

	var candidates []candidate
	ranked := query != ""

	if ranked {
		queryVector, err := s.embedder.EmbedText(ctx, query)
		if err != nil {
			s.logger.Error("error generating embedding for query", "query", query, "err", err)
			return nil, fmt.Errorf("embed query: %w", err)
		}

		err = s.repository.IterSearchEntries(ctx, func(entry *core.SearchEntry) error {
			if !passesContainmentGate(entry, query) {
				return nil
			}
			if !matchesFilters(entry, filters) {
				return nil
			}

			// Stored vectors are unit-norm, so the dot product equals
			// 1 - cosine distance.
			semantic := dotProduct(queryVector, entry.Vector)
			lexical := trigramSimilarity(entry.Content, query)
			candidates = append(candidates, candidate{
				entry: entry,
				score: semanticWeight*semantic + lexicalWeight*lexical,
			})
			return nil
		})
		if err != nil {
			return nil, err
		}

		sort.Slice(candidates, func(i, j int) bool {
			if candidates[i].score != candidates[j].score {
				return candidates[i].score > candidates[j].score
			}
			return candidates[i].entry.Id < candidates[j].entry.Id
		})
	} else {
		err := s.repository.IterSearchEntries(ctx, func(entry *core.SearchEntry) error {
			if !matchesFilters(entry, filters) {
				return nil
			}
			candidates = append(candidates, candidate{entry: entry})
			return nil
		})
		if err != nil {
			return nil, err
		}

		sort.Slice(candidates, func(i, j int) bool {
			a, b := candidates[i].entry, candidates[j].entry
			if a.Year != b.Year {
				return a.Year > b.Year
			}
			if a.Number != b.Number {
				return a.Number < b.Number
			}
			return a.Id < b.Id
		})
	}

	total := len(candidates)

	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	pageCandidates := candidates[start:end]

	results, err := s.buildResults(ctx, pageCandidates, ranked)
	if err != nil {
		return nil, err
	}

	return &core.SearchPage{
		Query:    query,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		Results:  results,
	}, nil
}

// passesContainmentGate reports whether a candidate is eligible for ranking:
// the query must literally appear in the search content or in the year,
// case-insensitively. Semantically close but textually unrelated questions
// are excluded on purpose.
func passesContainmentGate(entry *core.SearchEntry, query string) bool {
	if containsFold(entry.Content, query) {
		return true
	}
	return containsFold(strconv.Itoa(entry.Year), query)
}

// matchesFilters applies the structured filters as a conjunction.
func matchesFilters(entry *core.SearchEntry, filters *core.SearchFilters) bool {
	if filters.Empty() {
		return true
	}
	if filters.Year != 0 && entry.Year != filters.Year {
		return false
	}
	if len(filters.Years) > 0 {
		found := false
		for _, year := range filters.Years {
			if entry.Year == year {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filters.Subject != "" && !containsFold(entry.Subject, filters.Subject) {
		return false
	}
	if filters.QuestionType != "" && entry.QuestionType != filters.QuestionType {
		return false
	}
	return true
}

// buildResults fetches the full records for the page and projects them to
// summaries, preserving candidate order.
func (s *Searcher) buildResults(ctx context.Context, pageCandidates []candidate, ranked bool) ([]*core.SearchResult, error) {
	if len(pageCandidates) == 0 {
		return []*core.SearchResult{}, nil
	}

	ids := make([]core.ID, 0, len(pageCandidates))
	for _, c := range pageCandidates {
		ids = append(ids, c.entry.Id)
	}

	questions, err := s.repository.GetQuestions(ctx, ids...)
	if err != nil {
		s.logger.Error("error retrieving questions", "count", len(ids), "err", err)
		return nil, err
	}

	byID := make(map[core.ID]*core.Question, len(questions))
	for _, q := range questions {
		byID[q.Id] = q
	}

	results := make([]*core.SearchResult, 0, len(pageCandidates))
	for _, c := range pageCandidates {
		question, ok := byID[c.entry.Id]
		if !ok {
			// Entry without a record should not happen; skip rather than fail the page.
			s.logger.Warn("search entry without question record", "id", c.entry.Id)
			continue
		}
		results = append(results, &core.SearchResult{
			Summary: buildSummary(question),
			Score:   c.score,
			Ranked:  ranked,
		})
	}
	return results, nil
}

// buildSummary projects a question to its lightweight search representation.
func buildSummary(q *core.Question) *core.QuestionSummary {
	text := q.Text
	if runes := []rune(text); len(runes) > summaryTextLimit {
		text = string(runes[:summaryTextLimit])
	}

	concepts := q.ConceptNames()
	if len(concepts) > summaryConceptLimit {
		concepts = concepts[:summaryConceptLimit]
	}

	score := q.DifficultyScore()

	return &core.QuestionSummary{
		Id:              q.Id,
		ExternalId:      q.ExternalId,
		Year:            q.Year,
		Number:          q.Number,
		Subject:         q.Subject,
		Text:            text,
		TextLatex:       q.TextLatex,
		QuestionType:    q.QuestionType,
		Marks:           q.Marks,
		DifficultyScore: score,
		DifficultyLevel: core.DifficultyLevelFromScore(score),
		Topic:           q.Topic(),
		Concepts:        concepts,
		Options:         q.Options,
		AnswerKey:       q.AnswerKey,
		Explanation:     q.ExplanationBlock(),
	}
}
