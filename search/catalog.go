package search

import (
	"context"
	"sort"

	"github.com/examtrail/qbank/core"
)

// FilterOptions enumerates the distinct facet values present in the corpus,
// for populating filter UIs. Years are sorted newest first, subjects and
// question types alphabetically. Topics and Concepts are returned empty,
// matching the shape documented on core.FilterOptions.
func (s *Searcher) FilterOptions(ctx context.Context) (*core.FilterOptions, error) {
	yearSet := make(map[int]struct{})
	subjectSet := make(map[string]struct{})
	typeSet := make(map[string]struct{})

	err := s.repository.IterSearchEntries(ctx, func(entry *core.SearchEntry) error {
		if entry.Year != 0 {
			yearSet[entry.Year] = struct{}{}
		}
		if entry.Subject != "" {
			subjectSet[entry.Subject] = struct{}{}
		}
		if entry.QuestionType != "" {
			typeSet[entry.QuestionType] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	years := make([]int, 0, len(yearSet))
	for year := range yearSet {
		years = append(years, year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	subjects := sortedKeys(subjectSet)
	types := sortedKeys(typeSet)

	return &core.FilterOptions{
		Years:         years,
		Subjects:      subjects,
		QuestionTypes: types,
		Topics:        []string{},
		Concepts:      []string{},
	}, nil
}

// SyllabusTree maps each tier-1 subject tag to its distinct tier-1 topics,
// both sorted alphabetically. The grouping uses the enrichment pipeline's
// subject classification, not the Subject facet column; questions missing
// either tag contribute nothing.
func (s *Searcher) SyllabusTree(ctx context.Context) (map[string][]string, error) {
	tree := make(map[string]map[string]struct{})

	err := s.repository.IterQuestions(ctx, func(q *core.Question) error {
		subject := q.SubjectTag()
		topic := q.Topic()
		if subject == "" || topic == "" {
			return nil
		}
		topics, ok := tree[subject]
		if !ok {
			topics = make(map[string]struct{})
			tree[subject] = topics
		}
		topics[topic] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := make(map[string][]string, len(tree))
	for subject, topics := range tree {
		result[subject] = sortedKeys(topics)
	}
	return result, nil
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
