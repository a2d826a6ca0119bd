package core

// Accessors over the optional tier hierarchy. Each walks its path with
// nil-checks at every level and returns a zero value when any link is absent.

// Topic returns the tier-1 topic name, if tagged.
func (q *Question) Topic() string {
	if q.Tier1 == nil || q.Tier1.HierarchicalTags == nil || q.Tier1.HierarchicalTags.Topic == nil {
		return ""
	}
	return q.Tier1.HierarchicalTags.Topic.Name
}

// SubjectTag returns the tier-1 subject name, if tagged. This is the
// enrichment pipeline's subject classification, distinct from the Subject
// facet column.
func (q *Question) SubjectTag() string {
	if q.Tier1 == nil || q.Tier1.HierarchicalTags == nil || q.Tier1.HierarchicalTags.Subject == nil {
		return ""
	}
	return q.Tier1.HierarchicalTags.Subject.Name
}

// ConceptNames returns the tier-1 concept names in list order, skipping
// entries with empty names.
func (q *Question) ConceptNames() []string {
	if q.Tier1 == nil || q.Tier1.HierarchicalTags == nil {
		return nil
	}
	var names []string
	for _, c := range q.Tier1.HierarchicalTags.Concepts {
		if c.Name != "" {
			names = append(names, c.Name)
		}
	}
	return names
}

// ExplanationBlock returns the tier-1 explanation, if present.
func (q *Question) ExplanationBlock() *Explanation {
	if q.Tier1 == nil {
		return nil
	}
	return q.Tier1.Explanation
}

// SearchKeywords returns the tier-3 search keywords, skipping empty entries.
func (q *Question) SearchKeywords() []string {
	if q.Tier3 == nil {
		return nil
	}
	var keywords []string
	for _, k := range q.Tier3.SearchKeywords {
		if k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}

// DifficultyScore returns the tier-0 difficulty score, if classified.
func (q *Question) DifficultyScore() *float64 {
	if q.Tier0 == nil {
		return nil
	}
	return q.Tier0.DifficultyScore
}
