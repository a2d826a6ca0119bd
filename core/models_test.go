package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "same content produces same ID", content: "GATE_AE_2008_Q01"},
		{name: "empty string", content: ""},
		{name: "long content", content: "a much longer identifier that should still hash consistently"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("GATE_AE_2008_Q01")
	id2 := IDFromContent("GATE_AE_2008_Q02")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestDifficultyLevelFromScore(t *testing.T) {
	score := func(v float64) *float64 { return &v }

	tests := []struct {
		name  string
		score *float64
		want  DifficultyLevel
	}{
		{name: "absent score defaults to medium", score: nil, want: DifficultyMedium},
		{name: "low score is easy", score: score(2), want: DifficultyEasy},
		{name: "boundary four is easy", score: score(4), want: DifficultyEasy},
		{name: "mid score is medium", score: score(5.5), want: DifficultyMedium},
		{name: "boundary eight is hard", score: score(8), want: DifficultyHard},
		{name: "high score is hard", score: score(9.7), want: DifficultyHard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DifficultyLevelFromScore(tt.score); got != tt.want {
				t.Errorf("DifficultyLevelFromScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSearchFiltersEmpty(t *testing.T) {
	var nilFilters *SearchFilters
	if !nilFilters.Empty() {
		t.Error("nil filters should be empty")
	}
	if !(&SearchFilters{}).Empty() {
		t.Error("zero filters should be empty")
	}
	if (&SearchFilters{Year: 2008}).Empty() {
		t.Error("year filter should not be empty")
	}
	if (&SearchFilters{Subject: "Aero"}).Empty() {
		t.Error("subject filter should not be empty")
	}
}

func TestQuestionExtraction_NilTiers(t *testing.T) {
	q := &Question{Text: "bare question"}

	if got := q.Topic(); got != "" {
		t.Errorf("Topic() = %q, want empty", got)
	}
	if got := q.ConceptNames(); got != nil {
		t.Errorf("ConceptNames() = %v, want nil", got)
	}
	if got := q.SearchKeywords(); got != nil {
		t.Errorf("SearchKeywords() = %v, want nil", got)
	}
	if got := q.DifficultyScore(); got != nil {
		t.Errorf("DifficultyScore() = %v, want nil", got)
	}
	if got := q.ExplanationBlock(); got != nil {
		t.Errorf("ExplanationBlock() = %v, want nil", got)
	}
}

func TestQuestionExtraction_PartialTiers(t *testing.T) {
	q := &Question{
		Tier1: &Tier1CoreResearch{
			HierarchicalTags: &HierarchicalTags{
				Topic: &TagNode{Name: "Aerodynamics"},
				Concepts: []ConceptTag{
					{Name: "Lift Coefficient"},
					{Name: ""},
					{Name: "Airfoil Theory"},
				},
			},
		},
		Tier3: &Tier3EnhancedLearning{
			SearchKeywords: []string{"lift", "", "NACA"},
		},
	}

	if got := q.Topic(); got != "Aerodynamics" {
		t.Errorf("Topic() = %q, want Aerodynamics", got)
	}

	concepts := q.ConceptNames()
	if len(concepts) != 2 || concepts[0] != "Lift Coefficient" || concepts[1] != "Airfoil Theory" {
		t.Errorf("ConceptNames() = %v, want [Lift Coefficient, Airfoil Theory]", concepts)
	}

	keywords := q.SearchKeywords()
	if len(keywords) != 2 || keywords[0] != "lift" || keywords[1] != "NACA" {
		t.Errorf("SearchKeywords() = %v, want [lift NACA]", keywords)
	}
}
