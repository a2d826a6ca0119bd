package search

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/examtrail/qbank/ai/mock"
	"github.com/examtrail/qbank/core"
)

func fullTestQuestion() *core.Question {
	nature := "Conceptual"
	return &core.Question{
		ExternalId:   "GATE_AE_2008_Q01",
		ExamName:     "GATE Aerospace",
		Subject:      "Aerospace Engineering",
		Year:         2008,
		Number:       1,
		Text:         "An aircraft generates lift primarily due to",
		QuestionType: core.QuestionTypeMCQ,
		Tier1: &core.Tier1CoreResearch{
			HierarchicalTags: &core.HierarchicalTags{
				Topic: &core.TagNode{Name: "Aerodynamics"},
				Concepts: []core.ConceptTag{
					{Name: "Lift Generation"},
					{Name: "Bernoulli Principle"},
				},
			},
			Explanation: &core.Explanation{
				QuestionNature: nature,
				StepByStep:     []string{"Consider the pressure distribution", "Apply Bernoulli"},
			},
		},
		Tier3: &core.Tier3EnhancedLearning{
			SearchKeywords: []string{"lift", "airfoil"},
		},
	}
}

func TestBuildSearchContentOrder(t *testing.T) {
	content := BuildSearchContent(fullTestQuestion())

	parts := strings.Split(content, contentDelimiter)
	want := []string{
		"An aircraft generates lift primarily due to",
		"2008",
		"GATE Aerospace",
		"Aerodynamics",
		"Lift Generation",
		"Bernoulli Principle",
		"Conceptual",
		"Consider the pressure distribution",
		"Apply Bernoulli",
		"lift",
		"airfoil",
	}
	if len(parts) != len(want) {
		t.Fatalf("expected %d parts, got %d: %q", len(want), len(parts), parts)
	}
	for i := range want {
		if parts[i] != want[i] {
			t.Errorf("part %d = %q, want %q", i, parts[i], want[i])
		}
	}
}

func TestBuildSearchContentDropsEmptyParts(t *testing.T) {
	q := &core.Question{Text: "Bare question"}
	content := BuildSearchContent(q)
	if content != "Bare question" {
		t.Errorf("expected bare text, got %q", content)
	}
	if strings.Contains(content, contentDelimiter) {
		t.Error("no delimiter expected when only the text is present")
	}
}

func TestBuildSearchContentSkipsZeroYear(t *testing.T) {
	q := &core.Question{Text: "Undated question", ExamName: "GATE"}
	content := BuildSearchContent(q)
	if content != "Undated question | GATE" {
		t.Errorf("unexpected content %q", content)
	}
}

func TestBuildSearchContentDeterministic(t *testing.T) {
	q := fullTestQuestion()
	first := BuildSearchContent(q)
	second := BuildSearchContent(q)
	if first != second {
		t.Error("content should be deterministic for identical input")
	}
}

func TestComposerRequiresEmbedder(t *testing.T) {
	if _, err := NewComposer(nil); !errors.Is(err, ErrEmbedderRequired) {
		t.Errorf("expected ErrEmbedderRequired, got %v", err)
	}
}

func TestComposeSetsContentAndVectorTogether(t *testing.T) {
	embedder := mock.NewEmbedder()
	composer, err := NewComposer(embedder)
	if err != nil {
		t.Fatalf("failed to create composer: %v", err)
	}

	q := fullTestQuestion()
	if err := composer.Compose(context.Background(), q); err != nil {
		t.Fatalf("compose failed: %v", err)
	}

	if q.SearchContent == "" {
		t.Error("expected search content to be set")
	}
	if len(q.SearchVector) == 0 {
		t.Error("expected search vector to be set")
	}
	if q.SearchContent != BuildSearchContent(q) {
		t.Error("stored content should match the built content")
	}
}

func TestComposeEmbedFailureLeavesQuestionUntouched(t *testing.T) {
	embedder := mock.NewEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("embedding service unavailable")
	}
	composer, err := NewComposer(embedder)
	if err != nil {
		t.Fatalf("failed to create composer: %v", err)
	}

	q := fullTestQuestion()
	if err := composer.Compose(context.Background(), q); err == nil {
		t.Fatal("expected compose to fail")
	}

	if q.SearchContent != "" || q.SearchVector != nil {
		t.Error("failed compose must not leave partial search fields")
	}
}
