package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/examtrail/qbank/core"
	"github.com/examtrail/qbank/storage"
)

func testQuestion(externalID string, year, number int) *core.Question {
	return &core.Question{
		ExternalId:    externalID,
		ExamName:      "GATE",
		Subject:       "Aerospace Engineering",
		Year:          year,
		Number:        number,
		Text:          "Calculate lift coefficient for NACA airfoil",
		QuestionType:  core.QuestionTypeMCQ,
		AnswerKey:     "B",
		SearchContent: "Calculate lift coefficient for NACA airfoil | 2008 | GATE",
		SearchVector:  []float32{0.6, 0.8, 0.0},
	}
}

func TestQuestionBasics(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	added, err := repo.AddQuestions(ctx, testQuestion("GATE_AE_2008_Q01", 2008, 1))
	if err != nil {
		t.Fatalf("Failed to add question: %v", err)
	}
	if len(added) != 1 {
		t.Fatalf("Expected 1 question, got %d", len(added))
	}
	if added[0].Id == 0 {
		t.Fatal("Expected non-zero ID")
	}
	if added[0].Id != core.IDFromContent("GATE_AE_2008_Q01") {
		t.Fatal("Expected ID derived from external ID")
	}

	retrieved, err := repo.GetQuestion(ctx, added[0].Id)
	if err != nil {
		t.Fatalf("Failed to get question: %v", err)
	}
	if retrieved.ExternalId != "GATE_AE_2008_Q01" {
		t.Fatalf("Expected GATE_AE_2008_Q01, got %q", retrieved.ExternalId)
	}
	if retrieved.SearchContent == "" {
		t.Fatal("Expected search content to be persisted")
	}
	if len(retrieved.SearchVector) != 3 {
		t.Fatalf("Expected 3-element vector, got %d", len(retrieved.SearchVector))
	}
}

func TestQuestionDuplicateExternalID(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	if _, err := repo.AddQuestions(ctx, testQuestion("GATE_AE_2008_Q01", 2008, 1)); err != nil {
		t.Fatalf("Failed to add question: %v", err)
	}

	_, err = repo.AddQuestions(ctx, testQuestion("GATE_AE_2008_Q01", 2008, 1))
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Fatalf("Expected ErrDuplicateKey, got %v", err)
	}
}

func TestQuestionGetByExternalID(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	if _, err := repo.AddQuestions(ctx, testQuestion("GATE_AE_2008_Q01", 2008, 1)); err != nil {
		t.Fatalf("Failed to add question: %v", err)
	}

	q, err := repo.GetQuestionByExternalID(ctx, "GATE_AE_2008_Q01")
	if err != nil {
		t.Fatalf("Failed to get by external ID: %v", err)
	}
	if q.Year != 2008 {
		t.Fatalf("Expected year 2008, got %d", q.Year)
	}

	_, err = repo.GetQuestionByExternalID(ctx, "GATE_AE_2099_Q99")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestQuestionNotFound(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	_, err = repo.GetQuestion(ctx, core.ID(12345))
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestQuestionUpdateRewritesSearchEntry(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	added, err := repo.AddQuestions(ctx, testQuestion("GATE_AE_2008_Q01", 2008, 1))
	if err != nil {
		t.Fatalf("Failed to add question: %v", err)
	}

	q := added[0]
	q.Text = "Determine structural stress in beam"
	q.SearchContent = "Determine structural stress in beam | 2008 | GATE"
	q.SearchVector = []float32{0.0, 0.6, 0.8}

	if _, err := repo.UpdateQuestion(ctx, q); err != nil {
		t.Fatalf("Failed to update question: %v", err)
	}

	// Search entry must reflect the new content and vector.
	var entry *core.SearchEntry
	err = repo.IterSearchEntries(ctx, func(e *core.SearchEntry) error {
		if e.Id == q.Id {
			entry = e
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to iterate search entries: %v", err)
	}
	if entry == nil {
		t.Fatal("Expected a search entry for the updated question")
	}
	if entry.Content != q.SearchContent {
		t.Fatalf("Search entry content stale: %q", entry.Content)
	}
	if entry.Vector[0] != 0.0 || entry.Vector[2] != 0.8 {
		t.Fatalf("Search entry vector stale: %v", entry.Vector)
	}
}

func TestQuestionUpdateMissing(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	q := testQuestion("GATE_AE_2008_Q01", 2008, 1)
	q.Id = core.IDFromContent(q.ExternalId)
	_, err = repo.UpdateQuestion(ctx, q)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestQuestionDelete(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	added, err := repo.AddQuestions(ctx, testQuestion("GATE_AE_2008_Q01", 2008, 1))
	if err != nil {
		t.Fatalf("Failed to add question: %v", err)
	}

	if err := repo.DeleteQuestions(ctx, added[0].Id); err != nil {
		t.Fatalf("Failed to delete question: %v", err)
	}

	if _, err := repo.GetQuestion(ctx, added[0].Id); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound after delete, got %v", err)
	}

	// External ID is free for reuse after delete.
	if _, err := repo.AddQuestions(ctx, testQuestion("GATE_AE_2008_Q01", 2008, 1)); err != nil {
		t.Fatalf("Failed to re-add after delete: %v", err)
	}

	// Search entries are cleaned up alongside.
	count := 0
	err = repo.IterSearchEntries(ctx, func(e *core.SearchEntry) error {
		count++
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to iterate search entries: %v", err)
	}
	if count != 1 {
		t.Fatalf("Expected 1 search entry, got %d", count)
	}
}

func TestQuestionCountsAndIteration(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	questions := []*core.Question{
		testQuestion("GATE_AE_2008_Q01", 2008, 1),
		testQuestion("GATE_AE_2008_Q02", 2008, 2),
		testQuestion("GATE_AE_2015_Q01", 2015, 1),
	}
	if _, err := repo.AddQuestions(ctx, questions...); err != nil {
		t.Fatalf("Failed to add questions: %v", err)
	}

	count, err := repo.CountQuestions(ctx)
	if err != nil {
		t.Fatalf("Failed to count questions: %v", err)
	}
	if count != 3 {
		t.Fatalf("Expected 3 questions, got %d", count)
	}

	years, err := repo.YearCounts(ctx)
	if err != nil {
		t.Fatalf("Failed to get year counts: %v", err)
	}
	if years[2008] != 2 || years[2015] != 1 {
		t.Fatalf("Unexpected year counts: %v", years)
	}

	seen := 0
	err = repo.IterQuestions(ctx, func(q *core.Question) error {
		seen++
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to iterate questions: %v", err)
	}
	if seen != 3 {
		t.Fatalf("Expected to iterate 3 questions, got %d", seen)
	}
}

func TestQuestionIterCancellation(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()
	if _, err := repo.AddQuestions(ctx, testQuestion("GATE_AE_2008_Q01", 2008, 1)); err != nil {
		t.Fatalf("Failed to add question: %v", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()

	err = repo.IterQuestions(cancelled, func(q *core.Question) error { return nil })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
}
