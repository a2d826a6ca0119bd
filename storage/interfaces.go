package storage

import (
	"context"

	"github.com/examtrail/qbank/core"
)

// QuestionRepository provides operations for managing stored questions.
// Implementations must be thread-safe and support concurrent access: all
// operations except the write methods are read-only, and concurrent creates
// of the same external ID must be serialized by the backend so at most one
// succeeds.
type QuestionRepository interface {
	// AddQuestions adds one or more questions to storage.
	// IDs are derived from each question's ExternalId; a question whose
	// external ID is already present fails the whole batch with
	// ErrDuplicateKey. Sets InsertedAt/UpdatedAt timestamps.
	// The derived search entry is written atomically with the record.
	AddQuestions(ctx context.Context, questions ...*core.Question) ([]*core.Question, error)

	// UpdateQuestion updates an existing question and rewrites its search
	// entry in the same transaction, so the derived fields are never stale.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if the question doesn't exist.
	UpdateQuestion(ctx context.Context, question *core.Question) (*core.Question, error)

	// DeleteQuestions removes questions by their IDs, together with their
	// search entries and external-ID index entries.
	// Returns ErrNotFound if any question doesn't exist.
	DeleteQuestions(ctx context.Context, ids ...core.ID) error

	// GetQuestion retrieves a single question by ID.
	// Returns ErrNotFound if the question doesn't exist.
	GetQuestion(ctx context.Context, id core.ID) (*core.Question, error)

	// GetQuestionByExternalID retrieves a single question by its external
	// string key (e.g. "GATE_AE_2008_Q01").
	// Returns ErrNotFound if no such question exists.
	GetQuestionByExternalID(ctx context.Context, externalID string) (*core.Question, error)

	// GetQuestions retrieves multiple questions by their IDs.
	// Returns only the questions that exist (no error for missing IDs).
	GetQuestions(ctx context.Context, ids ...core.ID) ([]*core.Question, error)

	// IterQuestions calls fn for every stored question. Iteration stops at
	// the first error from fn, which is returned.
	IterQuestions(ctx context.Context, fn func(*core.Question) error) error

	// IterSearchEntries calls fn for every stored search entry. This is the
	// scan the ranker uses; entries are compact and carry the facets,
	// content and vector needed for scoring.
	IterSearchEntries(ctx context.Context, fn func(*core.SearchEntry) error) error

	// CountQuestions returns the total number of stored questions.
	CountQuestions(ctx context.Context) (int, error)

	// YearCounts returns question counts grouped by exam year.
	YearCounts(ctx context.Context) (map[int]int, error)

	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the repository and releases resources.
	Close() error
}
