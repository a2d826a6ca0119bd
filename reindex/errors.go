package reindex

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrRepositoryRequired is returned when creating a reindexer without a
	// question repository.
	ErrRepositoryRequired = errors.New("question repository is required")

	// ErrEmbedderRequired is returned when creating a reindexer without an
	// embedder.
	ErrEmbedderRequired = errors.New("embedder is required")
)
