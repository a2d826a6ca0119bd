package ingestion

import "errors"

var (
	// ErrQuestionRepositoryRequired is returned when creating a pipeline
	// without a question repository.
	ErrQuestionRepositoryRequired = errors.New("question repository is required")

	// ErrAIProviderRequired is returned when creating a pipeline without an
	// AI provider.
	ErrAIProviderRequired = errors.New("AI provider is required")
)
