// Copyright 2025 Examtrail
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package qbank

import (
	"io"
	"log/slog"

	"github.com/examtrail/qbank/ai"
	"github.com/examtrail/qbank/ai/openai"
	"github.com/examtrail/qbank/ingestion"
	"github.com/examtrail/qbank/reindex"
	"github.com/examtrail/qbank/search"
	"github.com/examtrail/qbank/storage"
	"github.com/examtrail/qbank/storage/badger"
)

// Database bundles the storage backend, the question repository and the AI
// provider behind a single handle. It is the entry point for embedding the
// question bank in a host application.
type Database struct {
	backend      *badger.Backend
	questionRepo storage.QuestionRepository
	provider     ai.Provider
	logger       *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig *ai.Config
	provider ai.Provider
}

// WithAIConfig sets the AI provider configuration.
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		o.aiConfig = config
	}
}

// WithProvider supplies a pre-built AI provider instead of constructing the
// default OpenAI-compatible one. Useful for tests and offline tooling.
func WithProvider(provider ai.Provider) DatabaseOption {
	return func(o *databaseOptions) {
		o.provider = provider
	}
}

// NewDatabase opens (or creates) a question database at filePath.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	questionRepo, err := badger.NewQuestionRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			questionRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Database{
		backend:      backend,
		questionRepo: questionRepo,
		provider:     provider,
		logger:       slog.Default(),
	}, nil
}

// Close releases the AI provider, the repository and the backend.
func (db *Database) Close() error {
	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing AI provider", "err", err)
	}

	if err := db.questionRepo.Close(); err != nil {
		db.logger.Error("error closing question repository", "err", err)
		return err
	}

	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// QuestionRepository exposes the underlying question repository.
func (db *Database) QuestionRepository() storage.QuestionRepository {
	return db.questionRepo
}

// NewSearcher creates a searcher over this database.
func (db *Database) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(db.questionRepo, db.provider, opts...)
}

// NewImportPipeline creates a bulk import pipeline over this database.
func (db *Database) NewImportPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(db.questionRepo, db.provider, opts...)
}

// NewReindexer creates a reindexer over this database.
// progress: where to write progress output (typically os.Stderr)
func (db *Database) NewReindexer(config *reindex.Config, progress io.Writer) (*reindex.Reindexer, error) {
	return reindex.NewReindexer(db.questionRepo, db.provider.Embedder(), config, progress)
}
