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


// Package reindex rebuilds the derived search fields of every stored
// question: the content blob is recomposed from the current question fields
// and re-embedded, and the record is rewritten together with its search
// entry. Run it after changing the embedding model or the content
// composition rules.
package reindex

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/examtrail/qbank/ai"
	"github.com/examtrail/qbank/core"
	"github.com/examtrail/qbank/search"
	"github.com/examtrail/qbank/storage"
)

// Config holds configuration for the reindexing operation.
type Config struct {
	// BatchSize is the number of questions collected per batch
	BatchSize int

	// ReportInterval is how often to report progress (number of questions)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for embedding calls
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Reindexer orchestrates the recomposition of search fields for all
// questions in a database.
type Reindexer struct {
	repo     storage.QuestionRepository
	composer *search.Composer
	config   *Config
	progress io.Writer
}

// NewReindexer creates a new reindexer.
// progress: where to write progress output (typically os.Stderr)
func NewReindexer(repo storage.QuestionRepository, embedder ai.Embedder, config *Config, progress io.Writer) (*Reindexer, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if config == nil {
		config = DefaultConfig()
	}

	composer, err := search.NewComposer(embedder)
	if err != nil {
		return nil, err
	}

	return &Reindexer{
		repo:     repo,
		composer: composer,
		config:   config,
		progress: progress,
	}, nil
}

// Run executes the reindexing operation over every stored question.
// Progress is reported to the configured writer.
func (r *Reindexer) Run(ctx context.Context) error {
	total, err := r.repo.CountQuestions(ctx)
	if err != nil {
		return fmt.Errorf("failed to count questions: %w", err)
	}

	if total == 0 {
		fmt.Fprintf(r.progress, "No questions found in database (0 questions)\n")
		return nil
	}

	fmt.Fprintf(r.progress, "Starting reindexing of %d questions (batch size: %d)\n",
		total, r.config.BatchSize)

	tracker := NewProgressTracker(r.progress, total, r.config.ReportInterval)
	tracker.Start()

	processed := 0
	batch := make([]*core.Question, 0, r.config.BatchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := r.processBatch(ctx, batch); err != nil {
			return fmt.Errorf("failed to process batch: %w", err)
		}
		processed += len(batch)
		tracker.Update(processed)
		batch = batch[:0]
		return nil
	}

	err = r.repo.IterQuestions(ctx, func(q *core.Question) error {
		batch = append(batch, q)
		if len(batch) >= r.config.BatchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return err
	}
	if err := flush(); err != nil {
		return err
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Reindexing complete. Processed %d questions in %v (%.1f questions/sec)\n",
		total, elapsed.Round(time.Second), float64(total)/elapsed.Seconds())

	return nil
}

// processBatch recomposes the search fields of each question in the batch
// and writes the updated records. The embedding call is retried with
// backoff; the storage write is not, since badger failures are not
// transient in the same way.
func (r *Reindexer) processBatch(ctx context.Context, batch []*core.Question) error {
	for _, q := range batch {
		err := RetryWithBackoff(ctx, func() error {
			return r.composer.Compose(ctx, q)
		}, r.config.MaxRetries, r.config.RetryDelay)
		if err != nil {
			return fmt.Errorf("failed to compose question %s: %w", q.ExternalId, err)
		}

		if _, err := r.repo.UpdateQuestion(ctx, q); err != nil {
			return fmt.Errorf("failed to update question %s: %w", q.ExternalId, err)
		}
	}
	return nil
}
