package ingestion

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/examtrail/qbank/ai"
	"github.com/examtrail/qbank/core"
	"github.com/examtrail/qbank/search"
	"github.com/examtrail/qbank/storage"
)

// Pipeline orchestrates bulk question import: validation, duplicate
// detection, search field composition and storage. Embedding generation is
// the slow part, so composition runs on a worker pool; writes happen on the
// caller's goroutine afterwards.
type Pipeline struct {
	repository storage.QuestionRepository
	composer   *search.Composer
	pool       *ants.Pool
	logger     *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent composition.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new import pipeline.
func NewPipeline(repository storage.QuestionRepository, provider ai.Provider, opts ...Option) (*Pipeline, error) {
	if repository == nil {
		return nil, ErrQuestionRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	composer, err := search.NewComposer(provider.Embedder())
	if err != nil {
		pool.Release()
		return nil, err
	}

	p := &Pipeline{
		repository: repository,
		composer:   composer,
		pool:       pool,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Failure records one question that could not be imported.
type Failure struct {
	ExternalId string
	Err        error
}

// Report summarizes an import run. Every input question is accounted for in
// exactly one of the three buckets.
type Report struct {
	Imported int
	Skipped  int
	Failed   int
	Failures []Failure
}

// importOutcome carries a prepared question, or the reason it was not
// prepared, back from the worker pool.
type importOutcome struct {
	question *core.Question
	skipped  bool
	err      error
}

// Import validates, composes and stores the given questions. Questions whose
// external ID already exists are skipped, invalid questions and embedding
// failures are reported per item; neither aborts the rest of the batch.
// Context cancellation stops the run and is returned as the error, with the
// report covering whatever completed before the stop.
func (p *Pipeline) Import(ctx context.Context, questions []*core.Question) (*Report, error) {
	report := &Report{}
	if len(questions) == 0 {
		return report, nil
	}

	outcomes := make([]importOutcome, len(questions))

	var wg sync.WaitGroup
	for i, question := range questions {
		i, question := i, question
		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()
			outcomes[i] = p.prepare(ctx, question)
		})
		if err != nil {
			wg.Done()
			outcomes[i] = importOutcome{question: question, err: err}
		}
	}
	wg.Wait()

	for i, outcome := range outcomes {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		externalID := questions[i].ExternalId
		switch {
		case outcome.skipped:
			report.Skipped++
		case outcome.err != nil:
			p.logger.Warn("question failed to import", "questionID", externalID, "err", outcome.err)
			report.Failed++
			report.Failures = append(report.Failures, Failure{ExternalId: externalID, Err: outcome.err})
		default:
			if _, err := p.repository.AddQuestions(ctx, outcome.question); err != nil {
				if errors.Is(err, storage.ErrDuplicateKey) {
					// Duplicate within the batch itself.
					report.Skipped++
					continue
				}
				p.logger.Warn("question failed to store", "questionID", externalID, "err", err)
				report.Failed++
				report.Failures = append(report.Failures, Failure{ExternalId: externalID, Err: err})
				continue
			}
			report.Imported++
		}
	}

	p.logger.Info("import finished",
		"imported", report.Imported, "skipped", report.Skipped, "failed", report.Failed)
	return report, nil
}

// prepare runs the per-question work that is safe to parallelize:
// validation, the duplicate check and search field composition.
func (p *Pipeline) prepare(ctx context.Context, question *core.Question) importOutcome {
	if err := ctx.Err(); err != nil {
		return importOutcome{question: question, err: err}
	}

	if err := core.ValidateQuestion(question); err != nil {
		return importOutcome{question: question, err: err}
	}

	_, err := p.repository.GetQuestionByExternalID(ctx, question.ExternalId)
	if err == nil {
		return importOutcome{question: question, skipped: true}
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return importOutcome{question: question, err: err}
	}

	if err := p.composer.Compose(ctx, question); err != nil {
		return importOutcome{question: question, err: err}
	}

	return importOutcome{question: question}
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
