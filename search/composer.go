package search

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/examtrail/qbank/ai"
	"github.com/examtrail/qbank/core"
)

// contentDelimiter joins the parts of the searchable content blob.
const contentDelimiter = " | "

// BuildSearchContent builds the canonical searchable text blob for a
// question: question text, year, exam name, then the tier-1 topic, concept
// names, question nature and solution steps, then the tier-3 search
// keywords. Empty parts are dropped, the rest keep their relative order.
// The result is deterministic for identical input.
func BuildSearchContent(q *core.Question) string {
	parts := []string{q.Text}
	if q.Year != 0 {
		parts = append(parts, strconv.Itoa(q.Year))
	}
	parts = append(parts, q.ExamName)

	parts = append(parts, q.Topic())
	parts = append(parts, q.ConceptNames()...)

	if expl := q.ExplanationBlock(); expl != nil {
		parts = append(parts, expl.QuestionNature)
		for _, step := range expl.StepByStep {
			parts = append(parts, step)
		}
	}

	parts = append(parts, q.SearchKeywords()...)

	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, contentDelimiter)
}

// Composer derives the search fields of a question: the content blob and its
// embedding. Both fields are always set together so they cannot drift apart.
type Composer struct {
	embedder ai.Embedder
	logger   *slog.Logger
}

// NewComposer creates a new content composer using the given embedder.
func NewComposer(embedder ai.Embedder) (*Composer, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	return &Composer{
		embedder: embedder,
		logger:   slog.Default().With("component", "composer"),
	}, nil
}

// Compose sets q.SearchContent and q.SearchVector from the question's
// current fields. On embedding failure neither field is modified, so a
// failed compose never leaves the pair half-updated.
func (c *Composer) Compose(ctx context.Context, q *core.Question) error {
	content := BuildSearchContent(q)

	vector, err := c.embedder.EmbedText(ctx, content)
	if err != nil {
		c.logger.Error("error generating embedding for question", "questionID", q.ExternalId, "err", err)
		return err
	}

	q.SearchContent = content
	q.SearchVector = vector
	return nil
}
