package qbank

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examtrail/qbank/ai/mock"
	"github.com/examtrail/qbank/core"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()

	db, err := NewDatabase(filepath.Join(t.TempDir(), "qbank"), WithProvider(mock.NewProvider()))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

func TestDatabaseLifecycle(t *testing.T) {
	db := newTestDatabase(t)

	require.NotNil(t, db.QuestionRepository())

	count, err := db.QuestionRepository().CountQuestions(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestDatabaseImportAndSearch(t *testing.T) {
	db := newTestDatabase(t)

	pipeline, err := db.NewImportPipeline()
	require.NoError(t, err)
	defer pipeline.Release()

	report, err := pipeline.Import(context.Background(), []*core.Question{
		{
			ExternalId:   "GATE_AE_2008_Q01",
			ExamName:     "GATE Aerospace",
			Subject:      "Aerospace Engineering",
			Year:         2008,
			Number:       1,
			Text:         "An aircraft generates lift primarily due to",
			QuestionType: core.QuestionTypeMCQ,
		},
	})
	require.NoError(t, err)
	require.Equal(t, 1, report.Imported)

	searcher, err := db.NewSearcher()
	require.NoError(t, err)

	page, err := searcher.Search(context.Background(), "lift", nil, 1, 10)
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
	assert.Equal(t, "GATE_AE_2008_Q01", page.Results[0].Summary.ExternalId)
}

func TestDatabasePersistsAcrossReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "qbank")

	db, err := NewDatabase(dir, WithProvider(mock.NewProvider()))
	require.NoError(t, err)

	pipeline, err := db.NewImportPipeline()
	require.NoError(t, err)

	_, err = pipeline.Import(context.Background(), []*core.Question{
		{
			ExternalId:   "GATE_AE_2015_Q02",
			ExamName:     "GATE Aerospace",
			Subject:      "Aerospace Engineering",
			Year:         2015,
			Number:       2,
			Text:         "A cantilever beam carries a point load",
			QuestionType: core.QuestionTypeNAT,
		},
	})
	require.NoError(t, err)
	pipeline.Release()
	require.NoError(t, db.Close())

	reopened, err := NewDatabase(dir, WithProvider(mock.NewProvider()))
	require.NoError(t, err)
	defer reopened.Close()

	stored, err := reopened.QuestionRepository().GetQuestionByExternalID(context.Background(), "GATE_AE_2015_Q02")
	require.NoError(t, err)
	assert.Equal(t, 2015, stored.Year)
	assert.NotEmpty(t, stored.SearchContent)
}
