package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/examtrail/qbank/core"
	"github.com/examtrail/qbank/storage"
)

// QuestionRepository implements storage.QuestionRepository for BadgerDB.
type QuestionRepository struct {
	backend *Backend
}

var _ storage.QuestionRepository = (*QuestionRepository)(nil)

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(backend *Backend) (*QuestionRepository, error) {
	return &QuestionRepository{backend: backend}, nil
}

// Close releases repository resources.
func (r *QuestionRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *QuestionRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddQuestions adds one or more questions to storage.
// The question ID is derived from the external ID, and the external-ID index
// key doubles as the uniqueness constraint: if it already exists, the whole
// batch fails with ErrDuplicateKey.
func (r *QuestionRepository) AddQuestions(ctx context.Context, questions ...*core.Question) ([]*core.Question, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, question := range questions {
			question.Id = core.IDFromContent(question.ExternalId)

			extKey := makeExternalIDKey(question.ExternalId)
			if _, err := tx.Get(extKey); err == nil {
				return storage.ErrDuplicateKey
			} else if err != badger.ErrKeyNotFound {
				return err
			}

			question.InsertedAt = time.Now().UTC()
			question.UpdatedAt = question.InsertedAt

			if err := r.writeQuestion(tx, question); err != nil {
				return err
			}
			if err := tx.Set(extKey, storage.MarshalID(question.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	if err != nil {
		return nil, err
	}
	return questions, nil
}

// UpdateQuestion updates an existing question. The search entry is rewritten
// in the same transaction so the derived fields can never be observed stale.
func (r *QuestionRepository) UpdateQuestion(ctx context.Context, question *core.Question) (*core.Question, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeQuestionKey(question.Id)
		old, err := r.readQuestion(tx, key)
		if err != nil {
			return err
		}
		if old == nil {
			return storage.ErrNotFound
		}

		question.ExternalId = old.ExternalId
		question.InsertedAt = old.InsertedAt
		question.UpdatedAt = time.Now().UTC()

		if err := r.writeQuestion(tx, question); err != nil {
			return err
		}
		return tx.Commit()
	}, true)

	if err != nil {
		return nil, err
	}
	return question, nil
}

// writeQuestion stores the primary record and its search entry.
func (r *QuestionRepository) writeQuestion(tx *badger.Txn, question *core.Question) error {
	value, err := storage.MarshalQuestion(question)
	if err != nil {
		return err
	}
	if err := tx.Set(makeQuestionKey(question.Id), value); err != nil {
		return err
	}

	entry := &core.SearchEntry{
		Id:           question.Id,
		Year:         question.Year,
		Number:       question.Number,
		Subject:      question.Subject,
		QuestionType: question.QuestionType,
		Content:      question.SearchContent,
		Vector:       question.SearchVector,
	}
	return tx.Set(makeSearchEntryKey(question.Id), storage.MarshalSearchEntry(entry))
}

// DeleteQuestions removes questions by their IDs.
func (r *QuestionRepository) DeleteQuestions(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeQuestionKey(id)
			question, err := r.readQuestion(tx, key)
			if err != nil {
				return err
			}
			if question == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(makeExternalIDKey(question.ExternalId)); err != nil {
				return err
			}
			if err := tx.Delete(makeSearchEntryKey(id)); err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetQuestion retrieves a single question by ID.
func (r *QuestionRepository) GetQuestion(ctx context.Context, id core.ID) (*core.Question, error) {
	var result *core.Question
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readQuestion(tx, makeQuestionKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetQuestionByExternalID retrieves a single question by its external string key.
func (r *QuestionRepository) GetQuestionByExternalID(ctx context.Context, externalID string) (*core.Question, error) {
	var result *core.Question
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeExternalIDKey(externalID))
		if err == badger.ErrKeyNotFound {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}

		var id core.ID
		if err := item.Value(func(val []byte) error {
			var err error
			id, err = storage.UnmarshalID(val)
			return err
		}); err != nil {
			return err
		}

		result, err = r.readQuestion(tx, makeQuestionKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetQuestions retrieves multiple questions by their IDs.
func (r *QuestionRepository) GetQuestions(ctx context.Context, ids ...core.ID) ([]*core.Question, error) {
	var result []*core.Question
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			question, err := r.readQuestion(tx, makeQuestionKey(id))
			if err != nil {
				return err
			}
			if question != nil {
				result = append(result, question)
			}
		}
		return nil
	}, false)
	return result, err
}

// IterQuestions calls fn for every stored question.
func (r *QuestionRepository) IterQuestions(ctx context.Context, fn func(*core.Question) error) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(questionPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var question *core.Question
			err := iter.Item().Value(func(val []byte) error {
				var err error
				question, err = storage.UnmarshalQuestion(val)
				return err
			})
			if err != nil {
				return err
			}
			if err := fn(question); err != nil {
				return err
			}
		}
		return nil
	}, false)
}

// IterSearchEntries calls fn for every stored search entry.
func (r *QuestionRepository) IterSearchEntries(ctx context.Context, fn func(*core.SearchEntry) error) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(searchEntryPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var entry *core.SearchEntry
			err := iter.Item().Value(func(val []byte) error {
				var err error
				entry, err = storage.UnmarshalSearchEntry(val)
				return err
			})
			if err != nil {
				return err
			}
			if err := fn(entry); err != nil {
				return err
			}
		}
		return nil
	}, false)
}

// CountQuestions returns the total number of stored questions.
func (r *QuestionRepository) CountQuestions(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(questionPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// YearCounts returns question counts grouped by exam year.
func (r *QuestionRepository) YearCounts(ctx context.Context) (map[int]int, error) {
	counts := make(map[int]int)
	err := r.IterSearchEntries(ctx, func(entry *core.SearchEntry) error {
		counts[entry.Year]++
		return nil
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// readQuestion reads and decodes a question record, returning nil if absent.
func (r *QuestionRepository) readQuestion(tx *badger.Txn, key []byte) (*core.Question, error) {
	item, err := tx.Get(key)
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var question *core.Question
	err = item.Value(func(val []byte) error {
		var err error
		question, err = storage.UnmarshalQuestion(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return question, nil
}
