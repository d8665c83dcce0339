package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/eduardoibarr/news-article-agent/core"
	"github.com/eduardoibarr/news-article-agent/storage"
)

// ArticleRepository implements storage.ArticleRepository for BadgerDB.
type ArticleRepository struct {
	backend *Backend
}

var _ storage.ArticleRepository = (*ArticleRepository)(nil)

// NewArticleRepository creates a new ArticleRepository.
func NewArticleRepository(backend *Backend) *ArticleRepository {
	return &ArticleRepository{backend: backend}
}

// Close releases repository resources. The backend itself is closed by its owner.
func (r *ArticleRepository) Close() error {
	return nil
}

// FindSimilar delegates to the backend.
func (r *ArticleRepository) FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.SearchResult, error) {
	return r.backend.FindSimilar(ctx, vector, minSimilarity, limit)
}

// AddArticles adds one or more article records to storage.
// IDs are generated from URL and insertion time when unset; CreatedAt is set
// if zero. The transaction commits before the call returns, so an
// acknowledged add is durable.
func (r *ArticleRepository) AddArticles(ctx context.Context, records ...*core.ArticleRecord) ([]*core.ArticleRecord, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			if record.CreatedAt.IsZero() {
				record.CreatedAt = time.Now().UTC()
			}
			if record.Id == 0 {
				record.Id = core.NewArticleID(record.URL, record.CreatedAt)
			}

			// Store primary record
			key := makeArticleKey(record.Id)
			value := storage.MarshalArticleRecord(record)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update insertion-order index
			dateKey := makeArticleDateKey(record.CreatedAt, record.Id)
			if err := tx.Set(dateKey, storage.MarshalID(record.Id)); err != nil {
				return err
			}

			// Update URL index
			urlKey := makeArticleURLKey(record.URL, record.Id)
			if err := tx.Set(urlKey, storage.MarshalID(record.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return records, err
}

// GetArticle retrieves a single article record by ID.
func (r *ArticleRepository) GetArticle(ctx context.Context, id core.ID) (*core.ArticleRecord, error) {
	var result *core.ArticleRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeArticleKey(id)
		var err error
		result, err = r.readArticle(tx, key)
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

// GetArticles retrieves multiple article records by their IDs.
// Missing records are skipped without error.
func (r *ArticleRepository) GetArticles(ctx context.Context, ids ...core.ID) ([]*core.ArticleRecord, error) {
	var result []*core.ArticleRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeArticleKey(id)
			record, err := r.readArticle(tx, key)
			if err != nil {
				return err
			}
			if record != nil {
				result = append(result, record)
			}
		}
		return nil
	}, false)
	return result, err
}

// GetArticleByURL retrieves the most recently stored article for a URL.
// Re-ingesting a URL creates a new record, so several may exist; the one
// with the latest CreatedAt wins.
func (r *ArticleRepository) GetArticleByURL(ctx context.Context, url string) (*core.ArticleRecord, error) {
	var result *core.ArticleRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		prefix := makePartialArticleURLKey(url)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var recordID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				recordID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			record, err := r.readArticle(tx, makeArticleKey(recordID))
			if err != nil {
				return err
			}
			// The URL index hashes URLs, so confirm the stored URL matches
			if record == nil || record.URL != url {
				continue
			}
			if result == nil || record.CreatedAt.After(result.CreatedAt) {
				result = record
			}
		}

		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetAllArticles retrieves every stored article, ordered by insertion time.
func (r *ArticleRepository) GetAllArticles(ctx context.Context) ([]*core.ArticleRecord, error) {
	var results []*core.ArticleRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		prefix := []byte(articleDatePrefix + ":")
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var recordID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				recordID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			record, err := r.readArticle(tx, makeArticleKey(recordID))
			if err != nil {
				return err
			}
			if record != nil {
				results = append(results, record)
			}
		}
		return nil
	}, false)
	return results, err
}

// CountArticles returns the number of stored articles.
func (r *ArticleRepository) CountArticles(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		prefix := []byte(articleDatePrefix + ":")
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
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

// UpdateArticleVectors rewrites the embedding vectors of existing records.
// Used only by offline reembedding; all other fields stay untouched.
func (r *ArticleRepository) UpdateArticleVectors(ctx context.Context, records ...*core.ArticleRecord) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			key := makeArticleKey(record.Id)

			existing, err := r.readArticle(tx, key)
			if err != nil {
				return err
			}
			if existing == nil {
				return storage.ErrNotFound
			}

			existing.Vector = record.Vector
			if err := tx.Set(key, storage.MarshalArticleRecord(existing)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// readArticle reads and unmarshals an article record by key.
// Returns nil (no error) if the key doesn't exist.
func (r *ArticleRepository) readArticle(tx *badger.Txn, key []byte) (*core.ArticleRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var record *core.ArticleRecord
	err = item.Value(func(val []byte) error {
		var err error
		record, err = storage.UnmarshalArticleRecord(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}
