package storage

import (
	"context"

	"github.com/eduardoibarr/news-article-agent/core"
)

// ArticleRepository provides durable storage for article records.
// Implementations must be thread-safe and support concurrent access.
//
// Stored articles are immutable: there is no general update operation.
// Re-ingesting a URL adds a new record. The single exception is
// UpdateArticleVectors, used by offline reembedding to keep the index and
// query sides of the embedding space symmetric after a model change.
type ArticleRepository interface {
	// AddArticles adds one or more article records to storage.
	// Sets CreatedAt if not already set. The write is durable before the
	// call returns.
	AddArticles(ctx context.Context, records ...*core.ArticleRecord) ([]*core.ArticleRecord, error)

	// GetArticle retrieves a single article by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetArticle(ctx context.Context, id core.ID) (*core.ArticleRecord, error)

	// GetArticles retrieves multiple articles by their IDs.
	// Returns only the records that exist (no error for missing records).
	GetArticles(ctx context.Context, ids ...core.ID) ([]*core.ArticleRecord, error)

	// GetArticleByURL retrieves the most recently stored article for a URL.
	// Returns ErrNotFound if no record exists for the URL.
	GetArticleByURL(ctx context.Context, url string) (*core.ArticleRecord, error)

	// GetAllArticles retrieves every stored article, ordered by insertion.
	GetAllArticles(ctx context.Context) ([]*core.ArticleRecord, error)

	// CountArticles returns the number of stored articles.
	CountArticles(ctx context.Context) (int, error)

	// UpdateArticleVectors rewrites the embedding vectors of existing
	// records. All other fields are left untouched.
	// Returns ErrNotFound if any record doesn't exist.
	UpdateArticleVectors(ctx context.Context, records ...*core.ArticleRecord) error

	// FindSimilar finds articles similar to the given vector.
	// Returns records with similarity >= minSimilarity, up to limit results.
	// Results are ordered by similarity score (highest first).
	FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.SearchResult, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
