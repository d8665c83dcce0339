package index

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/eduardoibarr/news-article-agent/ai"
	"github.com/eduardoibarr/news-article-agent/core"
	"github.com/eduardoibarr/news-article-agent/storage"
)

// seedSource marks the placeholder record written into an empty index.
// Some similarity engines misbehave on a completely empty corpus, so a
// fresh index always carries one inert entry. Queries never return it.
const seedSource = "initialization"

// Index provides similarity search over stored article records.
// Adds embed and persist synchronously: an acknowledged Add is durable.
type Index struct {
	repository    storage.ArticleRepository
	embedder      ai.Embedder
	minSimilarity float32
	logger        *slog.Logger

	mu          sync.Mutex
	initialized bool
}

// Option configures an Index.
type Option func(*Index) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(idx *Index) error {
		if logger == nil {
			logger = slog.Default()
		}
		idx.logger = logger
		return nil
	}
}

// WithMinSimilarity sets the similarity floor for Query results.
// Default is 0: every non-negative match within k is returned.
func WithMinSimilarity(min float32) Option {
	return func(idx *Index) error {
		idx.minSimilarity = min
		return nil
	}
}

// New creates a new index over the given repository and embedder.
func New(repository storage.ArticleRepository, embedder ai.Embedder, opts ...Option) (*Index, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	idx := &Index{
		repository: repository,
		embedder:   embedder,
		logger:     slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(idx); err != nil {
			return nil, err
		}
	}

	return idx, nil
}

// Initialize prepares the index for use. A brand-new store is seeded with a
// single placeholder record so the similarity engine never operates on an
// empty corpus. Idempotent: calling on an initialized index is a no-op.
func (idx *Index) Initialize(ctx context.Context) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.initialized {
		return nil
	}

	count, err := idx.repository.CountArticles(ctx)
	if err != nil {
		return fmt.Errorf("counting articles: %w", err)
	}

	if count == 0 {
		seed := &core.ArticleRecord{
			URL:       "newsagent://seed",
			Title:     "Vector index initialized",
			Content:   "Vector index initialized",
			Source:    seedSource,
			CreatedAt: time.Now().UTC(),
		}
		if _, err := idx.repository.AddArticles(ctx, seed); err != nil {
			return fmt.Errorf("seeding index: %w", err)
		}
		idx.logger.Info("created new vector index", "seed", seed.Id)
	} else {
		idx.logger.Info("opened existing vector index", "articles", count)
	}

	idx.initialized = true
	return nil
}

// Add embeds the record's content and stores it.
// The record is persisted before Add returns.
func (idx *Index) Add(ctx context.Context, record *core.ArticleRecord) (*core.ArticleRecord, error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if !idx.initialized {
		return nil, ErrIndexUnavailable
	}

	if err := core.ValidateArticleRecord(record); err != nil {
		return nil, err
	}

	vector, err := idx.embedder.EmbedText(ctx, record.Content)
	if err != nil {
		return nil, fmt.Errorf("embedding article content: %w", err)
	}
	record.Vector = core.NormalizeVector(vector)

	added, err := idx.repository.AddArticles(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("storing article: %w", err)
	}

	idx.logger.Debug("added article to index", "id", added[0].Id, "url", added[0].URL)
	return added[0], nil
}

// Query embeds the text and returns up to k nearest article records,
// ordered by descending similarity. No matches is not an error: the
// result is an empty slice.
func (idx *Index) Query(ctx context.Context, text string, k int) ([]*core.SearchResult, error) {
	if !idx.isInitialized() {
		return nil, ErrIndexUnavailable
	}
	if k <= 0 {
		return []*core.SearchResult{}, nil
	}

	vector, err := idx.embedder.EmbedText(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	vector = core.NormalizeVector(vector)

	// Over-fetch by one so the seed record never displaces a real hit
	matches, err := idx.repository.FindSimilar(ctx, vector, idx.minSimilarity, k+1)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}

	results := make([]*core.SearchResult, 0, len(matches))
	for _, match := range matches {
		if match.Record.Source == seedSource {
			continue
		}
		results = append(results, match)
		if len(results) == k {
			break
		}
	}

	return results, nil
}

// FindByID retrieves a single stored article.
// Returns storage.ErrNotFound if no record has the given ID.
func (idx *Index) FindByID(ctx context.Context, id core.ID) (*core.ArticleRecord, error) {
	if !idx.isInitialized() {
		return nil, ErrIndexUnavailable
	}
	return idx.repository.GetArticle(ctx, id)
}

// SearchTerm finds articles whose title or content contains every
// significant word of the term. Matching is case-insensitive with stop
// words removed. Returns up to limit records in insertion order.
func (idx *Index) SearchTerm(ctx context.Context, term string, limit int) ([]*core.ArticleRecord, error) {
	if !idx.isInitialized() {
		return nil, ErrIndexUnavailable
	}
	if limit <= 0 {
		return []*core.ArticleRecord{}, nil
	}

	records, err := idx.repository.GetAllArticles(ctx)
	if err != nil {
		return nil, fmt.Errorf("scanning articles: %w", err)
	}

	results := make([]*core.ArticleRecord, 0, limit)
	for _, record := range records {
		if record.Source == seedSource {
			continue
		}
		if containsAllQueryWords(record.Title+" "+record.Content, term) {
			results = append(results, record)
			if len(results) == limit {
				break
			}
		}
	}

	return results, nil
}

// Count returns the number of indexed articles, excluding the seed record.
func (idx *Index) Count(ctx context.Context) (int, error) {
	if !idx.isInitialized() {
		return 0, ErrIndexUnavailable
	}

	count, err := idx.repository.CountArticles(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		// The seed record is an implementation detail
		count--
	}
	return count, nil
}

func (idx *Index) isInitialized() bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.initialized
}
