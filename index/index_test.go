package index

import (
	"context"
	"errors"
	"testing"

	"github.com/eduardoibarr/news-article-agent/ai/mock"
	"github.com/eduardoibarr/news-article-agent/core"
	"github.com/eduardoibarr/news-article-agent/storage"
	"github.com/eduardoibarr/news-article-agent/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIndex(t *testing.T) (*Index, *mock.MockEmbedder) {
	t.Helper()

	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})

	embedder := mock.NewMockEmbedder()
	idx, err := New(repo, embedder)
	require.NoError(t, err)
	return idx, embedder
}

func TestNew(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	embedder := mock.NewMockEmbedder()

	t.Run("valid configuration", func(t *testing.T) {
		idx, err := New(repo, embedder)
		require.NoError(t, err)
		assert.NotNil(t, idx)
	})

	t.Run("nil repository", func(t *testing.T) {
		_, err := New(nil, embedder)
		assert.Equal(t, ErrRepositoryRequired, err)
	})

	t.Run("nil embedder", func(t *testing.T) {
		_, err := New(repo, nil)
		assert.Equal(t, ErrEmbedderRequired, err)
	})
}

func TestInitialize(t *testing.T) {
	idx, embedder := newTestIndex(t)
	ctx := context.Background()

	require.NoError(t, idx.Initialize(ctx))

	// Seeding must not consume embedding calls
	assert.Equal(t, 0, embedder.CallCount())

	// A fresh index carries only the seed record
	count, err := idx.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// Idempotent
	require.NoError(t, idx.Initialize(ctx))
	count, err = idx.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestOperationsRequireInitialize(t *testing.T) {
	idx, _ := newTestIndex(t)
	ctx := context.Background()

	_, err := idx.Add(ctx, &core.ArticleRecord{URL: "https://example.com", Content: "x"})
	assert.Equal(t, ErrIndexUnavailable, err)

	_, err = idx.Query(ctx, "anything", 3)
	assert.Equal(t, ErrIndexUnavailable, err)

	_, err = idx.FindByID(ctx, core.ID(1))
	assert.Equal(t, ErrIndexUnavailable, err)

	_, err = idx.SearchTerm(ctx, "anything", 5)
	assert.Equal(t, ErrIndexUnavailable, err)
}

func TestQuery_EmptyIndex(t *testing.T) {
	idx, _ := newTestIndex(t)
	ctx := context.Background()
	require.NoError(t, idx.Initialize(ctx))

	// Only the seed record exists; it must never surface
	results, err := idx.Query(ctx, "latest news about anything", 3)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.NotNil(t, results)
}

func TestAddAndQuery(t *testing.T) {
	idx, _ := newTestIndex(t)
	ctx := context.Background()
	require.NoError(t, idx.Initialize(ctx))

	added, err := idx.Add(ctx, &core.ArticleRecord{
		URL:     "https://example.com/climate",
		Title:   "Climate summit reaches agreement",
		Content: "World leaders agreed on new emission targets.",
		Source:  "example.com",
	})
	require.NoError(t, err)
	assert.NotZero(t, added.Id)
	assert.NotEmpty(t, added.Vector)

	_, err = idx.Add(ctx, &core.ArticleRecord{
		URL:     "https://example.com/sports",
		Title:   "Local team wins championship",
		Content: "The final match ended in a dramatic overtime victory.",
		Source:  "example.com",
	})
	require.NoError(t, err)

	// Querying with a record's own content must return it first
	results, err := idx.Query(ctx, "World leaders agreed on new emission targets.", 3)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, added.Id, results[0].Record.Id)
	assert.InDelta(t, 1.0, float64(results[0].Score), 0.01)

	// k caps the result count
	results, err = idx.Query(ctx, "anything at all", 1)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(results), 1)

	count, err := idx.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestAdd_InvalidRecord(t *testing.T) {
	idx, embedder := newTestIndex(t)
	ctx := context.Background()
	require.NoError(t, idx.Initialize(ctx))

	_, err := idx.Add(ctx, &core.ArticleRecord{URL: "", Content: "orphan"})
	assert.ErrorIs(t, err, core.ErrEmptyURL)

	_, err = idx.Add(ctx, &core.ArticleRecord{URL: "https://example.com", Content: ""})
	assert.ErrorIs(t, err, core.ErrEmptyContent)

	// Validation failures must not reach the embedder
	assert.Equal(t, 0, embedder.CallCount())
}

func TestAdd_EmbeddingFailure(t *testing.T) {
	idx, embedder := newTestIndex(t)
	ctx := context.Background()
	require.NoError(t, idx.Initialize(ctx))

	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("embedding service down")
	}

	_, err := idx.Add(ctx, &core.ArticleRecord{
		URL:     "https://example.com/fail",
		Content: "content",
	})
	assert.Error(t, err)

	// Nothing stored on failure
	count, err := idx.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestFindByID(t *testing.T) {
	idx, _ := newTestIndex(t)
	ctx := context.Background()
	require.NoError(t, idx.Initialize(ctx))

	added, err := idx.Add(ctx, &core.ArticleRecord{
		URL:     "https://example.com/story",
		Title:   "A story",
		Content: "Story body.",
	})
	require.NoError(t, err)

	record, err := idx.FindByID(ctx, added.Id)
	require.NoError(t, err)
	assert.Equal(t, "A story", record.Title)

	_, err = idx.FindByID(ctx, core.ID(987654))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSearchTerm(t *testing.T) {
	idx, _ := newTestIndex(t)
	ctx := context.Background()
	require.NoError(t, idx.Initialize(ctx))

	_, err := idx.Add(ctx, &core.ArticleRecord{
		URL:     "https://example.com/economy",
		Title:   "Inflation slows in the Eurozone",
		Content: "Consumer prices rose less than expected.",
	})
	require.NoError(t, err)

	_, err = idx.Add(ctx, &core.ArticleRecord{
		URL:     "https://example.com/tech",
		Title:   "New chip announced",
		Content: "The processor doubles performance.",
	})
	require.NoError(t, err)

	results, err := idx.SearchTerm(ctx, "inflation eurozone", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Inflation slows in the Eurozone", results[0].Title)

	// Stop words alone never match
	results, err = idx.SearchTerm(ctx, "the and of", 10)
	require.NoError(t, err)
	assert.Empty(t, results)

	// The seed record is invisible to keyword search
	results, err = idx.SearchTerm(ctx, "vector index initialized", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}
