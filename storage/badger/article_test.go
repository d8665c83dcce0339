package badger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eduardoibarr/news-article-agent/core"
	"github.com/eduardoibarr/news-article-agent/storage"
)

func TestArticleRecordBasics(t *testing.T) {
	// Create in-memory repository
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() {
		repo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	// Test adding an article record
	record := &core.ArticleRecord{
		URL:     "https://example.com/news/story",
		Title:   "Example Story",
		Content: "Something happened somewhere.",
		Source:  "example.com",
	}

	added, err := repo.AddArticles(ctx, record)
	if err != nil {
		t.Fatalf("Failed to add article record: %v", err)
	}

	if len(added) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(added))
	}

	if added[0].Id == 0 {
		t.Fatal("Expected non-zero ID")
	}

	if added[0].CreatedAt.IsZero() {
		t.Fatal("Expected CreatedAt to be set")
	}

	// Test retrieving the record
	retrieved, err := repo.GetArticle(ctx, added[0].Id)
	if err != nil {
		t.Fatalf("Failed to get article record: %v", err)
	}

	if retrieved.Title != "Example Story" {
		t.Fatalf("Expected 'Example Story', got '%s'", retrieved.Title)
	}

	if retrieved.URL != "https://example.com/news/story" {
		t.Fatalf("Unexpected URL: %s", retrieved.URL)
	}
}

func TestGetArticleNotFound(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	_, err = repo.GetArticle(context.Background(), core.ID(12345))
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestGetArticlesSkipsMissing(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	added, err := repo.AddArticles(ctx,
		&core.ArticleRecord{URL: "https://example.com/a", Title: "A", Content: "a"},
		&core.ArticleRecord{URL: "https://example.com/b", Title: "B", Content: "b"},
	)
	if err != nil {
		t.Fatalf("Failed to add article records: %v", err)
	}

	results, err := repo.GetArticles(ctx, added[0].Id, core.ID(99999), added[1].Id)
	if err != nil {
		t.Fatalf("Failed to get article records: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(results))
	}
}

func TestGetArticleByURL(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	// Re-ingesting a URL creates a second record; the newest one must win
	_, err = repo.AddArticles(ctx,
		&core.ArticleRecord{URL: "https://example.com/story", Title: "Old", Content: "old", CreatedAt: now.Add(-time.Hour)},
		&core.ArticleRecord{URL: "https://example.com/story", Title: "New", Content: "new", CreatedAt: now},
		&core.ArticleRecord{URL: "https://example.com/other", Title: "Other", Content: "other", CreatedAt: now},
	)
	if err != nil {
		t.Fatalf("Failed to add article records: %v", err)
	}

	record, err := repo.GetArticleByURL(ctx, "https://example.com/story")
	if err != nil {
		t.Fatalf("Failed to get article by URL: %v", err)
	}

	if record.Title != "New" {
		t.Fatalf("Expected most recent record 'New', got '%s'", record.Title)
	}

	_, err = repo.GetArticleByURL(ctx, "https://example.com/missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for unknown URL, got %v", err)
	}
}

func TestGetAllArticlesInsertionOrder(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	_, err = repo.AddArticles(ctx,
		&core.ArticleRecord{URL: "https://example.com/1", Title: "First", Content: "1", CreatedAt: now.Add(-2 * time.Hour)},
		&core.ArticleRecord{URL: "https://example.com/2", Title: "Second", Content: "2", CreatedAt: now.Add(-time.Hour)},
		&core.ArticleRecord{URL: "https://example.com/3", Title: "Third", Content: "3", CreatedAt: now},
	)
	if err != nil {
		t.Fatalf("Failed to add article records: %v", err)
	}

	results, err := repo.GetAllArticles(ctx)
	if err != nil {
		t.Fatalf("Failed to get all articles: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(results))
	}

	expected := []string{"First", "Second", "Third"}
	for i, want := range expected {
		if results[i].Title != want {
			t.Fatalf("Expected record %d to be '%s', got '%s'", i, want, results[i].Title)
		}
	}

	count, err := repo.CountArticles(ctx)
	if err != nil {
		t.Fatalf("Failed to count articles: %v", err)
	}
	if count != 3 {
		t.Fatalf("Expected count 3, got %d", count)
	}
}

func TestUpdateArticleVectors(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	added, err := repo.AddArticles(ctx, &core.ArticleRecord{
		URL:     "https://example.com/story",
		Title:   "Story",
		Content: "content",
		Vector:  []float32{0.1, 0.2, 0.3},
	})
	if err != nil {
		t.Fatalf("Failed to add article record: %v", err)
	}

	updated := &core.ArticleRecord{Id: added[0].Id, Vector: []float32{0.9, 0.8, 0.7}}
	if err := repo.UpdateArticleVectors(ctx, updated); err != nil {
		t.Fatalf("Failed to update vectors: %v", err)
	}

	retrieved, err := repo.GetArticle(ctx, added[0].Id)
	if err != nil {
		t.Fatalf("Failed to get article record: %v", err)
	}

	if retrieved.Vector[0] != 0.9 {
		t.Fatalf("Expected updated vector, got %v", retrieved.Vector)
	}

	// Other fields must be untouched
	if retrieved.Title != "Story" {
		t.Fatalf("Expected title preserved, got '%s'", retrieved.Title)
	}

	// Unknown record must fail
	err = repo.UpdateArticleVectors(ctx, &core.ArticleRecord{Id: core.ID(424242), Vector: []float32{1}})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestFindSimilar(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	_, err = repo.AddArticles(ctx,
		&core.ArticleRecord{URL: "https://example.com/a", Title: "A", Content: "a", Vector: []float32{1, 0, 0}},
		&core.ArticleRecord{URL: "https://example.com/b", Title: "B", Content: "b", Vector: []float32{0.7, 0.7, 0}},
		&core.ArticleRecord{URL: "https://example.com/c", Title: "C", Content: "c", Vector: []float32{0, 0, 1}},
		&core.ArticleRecord{URL: "https://example.com/d", Title: "D", Content: "d"}, // no vector
	)
	if err != nil {
		t.Fatalf("Failed to add article records: %v", err)
	}

	results, err := repo.FindSimilar(ctx, []float32{1, 0, 0}, 0.5, 10)
	if err != nil {
		t.Fatalf("Failed to find similar: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("Expected 2 results above threshold, got %d", len(results))
	}

	if results[0].Record.Title != "A" {
		t.Fatalf("Expected best match 'A', got '%s'", results[0].Record.Title)
	}

	if results[0].Score < results[1].Score {
		t.Fatal("Expected results sorted by descending score")
	}

	// Limit must cap results
	results, err = repo.FindSimilar(ctx, []float32{1, 0, 0}, 0.0, 1)
	if err != nil {
		t.Fatalf("Failed to find similar: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 result with limit 1, got %d", len(results))
	}
}
