package reembed

import (
	"context"
	"fmt"
	"time"

	"github.com/eduardoibarr/news-article-agent/ai"
	"github.com/eduardoibarr/news-article-agent/core"
	"github.com/eduardoibarr/news-article-agent/storage"
)

// BatchProcessor handles embedding generation for batches of articles.
type BatchProcessor struct {
	repo           storage.ArticleRepository
	embedder       ai.Embedder
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewBatchProcessor creates a new batch processor.
// maxRetries: maximum number of retry attempts for embedding API calls
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(repo storage.ArticleRepository, embedder ai.Embedder, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		repo:           repo,
		embedder:       embedder,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process generates embeddings for a batch of articles and writes the new
// vectors back. Vectors are normalized after embedding to ensure
// compatibility with cosine similarity. No other article field changes.
func (bp *BatchProcessor) Process(ctx context.Context, records []*core.ArticleRecord) error {
	if len(records) == 0 {
		return nil
	}

	// The content is what gets embedded, matching the index's Add path
	texts := make([]string, len(records))
	for i, record := range records {
		texts[i] = record.Content
	}

	// Generate embeddings with retry
	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		embeddings, err = bp.embedder.EmbedTexts(ctx, texts)
		return err
	}, bp.maxRetries, bp.retryBaseDelay)

	if err != nil {
		return fmt.Errorf("failed to generate embeddings after %d attempts: %w", bp.maxRetries, err)
	}

	if len(embeddings) != len(records) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(records), len(embeddings))
	}

	// Normalize vectors and assign to records
	for i := range records {
		records[i].Vector = core.NormalizeVector(embeddings[i])
	}

	if err := bp.repo.UpdateArticleVectors(ctx, records...); err != nil {
		return fmt.Errorf("failed to update article vectors: %w", err)
	}

	return nil
}
