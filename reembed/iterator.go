// Copyright 2026 News Article Agent Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package reembed

import (
	"context"

	"github.com/eduardoibarr/news-article-agent/core"
	"github.com/eduardoibarr/news-article-agent/storage"
)

const (
	// DefaultBatchSize is the default number of articles to process in each batch
	DefaultBatchSize = 100
)

// ArticleIterator iterates over all stored articles in batches.
type ArticleIterator struct {
	repo      storage.ArticleRepository
	batchSize int
}

// NewArticleIterator creates a new article iterator.
// batchSize: number of articles to process in each batch (must be > 0)
func NewArticleIterator(repo storage.ArticleRepository, batchSize int) *ArticleIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &ArticleIterator{
		repo:      repo,
		batchSize: batchSize,
	}
}

// ForEach iterates over all articles, calling fn for each batch.
// Iteration stops on first error from fn or when all articles are processed.
// Context cancellation is checked between batches.
func (it *ArticleIterator) ForEach(ctx context.Context, fn func([]*core.ArticleRecord) error) error {
	// Check context before starting
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	records, err := it.repo.GetAllArticles(ctx)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		return nil
	}

	for i := 0; i < len(records); i += it.batchSize {
		end := i + it.batchSize
		if end > len(records) {
			end = len(records)
		}

		if err := fn(records[i:end]); err != nil {
			return err
		}

		// Check context after each batch
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	return nil
}
