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


package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/eduardoibarr/news-article-agent/core"
	"github.com/eduardoibarr/news-article-agent/extract"
	"github.com/panjf2000/ants/v2"
)

// Normalizer turns a URL into a structured article record.
type Normalizer interface {
	Normalize(ctx context.Context, url string) (*core.ArticleRecord, error)
}

// ArticleIndex is the slice of index behavior the pipeline depends on.
type ArticleIndex interface {
	Add(ctx context.Context, record *core.ArticleRecord) (*core.ArticleRecord, error)
}

// ItemResultFunc reports the outcome of one batch item.
// Items may complete concurrently, but invocations are serialized.
type ItemResultFunc func(url string, success bool)

// Tally summarizes a batch run.
type Tally struct {
	Succeeded int
	Failed    int
}

// Pipeline ingests article URLs: normalize, then store in the index.
// Batch items are processed concurrently on a bounded worker pool.
type Pipeline struct {
	normalizer Normalizer
	index      ArticleIndex
	pool       *ants.Pool
	logger     *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent batch processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(normalizer Normalizer, index ArticleIndex, opts ...Option) (*Pipeline, error) {
	if normalizer == nil {
		return nil, ErrNormalizerRequired
	}
	if index == nil {
		return nil, ErrIndexRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		normalizer: normalizer,
		index:      index,
		pool:       pool,
		logger:     slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(p); err != nil {
			p.Release()
			return nil, err
		}
	}

	return p, nil
}

// IngestOne normalizes and stores a single article.
//
// A forbidden fetch does not fail the ingest: sites that block automated
// access still get a stub record so the URL is represented in the index.
// Every other failure propagates.
func (p *Pipeline) IngestOne(ctx context.Context, url string) (*core.ArticleRecord, error) {
	p.logger.Info("ingesting article", "url", url)

	record, err := p.normalizer.Normalize(ctx, url)
	if err != nil {
		if !extract.IsForbidden(err) {
			return nil, fmt.Errorf("ingesting %s: %w", url, err)
		}
		record = stubRecord(url)
		p.logger.Warn("fetch blocked, storing stub record", "url", url)
	}

	stored, err := p.index.Add(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("storing %s: %w", url, err)
	}

	p.logger.Info("article ingested", "url", url, "id", stored.Id)
	return stored, nil
}

// IngestBatch ingests every URL the source yields, up to the pool's
// concurrency limit at a time. Per-item outcomes are reported through
// onResult; one item's failure never aborts the batch. Returns the final
// tally, plus the source error if the sequence ended abnormally.
func (p *Pipeline) IngestBatch(ctx context.Context, source URLSource, onResult ItemResultFunc) (Tally, error) {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		tally    Tally
		totalURL int
	)

	report := func(url string, success bool) {
		mu.Lock()
		defer mu.Unlock()
		if success {
			tally.Succeeded++
		} else {
			tally.Failed++
		}
		if onResult != nil {
			onResult(url, success)
		}
	}

	var sourceErr error
	for {
		url, err := source.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			sourceErr = fmt.Errorf("reading url source: %w", err)
			break
		}

		totalURL++
		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()
			_, err := p.IngestOne(ctx, url)
			if err != nil {
				p.logger.Error("batch item failed", "url", url, "err", err)
			}
			report(url, err == nil)
		})
		if submitErr != nil {
			wg.Done()
			p.logger.Error("failed to submit batch item", "url", url, "err", submitErr)
			report(url, false)
		}
	}

	wg.Wait()

	p.logger.Info("batch ingestion complete",
		"urls", totalURL, "succeeded", tally.Succeeded, "failed", tally.Failed)
	return tally, sourceErr
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

// stubRecord builds the placeholder stored for a URL whose site blocks
// automated fetching.
func stubRecord(url string) *core.ArticleRecord {
	now := time.Now().UTC()
	return &core.ArticleRecord{
		Id:    core.NewArticleID(url, now),
		URL:   url,
		Title: "Article from " + core.HostOf(url),
		Content: "This article from " + url + " could not be accessed directly. " +
			"The content was not available for processing due to website restrictions.",
		Source:      core.HostOf(url),
		PublishedAt: now,
		CreatedAt:   now,
	}
}
