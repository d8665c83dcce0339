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


// Package newsagent ingests news articles from URLs, indexes them for
// similarity search, and answers natural-language queries grounded in the
// indexed corpus. Service is the transport-agnostic entry point; callers
// wire it behind whatever interface they expose.
package newsagent

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/eduardoibarr/news-article-agent/agent"
	"github.com/eduardoibarr/news-article-agent/ai"
	"github.com/eduardoibarr/news-article-agent/ai/openai"
	"github.com/eduardoibarr/news-article-agent/cache"
	"github.com/eduardoibarr/news-article-agent/core"
	"github.com/eduardoibarr/news-article-agent/extract"
	"github.com/eduardoibarr/news-article-agent/index"
	"github.com/eduardoibarr/news-article-agent/ingest"
	"github.com/eduardoibarr/news-article-agent/reembed"
	"github.com/eduardoibarr/news-article-agent/storage"
	"github.com/eduardoibarr/news-article-agent/storage/badger"
)

// Cache lifetimes per operation. Ingestion clears everything, so these
// only bound staleness between writes.
const (
	queryCacheTTL   = 5 * time.Minute
	searchCacheTTL  = 15 * time.Minute
	articleCacheTTL = 30 * time.Minute
	summaryCacheTTL = 60 * time.Minute
)

// Service wires storage, the AI provider, the index, the answering agent,
// and the ingestion pipeline behind one facade with a response cache in
// front of the expensive operations.
type Service struct {
	backend  *badger.Backend
	repo     storage.ArticleRepository
	provider ai.AIProvider
	index    *index.Index
	agent    *agent.Agent
	pipeline *ingest.Pipeline
	cache    *cache.Cache
	logger   *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	aiConfig *ai.Config
	provider ai.AIProvider
	inMemory bool
}

// WithAIConfig sets the AI provider configuration.
func WithAIConfig(cfg *ai.Config) ServiceOption {
	return func(o *serviceOptions) {
		o.aiConfig = cfg
	}
}

// WithProvider supplies a pre-built AI provider instead of constructing
// one from configuration. Used mainly by tests.
func WithProvider(provider ai.AIProvider) ServiceOption {
	return func(o *serviceOptions) {
		o.provider = provider
	}
}

// WithInMemoryStorage keeps all state in memory. Used mainly by tests.
func WithInMemoryStorage() ServiceOption {
	return func(o *serviceOptions) {
		o.inMemory = true
	}
}

// NewService creates the service over a storage path. Call Initialize
// before using it and Close when done.
func NewService(filePath string, opts ...ServiceOption) (*Service, error) {
	options := &serviceOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	repo := badger.NewArticleRepository(backend)

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			repo.Close()
			backend.Close()
			return nil, err
		}
	}

	normalizer, err := extract.NewNormalizer(extract.NewFetcher(), provider.Generator())
	if err != nil {
		provider.Close()
		repo.Close()
		backend.Close()
		return nil, err
	}

	idx, err := index.New(repo, provider.Embedder())
	if err != nil {
		provider.Close()
		repo.Close()
		backend.Close()
		return nil, err
	}

	answerer, err := agent.New(idx, normalizer, provider.Generator())
	if err != nil {
		provider.Close()
		repo.Close()
		backend.Close()
		return nil, err
	}

	pipeline, err := ingest.NewPipeline(normalizer, idx)
	if err != nil {
		provider.Close()
		repo.Close()
		backend.Close()
		return nil, err
	}

	return &Service{
		backend:  backend,
		repo:     repo,
		provider: provider,
		index:    idx,
		agent:    answerer,
		pipeline: pipeline,
		cache:    cache.New(),
		logger:   slog.Default(),
	}, nil
}

// Initialize prepares the index. Must succeed before any query or ingest
// operation; idempotent.
func (s *Service) Initialize(ctx context.Context) error {
	return s.index.Initialize(ctx)
}

// ProcessQuery answers a natural-language query. Results are cached per
// query text; the answer itself never reports an internal failure as an
// error, only as a degraded answer body.
func (s *Service) ProcessQuery(ctx context.Context, query string) *core.QueryResult {
	result, _ := cache.GetOrSetTyped(s.cache, "query:"+query, queryCacheTTL,
		func() (*core.QueryResult, error) {
			return s.agent.ProcessQuery(ctx, query), nil
		})
	return result
}

// ProcessQueryStreaming answers a query token by token. Streaming
// responses are never cached.
func (s *Service) ProcessQueryStreaming(ctx context.Context, query string, callbacks agent.StreamCallbacks) {
	s.agent.ProcessQueryStreaming(ctx, query, callbacks)
}

// Summarize fetches, stores, and summarizes the article at url.
// Summaries are cached per URL.
func (s *Service) Summarize(ctx context.Context, url string) *core.QueryResult {
	result, _ := cache.GetOrSetTyped(s.cache, "summary:"+url, summaryCacheTTL,
		func() (*core.QueryResult, error) {
			return s.agent.Summarize(ctx, url), nil
		})
	return result
}

// Search finds stored articles matching the term by keyword.
func (s *Service) Search(ctx context.Context, term string, limit int) ([]*core.ArticleRecord, error) {
	key := fmt.Sprintf("search:%s:%d", term, limit)
	return cache.GetOrSetTyped(s.cache, key, searchCacheTTL,
		func() ([]*core.ArticleRecord, error) {
			return s.index.SearchTerm(ctx, term, limit)
		})
}

// GetByID retrieves a stored article.
// Returns storage.ErrNotFound if no record has the given ID.
func (s *Service) GetByID(ctx context.Context, id core.ID) (*core.ArticleRecord, error) {
	key := fmt.Sprintf("article:%d", id)
	return cache.GetOrSetTyped(s.cache, key, articleCacheTTL,
		func() (*core.ArticleRecord, error) {
			return s.index.FindByID(ctx, id)
		})
}

// Ingest normalizes and stores a single article, then invalidates the
// response cache so subsequent queries see the new record.
func (s *Service) Ingest(ctx context.Context, url string) (*core.ArticleRecord, error) {
	record, err := s.pipeline.IngestOne(ctx, url)
	if err != nil {
		return nil, err
	}
	s.cache.Clear()
	return record, nil
}

// IngestBatch ingests every URL the source yields. The cache is cleared
// once at the end if anything was stored.
func (s *Service) IngestBatch(ctx context.Context, source ingest.URLSource, onResult ingest.ItemResultFunc) (ingest.Tally, error) {
	tally, err := s.pipeline.IngestBatch(ctx, source, onResult)
	if tally.Succeeded > 0 {
		s.cache.Clear()
	}
	return tally, err
}

// NewReembedder builds a reembedder over the service's storage and
// embedder, for rebuilding vectors after an embedding model change.
func (s *Service) NewReembedder(config *reembed.Config, progress io.Writer) *reembed.Reembedder {
	return reembed.NewReembedder(s.repo, s.provider.Embedder(), config, progress)
}

// Repository exposes the underlying article repository.
func (s *Service) Repository() storage.ArticleRepository {
	return s.repo
}

// Index exposes the underlying article index.
func (s *Service) Index() *index.Index {
	return s.index
}

// Close releases every owned resource.
func (s *Service) Close() error {
	s.pipeline.Release()

	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}

	if err := s.repo.Close(); err != nil {
		s.logger.Error("error closing article repository", "err", err)
		return err
	}

	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}
