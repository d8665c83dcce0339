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


package agent

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/eduardoibarr/news-article-agent/ai"
	"github.com/eduardoibarr/news-article-agent/core"
)

// corpusK is the number of records retrieved for a corpus-mode answer.
const corpusK = 3

// noInfoAnswer is returned when corpus retrieval produces nothing.
// No generation call is made in that case.
const noInfoAnswer = "I don't have any information about that topic in my knowledge base. " +
	"Try asking about a different topic or providing a URL to an article."

// urlPattern routes queries: an embedded absolute URL selects
// single-document mode, everything else is answered from the corpus.
var urlPattern = regexp.MustCompile(`https?://[^\s]+`)

// Normalizer turns a URL into a structured article record.
type Normalizer interface {
	Normalize(ctx context.Context, url string) (*core.ArticleRecord, error)
}

// ArticleIndex is the slice of index behavior the agent depends on.
type ArticleIndex interface {
	Add(ctx context.Context, record *core.ArticleRecord) (*core.ArticleRecord, error)
	Query(ctx context.Context, text string, k int) ([]*core.SearchResult, error)
}

// Agent answers natural-language queries about news articles, grounding
// each answer either in a single fetched document or in records retrieved
// from the index.
type Agent struct {
	index      ArticleIndex
	normalizer Normalizer
	generator  ai.Generator
	logger     *slog.Logger
}

// Option configures an Agent.
type Option func(*Agent) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Agent) error {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
		return nil
	}
}

// New creates a new agent.
func New(idx ArticleIndex, normalizer Normalizer, generator ai.Generator, opts ...Option) (*Agent, error) {
	if idx == nil {
		return nil, ErrIndexRequired
	}
	if normalizer == nil {
		return nil, ErrNormalizerRequired
	}
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	a := &Agent{
		index:      idx,
		normalizer: normalizer,
		generator:  generator,
		logger:     slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// extractURL returns the first absolute URL embedded in the query, or "".
func extractURL(query string) string {
	return urlPattern.FindString(query)
}

// ProcessQuery answers a query. It never returns an error: any failure in
// fetching, retrieval, or generation degrades into an answer explaining
// the problem with no sources.
func (a *Agent) ProcessQuery(ctx context.Context, query string) *core.QueryResult {
	var result *core.QueryResult
	var err error

	if articleURL := extractURL(query); articleURL != "" {
		a.logger.Info("processing URL-specific query", "url", articleURL)
		result, err = a.answerSingleDocument(ctx, articleURL, query)
	} else {
		a.logger.Info("processing general knowledge query", "query", query)
		result, err = a.answerFromCorpus(ctx, query)
	}

	if err != nil {
		a.logger.Error("query processing failed", "err", err)
		return &core.QueryResult{
			Answer: fmt.Sprintf("I encountered an error while processing your query: %v. "+
				"Please try again or rephrase your question.", err),
			Sources: []core.SourceRef{},
		}
	}
	return result
}

// answerSingleDocument fetches and normalizes the referenced article, then
// answers the query from that one document.
func (a *Agent) answerSingleDocument(ctx context.Context, articleURL, query string) (*core.QueryResult, error) {
	record, prompt, err := a.prepareSingleDocument(ctx, articleURL, query)
	if err != nil {
		return nil, err
	}

	answer, err := a.generator.GenerateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generating answer: %w", err)
	}

	return &core.QueryResult{
		Answer:  answer,
		Sources: []core.SourceRef{record.Ref()},
	}, nil
}

// prepareSingleDocument normalizes the article, stores it best-effort, and
// builds the grounding prompt. Indexing failures are logged and swallowed:
// indexing here is an optimization, not part of answering.
func (a *Agent) prepareSingleDocument(ctx context.Context, articleURL, query string) (*core.ArticleRecord, string, error) {
	record, err := a.normalizer.Normalize(ctx, articleURL)
	if err != nil {
		return nil, "", fmt.Errorf("normalizing %s: %w", articleURL, err)
	}

	if _, err := a.index.Add(ctx, record); err != nil {
		a.logger.Warn("failed to store article in index", "url", articleURL, "err", err)
	}

	stripped := strings.TrimSpace(strings.Replace(query, articleURL, "", 1))
	return record, buildSingleDocPrompt(record, stripped), nil
}

// answerFromCorpus retrieves the nearest indexed records and answers from
// them. Zero hits short-circuits to a fixed no-information answer without
// touching the generator.
func (a *Agent) answerFromCorpus(ctx context.Context, query string) (*core.QueryResult, error) {
	results, err := a.index.Query(ctx, query, corpusK)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}

	if len(results) == 0 {
		return &core.QueryResult{
			Answer:  noInfoAnswer,
			Sources: []core.SourceRef{},
		}, nil
	}

	prompt := buildCorpusPrompt(buildCorpusContext(results), query)
	answer, err := a.generator.GenerateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generating answer: %w", err)
	}

	sources := make([]core.SourceRef, 0, len(results))
	for _, result := range results {
		sources = append(sources, result.Record.Ref())
	}

	return &core.QueryResult{Answer: answer, Sources: sources}, nil
}

// Summarize fetches the article at url, stores it best-effort, and
// generates a multi-paragraph summary. Like ProcessQuery it never returns
// an error; failures degrade into an explanatory answer.
func (a *Agent) Summarize(ctx context.Context, articleURL string) *core.QueryResult {
	result, err := a.summarize(ctx, articleURL)
	if err != nil {
		a.logger.Error("summarization failed", "url", articleURL, "err", err)
		return &core.QueryResult{
			Answer: fmt.Sprintf("I encountered an error while summarizing the article: %v. "+
				"Please check the URL and try again.", err),
			Sources: []core.SourceRef{},
		}
	}
	return result
}

func (a *Agent) summarize(ctx context.Context, articleURL string) (*core.QueryResult, error) {
	if _, err := url.ParseRequestURI(articleURL); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURL, articleURL)
	}

	a.logger.Info("summarizing article", "url", articleURL)

	record, err := a.normalizer.Normalize(ctx, articleURL)
	if err != nil {
		return nil, fmt.Errorf("normalizing %s: %w", articleURL, err)
	}

	if _, err := a.index.Add(ctx, record); err != nil {
		a.logger.Warn("failed to store article in index", "url", articleURL, "err", err)
	}

	answer, err := a.generator.GenerateText(ctx, buildSummaryPrompt(record))
	if err != nil {
		return nil, fmt.Errorf("generating summary: %w", err)
	}

	return &core.QueryResult{
		Answer:  answer,
		Sources: []core.SourceRef{record.Ref()},
	}, nil
}
