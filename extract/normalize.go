package extract

import (
	"context"
	"log/slog"
	"time"

	"github.com/eduardoibarr/news-article-agent/ai"
	"github.com/eduardoibarr/news-article-agent/core"
)

// Normalizer converts a URL into a structured ArticleRecord. Fetch failures
// propagate as *FetchError; structuring failures never propagate, the
// fallback parse chain degrades to a stub record instead.
type Normalizer struct {
	fetcher   *Fetcher
	generator ai.Generator
	logger    *slog.Logger
}

// NormalizerOption configures a Normalizer.
type NormalizerOption func(*Normalizer)

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) NormalizerOption {
	return func(n *Normalizer) {
		if logger == nil {
			logger = slog.Default()
		}
		n.logger = logger
	}
}

// NewNormalizer creates a normalizer that fetches with the given fetcher and
// structures content with the given generator.
func NewNormalizer(fetcher *Fetcher, generator ai.Generator, opts ...NormalizerOption) (*Normalizer, error) {
	if fetcher == nil {
		return nil, ErrFetcherRequired
	}
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	n := &Normalizer{
		fetcher:   fetcher,
		generator: generator,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(n)
	}

	return n, nil
}

// Normalize fetches the URL and produces a structured article record.
// The returned record always has non-empty Content. Only fetch failures are
// returned as errors; every extraction failure degrades through the parse
// fallback chain.
func (n *Normalizer) Normalize(ctx context.Context, url string) (*core.ArticleRecord, error) {
	rawHTML, err := n.fetcher.FetchHTML(ctx, url)
	if err != nil {
		return nil, err
	}

	title, text := ExtractText(rawHTML)

	response, genErr := n.generator.GenerateText(ctx, buildExtractionPrompt(FlattenForPrompt(title, text)))

	var parsed structuredArticle
	if genErr != nil {
		n.logger.Warn("structuring generation failed, using stub", "url", url, "err", genErr)
		parsed = stubArticle(title, text)
	} else {
		parsed = parseStructured(response, title, text)
		if parsed.Method != ParseStrict {
			n.logger.Debug("structured parse degraded", "url", url, "method", int(parsed.Method))
		}
	}

	return n.buildRecord(url, parsed, text), nil
}

func (n *Normalizer) buildRecord(url string, parsed structuredArticle, rawText string) *core.ArticleRecord {
	now := time.Now().UTC()

	content := parsed.Content
	if content == "" {
		// Blank page and blank response; the invariant is that Content is
		// never empty, so fall back to whatever identifies the article.
		content = rawText
		if len(content) > stubContentChars {
			content = content[:stubContentChars]
		}
		if content == "" {
			content = "Content unavailable for " + url
		}
	}

	publishedAt := parsed.Date
	if publishedAt.IsZero() {
		publishedAt = now
	}

	return &core.ArticleRecord{
		Id:          core.NewArticleID(url, now),
		URL:         url,
		Title:       parsed.Title,
		Content:     content,
		Summary:     parsed.Summary,
		Source:      core.HostOf(url),
		PublishedAt: publishedAt,
		CreatedAt:   now,
	}
}
