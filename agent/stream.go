package agent

import (
	"context"
	"fmt"
	"sync"

	"github.com/eduardoibarr/news-article-agent/core"
)

// StreamCallbacks receives the incremental events of a streaming answer.
// Tokens arrive in generation order; exactly one of OnComplete or OnError
// follows the last token. Nil callbacks are skipped.
type StreamCallbacks struct {
	OnToken    func(token string)
	OnComplete func(result *core.QueryResult)
	OnError    func(err error)
}

// streamEmitter guards callback delivery: nothing is emitted after the
// consumer's context is cancelled or after a terminal event.
type streamEmitter struct {
	ctx context.Context
	cb  StreamCallbacks

	mu   sync.Mutex
	done bool
}

func newStreamEmitter(ctx context.Context, cb StreamCallbacks) *streamEmitter {
	return &streamEmitter{ctx: ctx, cb: cb}
}

func (e *streamEmitter) token(token string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.done || e.ctx.Err() != nil {
		return
	}
	if e.cb.OnToken != nil {
		e.cb.OnToken(token)
	}
}

func (e *streamEmitter) complete(result *core.QueryResult) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.done || e.ctx.Err() != nil {
		return
	}
	e.done = true
	if e.cb.OnComplete != nil {
		e.cb.OnComplete(result)
	}
}

func (e *streamEmitter) fail(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.done || e.ctx.Err() != nil {
		return
	}
	e.done = true
	if e.cb.OnError != nil {
		e.cb.OnError(err)
	}
}

// ProcessQueryStreaming answers a query incrementally. The answer's tokens
// are delivered through callbacks.OnToken as they are generated, followed
// by one OnComplete carrying the assembled result, or one OnError if any
// stage fails. After ctx is cancelled no further callbacks fire; the
// in-flight generation call is abandoned to its own completion.
func (a *Agent) ProcessQueryStreaming(ctx context.Context, query string, callbacks StreamCallbacks) {
	emitter := newStreamEmitter(ctx, callbacks)

	if articleURL := extractURL(query); articleURL != "" {
		a.logger.Info("processing URL-specific query with streaming", "url", articleURL)
		a.streamSingleDocument(ctx, emitter, articleURL, query)
	} else {
		a.logger.Info("processing general knowledge query with streaming", "query", query)
		a.streamFromCorpus(ctx, emitter, query)
	}
}

func (a *Agent) streamSingleDocument(ctx context.Context, emitter *streamEmitter, articleURL, query string) {
	record, prompt, err := a.prepareSingleDocument(ctx, articleURL, query)
	if err != nil {
		emitter.fail(err)
		return
	}

	answer, err := a.generator.GenerateTextStreaming(ctx, prompt, emitter.token)
	if err != nil {
		emitter.fail(fmt.Errorf("generating answer: %w", err))
		return
	}

	emitter.complete(&core.QueryResult{
		Answer:  answer,
		Sources: []core.SourceRef{record.Ref()},
	})
}

func (a *Agent) streamFromCorpus(ctx context.Context, emitter *streamEmitter, query string) {
	results, err := a.index.Query(ctx, query, corpusK)
	if err != nil {
		emitter.fail(fmt.Errorf("querying index: %w", err))
		return
	}

	// No retrieval hits: complete immediately, no generation call
	if len(results) == 0 {
		emitter.complete(&core.QueryResult{
			Answer:  noInfoAnswer,
			Sources: []core.SourceRef{},
		})
		return
	}

	prompt := buildCorpusPrompt(buildCorpusContext(results), query)
	answer, err := a.generator.GenerateTextStreaming(ctx, prompt, emitter.token)
	if err != nil {
		emitter.fail(fmt.Errorf("generating answer: %w", err))
		return
	}

	sources := make([]core.SourceRef, 0, len(results))
	for _, result := range results {
		sources = append(sources, result.Record.Ref())
	}

	emitter.complete(&core.QueryResult{Answer: answer, Sources: sources})
}
