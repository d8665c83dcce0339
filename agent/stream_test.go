package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/eduardoibarr/news-article-agent/ai"
	"github.com/eduardoibarr/news-article-agent/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// streamRecorder collects every callback event for assertions.
type streamRecorder struct {
	tokens    []string
	results   []*core.QueryResult
	errs      []error
	completed int
}

func (r *streamRecorder) callbacks() StreamCallbacks {
	return StreamCallbacks{
		OnToken: func(token string) { r.tokens = append(r.tokens, token) },
		OnComplete: func(result *core.QueryResult) {
			r.completed++
			r.results = append(r.results, result)
		},
		OnError: func(err error) { r.errs = append(r.errs, err) },
	}
}

func TestProcessQueryStreaming_TokenOrderAndCompletion(t *testing.T) {
	a, idx, generator := newTestAgent(t, defaultStubNormalizer())
	ctx := context.Background()

	_, err := idx.Add(ctx, &core.ArticleRecord{
		URL:     "https://example.com/story",
		Title:   "A story",
		Content: "Something happened.",
	})
	require.NoError(t, err)

	generator.Response = "The answer arrives one word at a time."

	recorder := &streamRecorder{}
	a.ProcessQueryStreaming(ctx, "what happened?", recorder.callbacks())

	require.NotEmpty(t, recorder.tokens)
	require.Equal(t, 1, recorder.completed)
	assert.Empty(t, recorder.errs)

	// The completion carries exactly the concatenation of all tokens
	assert.Equal(t, strings.Join(recorder.tokens, ""), recorder.results[0].Answer)
	assert.Equal(t, "The answer arrives one word at a time.", recorder.results[0].Answer)
	assert.NotEmpty(t, recorder.results[0].Sources)
}

func TestProcessQueryStreaming_SingleDocumentMode(t *testing.T) {
	a, _, generator := newTestAgent(t, defaultStubNormalizer())

	generator.Response = "Streamed single document answer."

	recorder := &streamRecorder{}
	a.ProcessQueryStreaming(context.Background(),
		"tell me about https://example.com/wildfires", recorder.callbacks())

	require.Equal(t, 1, recorder.completed)
	require.Len(t, recorder.results[0].Sources, 1)
	assert.Equal(t, "https://example.com/wildfires", recorder.results[0].Sources[0].URL)
	assert.Equal(t, strings.Join(recorder.tokens, ""), recorder.results[0].Answer)
}

func TestProcessQueryStreaming_EmptyCorpus(t *testing.T) {
	a, _, generator := newTestAgent(t, defaultStubNormalizer())

	recorder := &streamRecorder{}
	a.ProcessQueryStreaming(context.Background(), "anything indexed?", recorder.callbacks())

	// Completion without any tokens, and no generation call
	assert.Empty(t, recorder.tokens)
	require.Equal(t, 1, recorder.completed)
	assert.Equal(t, noInfoAnswer, recorder.results[0].Answer)
	assert.Empty(t, recorder.results[0].Sources)
	assert.Equal(t, 0, generator.TotalCallCount())
}

func TestProcessQueryStreaming_ErrorCallback(t *testing.T) {
	normalizer := &stubNormalizer{err: errors.New("fetch timeout")}
	a, _, _ := newTestAgent(t, normalizer)

	recorder := &streamRecorder{}
	a.ProcessQueryStreaming(context.Background(),
		"read https://example.com/slow", recorder.callbacks())

	assert.Zero(t, recorder.completed)
	require.Len(t, recorder.errs, 1)
	assert.Contains(t, recorder.errs[0].Error(), "fetch timeout")
}

func TestProcessQueryStreaming_CancellationSuppressesWrites(t *testing.T) {
	a, idx, generator := newTestAgent(t, defaultStubNormalizer())
	ctx, cancel := context.WithCancel(context.Background())

	_, err := idx.Add(ctx, &core.ArticleRecord{
		URL:     "https://example.com/story",
		Title:   "A story",
		Content: "Something happened.",
	})
	require.NoError(t, err)

	// Cancel the consumer context partway through the stream
	generator.GenerateTextStreamingFunc = func(ctx context.Context, prompt string, onToken ai.TokenFunc) (string, error) {
		onToken("first ")
		onToken("second ")
		cancel()
		onToken("third")
		return "first second third", nil
	}

	recorder := &streamRecorder{}
	a.ProcessQueryStreaming(ctx, "what happened?", recorder.callbacks())

	// Tokens emitted before cancellation got through; nothing after
	assert.Equal(t, []string{"first ", "second "}, recorder.tokens)
	assert.Zero(t, recorder.completed)
	assert.Empty(t, recorder.errs)
}
