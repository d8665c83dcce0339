package mock

import (
	"context"
	"strings"

	"github.com/eduardoibarr/news-article-agent/ai"
)

// MockGenerator is a test double for ai.Generator.
// It allows custom behavior injection via function fields.
type MockGenerator struct {
	// GenerateTextFunc is called by GenerateText if set.
	// If nil, uses default canned behavior.
	GenerateTextFunc func(ctx context.Context, prompt string) (string, error)

	// GenerateTextStreamingFunc is called by GenerateTextStreaming if set.
	// If nil, streams the default canned response word by word.
	GenerateTextStreamingFunc func(ctx context.Context, prompt string, onToken ai.TokenFunc) (string, error)

	// Response is the default canned completion. If empty, a fixed
	// placeholder answer is used.
	Response string

	callCount       int
	streamCallCount int
}

const defaultMockResponse = "This is a mock generated answer."

// NewMockGenerator creates a mock generator with default canned behavior.
// Note: Returns concrete type to allow test assertions via GetMockGenerator().
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// GenerateText returns the canned response, or delegates to GenerateTextFunc.
func (m *MockGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	m.callCount++

	if m.GenerateTextFunc != nil {
		return m.GenerateTextFunc(ctx, prompt)
	}

	return m.response(), nil
}

// GenerateTextStreaming streams the canned response word by word, calling
// onToken for each fragment before returning the full text.
func (m *MockGenerator) GenerateTextStreaming(ctx context.Context, prompt string, onToken ai.TokenFunc) (string, error) {
	m.streamCallCount++

	if m.GenerateTextStreamingFunc != nil {
		return m.GenerateTextStreamingFunc(ctx, prompt, onToken)
	}

	response := m.response()
	if onToken != nil {
		words := strings.SplitAfter(response, " ")
		for _, word := range words {
			if word == "" {
				continue
			}
			onToken(word)
		}
	}
	return response, nil
}

func (m *MockGenerator) response() string {
	if m.Response != "" {
		return m.Response
	}
	return defaultMockResponse
}

// CallCount returns the number of GenerateText calls.
func (m *MockGenerator) CallCount() int {
	return m.callCount
}

// StreamCallCount returns the number of GenerateTextStreaming calls.
func (m *MockGenerator) StreamCallCount() int {
	return m.streamCallCount
}

// TotalCallCount returns the number of calls across both methods.
func (m *MockGenerator) TotalCallCount() int {
	return m.callCount + m.streamCallCount
}

// Reset clears the call counts and custom functions.
func (m *MockGenerator) Reset() {
	m.callCount = 0
	m.streamCallCount = 0
	m.GenerateTextFunc = nil
	m.GenerateTextStreamingFunc = nil
	m.Response = ""
}
