package openai

import (
	"context"
	"log/slog"

	"github.com/eduardoibarr/news-article-agent/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Generator implements ai.Generator using OpenAI-compatible chat APIs.
type Generator struct {
	client llms.Model
	logger *slog.Logger
}

// newGenerator is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newGenerator(config *ai.Config) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Create OpenAI client configured for chat/generation
	client, err := openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken(config.Token),
		openai.WithModel(config.ChatModel),
	)
	if err != nil {
		return nil, err
	}

	return &Generator{
		client: client,
		logger: slog.Default().With("component", "openai-generator"),
	}, nil
}

// NewGenerator creates a new generator using the provided configuration.
//
// Returns ai.Generator interface to enforce abstraction.
func NewGenerator(config *ai.Config) (ai.Generator, error) {
	return newGenerator(config)
}

// GenerateText produces a completion for the given prompt.
func (g *Generator) GenerateText(ctx context.Context, prompt string) (string, error) {
	g.logger.Debug("generating text", "promptLength", len(prompt))

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(prompt),
			},
		},
	}

	response, err := g.client.GenerateContent(ctx, content)
	if err != nil {
		g.logger.Error("failed to generate content", "err", err)
		return "", err
	}

	if len(response.Choices) < 1 {
		g.logger.Debug("no choices returned from model")
		return "", nil
	}

	return response.Choices[0].Content, nil
}

// GenerateTextStreaming produces a completion incrementally. Each chunk is
// delivered to onToken before the call returns; the returned string is the
// concatenation of all chunks.
func (g *Generator) GenerateTextStreaming(ctx context.Context, prompt string, onToken ai.TokenFunc) (string, error) {
	g.logger.Debug("generating text with streaming", "promptLength", len(prompt))

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(prompt),
			},
		},
	}

	var assembled []byte
	response, err := g.client.GenerateContent(ctx, content,
		llms.WithStreamingFunc(func(ctx context.Context, chunk []byte) error {
			assembled = append(assembled, chunk...)
			if onToken != nil {
				onToken(string(chunk))
			}
			return nil
		}),
	)
	if err != nil {
		g.logger.Error("failed to generate streaming content", "err", err)
		return "", err
	}

	// Some backends deliver the full text only in the final response.
	if len(assembled) == 0 && len(response.Choices) > 0 {
		return response.Choices[0].Content, nil
	}

	return string(assembled), nil
}
