package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// The same embedder must be used for documents and queries so that both live
// in the same embedding space. Implementations must be thread-safe for
// concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// TokenFunc receives one generated fragment. Fragments arrive in generation
// order and the streaming call returns only after the last fragment.
type TokenFunc func(token string)

// Generator produces text from a prompt using a language model.
// Implementations must be thread-safe for concurrent use.
type Generator interface {
	// GenerateText produces a completion for the given prompt.
	// Returns an error if the generation fails.
	GenerateText(ctx context.Context, prompt string) (string, error)

	// GenerateTextStreaming produces a completion incrementally, calling
	// onToken for each fragment before returning the full text. The full
	// text equals the concatenation of all delivered fragments.
	GenerateTextStreaming(ctx context.Context, prompt string, onToken TokenFunc) (string, error)
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
// A provider creates and manages Embedder and Generator instances, ensuring
// they share configuration and resources appropriately.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Generator returns the text generation service.
	// The returned Generator is safe for concurrent use.
	Generator() Generator

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
