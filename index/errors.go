package index

import "errors"

var (
	// ErrIndexUnavailable is returned when an operation requires an
	// initialized index and Initialize has not succeeded.
	ErrIndexUnavailable = errors.New("index not initialized")

	// ErrRepositoryRequired is returned when no article repository is provided.
	ErrRepositoryRequired = errors.New("article repository is required")

	// ErrEmbedderRequired is returned when no embedder is provided.
	ErrEmbedderRequired = errors.New("embedder is required")
)
