package agent

import "errors"

var (
	// ErrIndexRequired is returned when no article index is provided.
	ErrIndexRequired = errors.New("article index is required")

	// ErrNormalizerRequired is returned when no normalizer is provided.
	ErrNormalizerRequired = errors.New("normalizer is required")

	// ErrGeneratorRequired is returned when no generator is provided.
	ErrGeneratorRequired = errors.New("generator is required")

	// ErrInvalidURL is returned by Summarize for a malformed URL.
	ErrInvalidURL = errors.New("invalid URL format")
)
