package ingest

import "errors"

var (
	// ErrNormalizerRequired is returned when no normalizer is provided.
	ErrNormalizerRequired = errors.New("normalizer is required")

	// ErrIndexRequired is returned when no article index is provided.
	ErrIndexRequired = errors.New("article index is required")

	// ErrNoURLColumn is returned when a CSV file has no url column.
	ErrNoURLColumn = errors.New("csv file has no url column")
)
