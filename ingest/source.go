package ingest

import "io"

// URLSource yields article URLs one at a time. Next returns io.EOF when
// the sequence is exhausted. A source may be backed by a file, a queue
// consumer, or an in-memory list.
type URLSource interface {
	Next() (string, error)
}

// SliceSource yields URLs from an in-memory slice.
type SliceSource struct {
	urls []string
	pos  int
}

// NewSliceSource creates a source over the given URLs.
func NewSliceSource(urls ...string) *SliceSource {
	return &SliceSource{urls: urls}
}

// Next returns the next URL, or io.EOF when exhausted.
func (s *SliceSource) Next() (string, error) {
	if s.pos >= len(s.urls) {
		return "", io.EOF
	}
	url := s.urls[s.pos]
	s.pos++
	return url, nil
}
