// Copyright 2026 News Article Agent Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package extract

import (
	"errors"
	"fmt"
)

// FetchKind classifies a fetch failure. Callers branch on it: forbidden
// fetches get a stub record during ingestion, everything else is a per-item
// failure.
type FetchKind int

const (
	// FetchUnreachable indicates a network-level failure (DNS, timeout,
	// connection refused) or an unclassified HTTP status.
	FetchUnreachable FetchKind = iota
	// FetchForbidden indicates the site is blocking automated access (401/403).
	FetchForbidden
	// FetchNotFound indicates the page does not exist (404).
	FetchNotFound
	// FetchRateLimited indicates too many requests (429).
	FetchRateLimited
)

// String returns a human-readable name for the fetch classification.
func (k FetchKind) String() string {
	switch k {
	case FetchForbidden:
		return "forbidden"
	case FetchNotFound:
		return "not found"
	case FetchRateLimited:
		return "rate limited"
	default:
		return "unreachable"
	}
}

// FetchError is a classified failure to retrieve a URL.
type FetchError struct {
	Kind   FetchKind
	URL    string
	Status int // HTTP status, 0 for network-level failures
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: %s (status %d)", e.URL, e.Kind, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Kind)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsForbidden reports whether err is a FetchError classified as forbidden.
func IsForbidden(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Kind == FetchForbidden
}

var (
	// ErrInvalidURL is returned when a URL does not parse or uses an
	// unsupported scheme.
	ErrInvalidURL = errors.New("invalid URL")

	// ErrNoContent indicates the structuring step produced no usable content.
	// It never escapes Normalize; the stub fallback absorbs it.
	ErrNoContent = errors.New("no usable content extracted")

	// ErrFetcherRequired is returned when a fetcher is not provided.
	ErrFetcherRequired = errors.New("fetcher required")

	// ErrGeneratorRequired is returned when a generator is not provided.
	ErrGeneratorRequired = errors.New("generator required")
)
