package core

import (
	"encoding/binary"
	"net/url"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated from content hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// Identical content always produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// NewArticleID generates an ID for an article normalized at the given time.
// The insertion timestamp is mixed in so that re-ingesting the same URL
// produces a new record instead of overwriting the old one.
func NewArticleID(articleURL string, at time.Time) ID {
	return IDFromContent(articleURL + "|" + at.UTC().Format(time.RFC3339Nano))
}

// ArticleRecord is the canonical unit of stored knowledge. Records are
// created by content normalization and are immutable once stored; only the
// derived Vector may be rewritten by offline reembedding.
type ArticleRecord struct {
	Id          ID
	URL         string
	Title       string
	Content     string
	Summary     string // optional, may be empty
	Source      string // host/domain the article came from
	PublishedAt time.Time
	CreatedAt   time.Time // record insertion time
	Vector      []float32 // embedding for semantic search (populated at index time)
}

// HostOf returns the hostname of a URL, or the raw string if it does not parse.
func HostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return rawURL
	}
	return u.Hostname()
}

// SourceRef identifies an article that contributed to an answer.
type SourceRef struct {
	Id    ID
	Title string
	URL   string
	Date  time.Time
}

// Ref returns a SourceRef for the record.
func (a *ArticleRecord) Ref() SourceRef {
	return SourceRef{
		Id:    a.Id,
		Title: a.Title,
		URL:   a.URL,
		Date:  a.PublishedAt,
	}
}

// QueryResult is the transient outcome of answering a query.
// Sources are ordered by retrieval relevance.
type QueryResult struct {
	Answer  string
	Sources []SourceRef
}

// SearchResult pairs an article with its similarity score.
type SearchResult struct {
	Record *ArticleRecord
	Score  float32
}
