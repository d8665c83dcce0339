package core

import (
	"testing"
	"time"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "same content produces same ID", content: "test content"},
		{name: "empty string", content: ""},
		{name: "url content", content: "https://example.com/article|2026-01-02T10:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("content1")
	id2 := IDFromContent("content2")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestNewArticleID_ReingestProducesNewID(t *testing.T) {
	url := "https://example.com/a"
	first := NewArticleID(url, time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC))
	second := NewArticleID(url, time.Date(2026, 1, 2, 10, 0, 1, 0, time.UTC))

	if first == second {
		t.Errorf("NewArticleID() produced same ID for distinct ingestion times")
	}
}

func TestHostOf(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "https url", url: "https://www.bbc.com/news/articles/abc", want: "www.bbc.com"},
		{name: "with port", url: "http://localhost:8080/x", want: "localhost"},
		{name: "not a url", url: "plain text", want: "plain text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HostOf(tt.url); got != tt.want {
				t.Errorf("HostOf(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestArticleRecord_Ref(t *testing.T) {
	published := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	record := &ArticleRecord{
		Id:          42,
		URL:         "https://example.com/a",
		Title:       "Foo",
		Content:     "Bar baz.",
		PublishedAt: published,
	}

	ref := record.Ref()

	if ref.Id != 42 || ref.Title != "Foo" || ref.URL != "https://example.com/a" || !ref.Date.Equal(published) {
		t.Errorf("Ref() = %+v, want subset of record fields", ref)
	}
}
