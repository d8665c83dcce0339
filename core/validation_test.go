package core

import (
	"errors"
	"testing"
	"time"
)

func TestValidateArticleRecord(t *testing.T) {
	validTime := time.Now().Add(-1 * time.Hour)
	futureTime := time.Now().Add(1 * time.Hour)

	tests := []struct {
		name    string
		record  *ArticleRecord
		wantErr error
	}{
		{
			name: "valid record",
			record: &ArticleRecord{
				Id:        1,
				URL:       "https://example.com/a",
				Title:     "Foo",
				Content:   "Bar baz.",
				CreatedAt: validTime,
			},
			wantErr: nil,
		},
		{
			name: "valid record with empty vector",
			record: &ArticleRecord{
				Id:        1,
				URL:       "https://example.com/a",
				Content:   "Body",
				CreatedAt: validTime,
				Vector:    nil,
			},
			wantErr: nil,
		},
		{
			name: "valid record with empty summary",
			record: &ArticleRecord{
				Id:        1,
				URL:       "https://example.com/a",
				Content:   "Body",
				Summary:   "",
				CreatedAt: validTime,
			},
			wantErr: nil,
		},
		{
			name: "valid record with zero publish date",
			record: &ArticleRecord{
				Id:        1,
				URL:       "https://example.com/a",
				Content:   "Body",
				CreatedAt: validTime,
			},
			wantErr: nil,
		},
		{
			name:    "nil record",
			record:  nil,
			wantErr: ErrInvalidArticle,
		},
		{
			name: "empty url",
			record: &ArticleRecord{
				Id:        1,
				Content:   "Body",
				CreatedAt: validTime,
			},
			wantErr: ErrEmptyURL,
		},
		{
			name: "empty content",
			record: &ArticleRecord{
				Id:        1,
				URL:       "https://example.com/a",
				Content:   "",
				CreatedAt: validTime,
			},
			wantErr: ErrEmptyContent,
		},
		{
			name: "future created at",
			record: &ArticleRecord{
				Id:        1,
				URL:       "https://example.com/a",
				Content:   "Body",
				CreatedAt: futureTime,
			},
			wantErr: ErrInvalidTimestamp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateArticleRecord(tt.record)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateArticleRecord() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateArticleRecord() = %v, want wrapping %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsValidTimestamp(t *testing.T) {
	if !IsValidTimestamp(time.Now().Add(-time.Minute)) {
		t.Error("past timestamp should be valid")
	}
	if IsValidTimestamp(time.Now().Add(time.Hour)) {
		t.Error("future timestamp should be invalid")
	}
}
