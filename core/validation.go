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


package core

import (
	"fmt"
	"time"
)

// ValidateArticleRecord validates an ArticleRecord according to domain rules.
//
// Validation rules:
//   - URL must not be empty
//   - Content must not be empty (normalization always produces a body,
//     falling back to truncated raw text)
//   - CreatedAt must not be in the future
//
// NOT validated:
//   - Vector (can be empty until the record is indexed)
//   - Summary (optional)
//   - PublishedAt (many sources omit a usable publish date)
func ValidateArticleRecord(record *ArticleRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidArticle)
	}

	if record.URL == "" {
		return fmt.Errorf("%w: %w", ErrInvalidArticle, ErrEmptyURL)
	}

	if record.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidArticle, ErrEmptyContent)
	}

	if !IsValidTimestamp(record.CreatedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidArticle, ErrInvalidTimestamp)
	}

	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
