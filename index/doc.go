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


// Package index provides similarity search over stored article records.
//
// The Index type wraps an article repository and an embedder:
//   - Add embeds an article's content and persists it synchronously
//   - Query embeds free text and returns the nearest stored articles
//   - SearchTerm matches articles by keyword with stop-word filtering
//
// A fresh index is seeded with a single placeholder record so the
// similarity engine never operates on an empty corpus; queries filter
// the placeholder out.
package index
