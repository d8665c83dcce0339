// Package ingest feeds article URLs through normalization into the index.
//
// Batches run on a bounded worker pool; items are independent, so one
// failure never aborts the rest. Sites that block automated fetching are
// degraded rather than dropped: the pipeline stores a stub record so the
// URL is still represented in the index.
//
// URLs come from a URLSource, which abstracts over an in-memory list, a
// CSV file, or any queue consumer that can yield URLs one at a time.
package ingest
