// Package reembed regenerates the embedding vectors of stored articles.
//
// The index and query sides of the system must share one embedding space,
// so switching embedding models invalidates every stored vector. This
// package rebuilds them offline: articles are read in batches, embedded
// with retry and exponential backoff, normalized, and written back with
// their other fields untouched.
package reembed
