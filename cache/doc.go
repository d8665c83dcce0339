// Package cache provides an in-memory TTL cache used in front of
// expensive retrieval and generation calls.
//
// Entries expire lazily: a lookup past the deadline removes the entry and
// reports a miss. There is no background sweeper, so an idle cache holds
// stale entries until they are touched or Clear is called.
package cache
