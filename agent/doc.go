// Package agent answers natural-language queries about news articles.
//
// Queries containing an absolute URL are answered from that one document:
// the article is fetched, normalized, stored best-effort, and the answer
// is grounded in its content. All other queries are answered from the
// article index: the nearest records form a bounded context for a single
// generation call, and zero hits short-circuit to a fixed no-information
// answer without invoking the model.
//
// The non-streaming entry points never fail: any internal error degrades
// into an answer explaining the problem. The streaming entry point
// surfaces failures through an error callback instead, since tokens may
// already have been delivered.
package agent
