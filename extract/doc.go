// Package extract implements content normalization: fetching raw HTML for a
// URL and converting it into a structured article record.
//
// Fetching uses a randomized browser-like request identity with a bounded
// timeout and redirect limit. Failures are classified (forbidden, not found,
// rate limited, unreachable) so callers can apply per-class policies.
//
// Structuring hands the cleaned page text to the generation capability and
// parses the response permissively: strict JSON first, pattern-based field
// recovery second, and a minimal stub record last. A normalization never
// fails past the fetch step.
package extract
