package extract

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"
)

// ParseMethod records which fallback stage produced a structured article.
type ParseMethod int

const (
	// ParseStrict means the model response parsed as JSON directly.
	ParseStrict ParseMethod = iota
	// ParsePattern means JSON parsing failed and fields were recovered by
	// pattern matching against the free-text response.
	ParsePattern
	// ParseStub means both stages failed and a minimal stub was synthesized
	// from the raw page text.
	ParseStub
)

const (
	stubTitle        = "Untitled"
	stubContentChars = 1000
)

// structuredArticle is the result of the structuring step. Every parse path
// is total: parseStructured always returns a value with non-empty Content
// as long as fallbackText or fallbackTitle is non-empty.
type structuredArticle struct {
	Title   string
	Content string
	Summary string
	Date    time.Time
	Method  ParseMethod
}

// jsonArticle matches the JSON shape the extraction prompt requests.
type jsonArticle struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Summary string `json:"summary"`
	Date    string `json:"date"`
}

var (
	fencedJSONRe  = regexp.MustCompile("```json\\n([\\s\\S]*?)\\n```")
	bareObjectRe  = regexp.MustCompile(`\{[\s\S]*\}`)
	titlePattern  = regexp.MustCompile(`(?i)title[":]*\s*(.*?)[\n",]`)
	contentPatter = regexp.MustCompile(`(?i)content[":]*\s*([\s\S]*?)(\n\n|$)`)
	summaryPatter = regexp.MustCompile(`(?i)summary[":]*\s*([\s\S]*?)(\n\n|$)`)
)

// parseStructured converts an unreliable model response into a structured
// article. It attempts strict JSON parsing first, falls back to pattern-based
// field extraction, and finally synthesizes a stub from the raw page text.
// The generation capability is not contractually guaranteed to return
// well-formed output, so every stage must terminate with a value.
func parseStructured(response, fallbackTitle, fallbackText string) structuredArticle {
	if parsed, ok := parseStrictJSON(response); ok {
		return parsed
	}

	if parsed, ok := parseByPattern(response); ok {
		return parsed
	}

	return stubArticle(fallbackTitle, fallbackText)
}

func parseStrictJSON(response string) (structuredArticle, bool) {
	candidate := strings.TrimSpace(response)
	if m := fencedJSONRe.FindStringSubmatch(candidate); m != nil {
		candidate = m[1]
	} else if m := bareObjectRe.FindString(candidate); m != "" {
		candidate = m
	}
	candidate = repairJSON(strings.TrimSpace(candidate))

	var parsed jsonArticle
	if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
		return structuredArticle{}, false
	}
	if parsed.Content == "" {
		return structuredArticle{}, false
	}

	title := parsed.Title
	if title == "" {
		title = stubTitle
	}

	return structuredArticle{
		Title:   title,
		Content: parsed.Content,
		Summary: parsed.Summary,
		Date:    parseDate(parsed.Date),
		Method:  ParseStrict,
	}, true
}

func parseByPattern(response string) (structuredArticle, bool) {
	contentMatch := contentPatter.FindStringSubmatch(response)
	if contentMatch == nil || strings.TrimSpace(contentMatch[1]) == "" {
		return structuredArticle{}, false
	}

	parsed := structuredArticle{
		Content: strings.Trim(strings.TrimSpace(contentMatch[1]), `",`),
		Title:   stubTitle,
		Method:  ParsePattern,
	}

	if m := titlePattern.FindStringSubmatch(response); m != nil && strings.TrimSpace(m[1]) != "" {
		parsed.Title = strings.Trim(strings.TrimSpace(m[1]), `",`)
	}
	if m := summaryPatter.FindStringSubmatch(response); m != nil {
		parsed.Summary = strings.Trim(strings.TrimSpace(m[1]), `",`)
	}

	if parsed.Content == "" {
		return structuredArticle{}, false
	}

	return parsed, true
}

// stubArticle builds the last-resort record from the raw page text.
func stubArticle(fallbackTitle, fallbackText string) structuredArticle {
	title := strings.TrimSpace(fallbackTitle)
	if title == "" {
		title = stubTitle
	}

	content := strings.TrimSpace(fallbackText)
	if len(content) > stubContentChars {
		content = content[:stubContentChars]
	}

	return structuredArticle{
		Title:   title,
		Content: content,
		Method:  ParseStub,
	}
}

// parseDate accepts the formats models actually emit for dates.
func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "January 2, 2006", "2 January 2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
