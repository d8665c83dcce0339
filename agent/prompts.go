package agent

import (
	"fmt"
	"strings"
	"time"

	"github.com/eduardoibarr/news-article-agent/core"
)

const singleDocPromptTemplate = `You are a knowledgeable assistant that provides information about news articles.

ARTICLE INFORMATION:
Title: %s
Content: %s
URL: %s
Date: %s

USER QUERY:
%s

Provide a comprehensive, informative, and accurate response to the user's query based on the article information above.
Be detailed but concise. If the article doesn't contain information to answer the query, say so clearly.`

const corpusPromptTemplate = `You are a knowledgeable news assistant that provides information based on recent news articles.

CONTEXT FROM RELEVANT ARTICLES:
%s

USER QUERY:
%s

Provide a comprehensive, informative, and accurate response to the user's query based on the articles provided.
Only use information from the articles provided as context. If the articles don't contain enough information to fully answer the query, say so clearly.
Synthesize information from multiple articles if relevant. Be detailed but concise.`

const summaryPromptTemplate = `You are a professional news summarizer.

ARTICLE INFORMATION:
Title: %s
Content: %s
URL: %s
Date: %s

Task: Create a concise, informative summary of the article above.
Include the main points, key facts, and any important context.
Keep the summary to 3-5 paragraphs.`

// contextArticleChars bounds each article's contribution to the corpus
// context so the prompt stays within model limits.
const contextArticleChars = 1000

func buildSingleDocPrompt(record *core.ArticleRecord, query string) string {
	return fmt.Sprintf(singleDocPromptTemplate,
		record.Title, record.Content, record.URL, formatDate(record.PublishedAt), query)
}

func buildCorpusPrompt(context, query string) string {
	return fmt.Sprintf(corpusPromptTemplate, context, query)
}

func buildSummaryPrompt(record *core.ArticleRecord) string {
	return fmt.Sprintf(summaryPromptTemplate,
		record.Title, record.Content, record.URL, formatDate(record.PublishedAt))
}

// buildCorpusContext concatenates the retrieved records into a bounded
// grounding context, one numbered block per article.
func buildCorpusContext(results []*core.SearchResult) string {
	blocks := make([]string, 0, len(results))
	for i, result := range results {
		record := result.Record

		content := record.Content
		if len(content) > contextArticleChars {
			content = content[:contextArticleChars] + " ..."
		}

		blocks = append(blocks, fmt.Sprintf(
			"ARTICLE %d:\nTitle: %s\nContent: %s\nURL: %s\nDate: %s",
			i+1, orUnknown(record.Title), content, orUnknown(record.URL),
			formatDate(record.PublishedAt)))
	}
	return strings.Join(blocks, "\n\n")
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}
	return t.Format("2006-01-02")
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
