package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// Containers whose text is preferred over the whole body. Mirrors the common
// semantic markup of news sites.
var articleContainers = map[string]bool{
	"article": true,
	"main":    true,
}

var articleContainerAttrs = map[string]bool{
	"article": true,
	"content": true,
	"main":    true,
}

// Tags removed entirely before text extraction.
var strippedTags = map[string]bool{
	"script":   true,
	"style":    true,
	"meta":     true,
	"link":     true,
	"noscript": true,
}

// ExtractText parses HTML and returns the page title and the visible text.
// Text inside semantic article containers (article, main, or elements whose
// id/class mentions article/content/main) is preferred; if none is present
// the whole body text is used.
func ExtractText(rawHTML string) (title, text string) {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		// html.Parse is extremely tolerant; a hard failure means the input
		// is not HTML at all, so return it as plain text.
		return "", collapseWhitespace(rawHTML)
	}

	title = findTitle(doc)

	var articleText strings.Builder
	collectText(doc, &articleText, true)

	content := collapseWhitespace(articleText.String())
	if content == "" {
		var bodyText strings.Builder
		collectText(doc, &bodyText, false)
		content = collapseWhitespace(bodyText.String())
	}

	return title, content
}

// FlattenForPrompt renders the extracted title and text in the layout the
// structuring prompt expects.
func FlattenForPrompt(title, text string) string {
	return "Title: " + title + "\n\nContent: " + text
}

func findTitle(doc *html.Node) string {
	var title string
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if title != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "title" && n.FirstChild != nil {
			title = strings.TrimSpace(n.FirstChild.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(doc)
	return title
}

// collectText walks the tree appending text nodes. When articleOnly is set,
// text is collected only beneath recognized article containers.
func collectText(doc *html.Node, sb *strings.Builder, articleOnly bool) {
	var traverse func(n *html.Node, inArticle bool)
	traverse = func(n *html.Node, inArticle bool) {
		if n.Type == html.ElementNode {
			if strippedTags[n.Data] || n.Data == "head" {
				return
			}
			if isArticleContainer(n) {
				inArticle = true
			}
		}

		if n.Type == html.TextNode && (!articleOnly || inArticle) {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c, inArticle)
		}
	}
	traverse(doc, false)
}

func isArticleContainer(n *html.Node) bool {
	if articleContainers[n.Data] {
		return true
	}
	for _, attr := range n.Attr {
		if attr.Key != "id" && attr.Key != "class" {
			continue
		}
		value := strings.ToLower(attr.Val)
		for name := range articleContainerAttrs {
			if strings.Contains(value, name) {
				return true
			}
		}
	}
	return false
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
