package extract

import "fmt"

const extractionPromptTemplate = `You are a helpful assistant that extracts and cleans news article content.

Below is raw text content from a news article page. Extract and structure the following information:
1. The article title
2. The main article content (cleaned and well-formatted)
3. A brief summary of the article (2-3 sentences)
4. The publication date if it is stated in the text

Format your response as JSON with the following fields:
- title: The article's title
- content: The cleaned article content
- summary: A brief summary of the article
- date: The publication date in YYYY-MM-DD format, or an empty string if unknown

Output ONLY valid JSON. Do not include any preamble, explanation, greeting,
or acknowledgment. Start your response directly with the opening brace { and
end with the closing brace }.

Raw content:
%s`

// maxPromptChars bounds the raw text handed to the model to stay under
// typical token limits.
const maxPromptChars = 15000

func buildExtractionPrompt(rawText string) string {
	if len(rawText) > maxPromptChars {
		rawText = rawText[:maxPromptChars]
	}
	return fmt.Sprintf(extractionPromptTemplate, rawText)
}
