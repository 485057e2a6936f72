package briefing

import (
	"fmt"
	"strings"

	"github.com/lysyi3m/sitrep/app/news"
)

const promptTemplate = `You are a geopolitical analyst writing a daily intelligence briefing. Based on these top headlines, write a concise 3-paragraph morning briefing covering the most significant developments. Be factual, analytical, and direct. No fluff.

Headlines:
%s

Also provide the top 5 stories with a one-sentence significance note for each.

Respond in JSON format:
{
  "summary": "Three paragraph briefing...",
  "topStories": [
    { "headline": "...", "significance": "..." }
  ]
}`

func BuildPrompt(articles []news.Article) string {
	var sb strings.Builder
	for i, a := range articles {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%d. [%s] %s", i+1, a.Source, a.Title)
	}
	return fmt.Sprintf(promptTemplate, sb.String())
}

// cleanJSONResponse strips code fences and any prose around the outermost
// JSON object.
func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}
