package news

import "strings"

const dedupKeyWords = 8

// DedupKey normalizes a title to its first eight lower-case alphanumeric
// words. Distinct stories sharing that prefix collapse into one.
func DedupKey(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == ' ' {
			b.WriteRune(r)
		}
	}

	words := strings.Fields(b.String())
	if len(words) > dedupKeyWords {
		words = words[:dedupKeyWords]
	}
	return strings.Join(words, " ")
}

// Deduplicate keeps the first article for every dedup key, preserving input
// order among the survivors.
func Deduplicate(articles []Article) []Article {
	seen := make(map[string]struct{}, len(articles))
	out := make([]Article, 0, len(articles))

	for _, article := range articles {
		key := DedupKey(article.Title)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, article)
	}

	return out
}
