package news

// Stats summarises a snapshot for logs and the HTTP API.
type Stats struct {
	ArticleCount int            `json:"articleCount"`
	Breaking     int            `json:"breaking"`
	Categories   map[string]int `json:"categories"`
	Sources      map[string]int `json:"sources"`
}

// CountStats counts every category of an article, not only its primary one.
func CountStats(articles []Article) Stats {
	stats := Stats{
		ArticleCount: len(articles),
		Categories:   make(map[string]int),
		Sources:      make(map[string]int),
	}

	for _, article := range articles {
		if article.IsBreaking {
			stats.Breaking++
		}
		for _, category := range article.Categories {
			stats.Categories[category]++
		}
		stats.Sources[article.Source]++
	}

	return stats
}
