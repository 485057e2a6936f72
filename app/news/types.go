package news

import "time"

type Article struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Source          string    `json:"source"`
	URL             string    `json:"url"`
	PublishedAt     time.Time `json:"publishedAt"`
	Categories      []string  `json:"categories"`
	PrimaryCategory string    `json:"primaryCategory"`
	Snippet         string    `json:"snippet"`
	IsBreaking      bool      `json:"isBreaking"`
}

// Snapshot is the published result of one pipeline run.
type Snapshot struct {
	LastUpdated  time.Time `json:"lastUpdated"`
	ArticleCount int       `json:"articleCount"`
	Articles     []Article `json:"articles"`
}
