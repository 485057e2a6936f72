package briefing

import (
	"context"
	"time"
)

type TopStory struct {
	Headline     string `json:"headline"`
	Significance string `json:"significance"`
}

// Briefing is the daily summary written next to the snapshot.
type Briefing struct {
	Summary     string     `json:"summary"`
	TopStories  []TopStory `json:"topStories"`
	Date        string     `json:"date"`
	GeneratedAt time.Time  `json:"generatedAt"`
}

type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
	ModelName() string
}
