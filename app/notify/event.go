package notify

import (
	"time"

	"github.com/google/uuid"

	"github.com/lysyi3m/sitrep/app/news"
)

const EventSnapshotPublished = "snapshot.published"

type Event struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	LastUpdated   time.Time `json:"lastUpdated"`
	ArticleCount  int       `json:"articleCount"`
	BreakingCount int       `json:"breakingCount"`
	ArchiveDate   string    `json:"archiveDate"`
}

func NewSnapshotEvent(snap news.Snapshot, archiveDate string) Event {
	breaking := 0
	for _, article := range snap.Articles {
		if article.IsBreaking {
			breaking++
		}
	}

	return Event{
		ID:            uuid.NewString(),
		Type:          EventSnapshotPublished,
		LastUpdated:   snap.LastUpdated,
		ArticleCount:  snap.ArticleCount,
		BreakingCount: breaking,
		ArchiveDate:   archiveDate,
	}
}
