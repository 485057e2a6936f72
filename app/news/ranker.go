package news

import (
	"slices"
	"time"
)

const (
	MaxArticles    = 150
	BreakingWindow = time.Hour
)

// Rank orders articles newest first (stable for equal timestamps), keeps the
// MaxArticles most recent and flags the ones published within BreakingWindow
// of now.
func Rank(articles []Article, now time.Time) Snapshot {
	ranked := slices.Clone(articles)
	slices.SortStableFunc(ranked, func(a, b Article) int {
		return b.PublishedAt.Compare(a.PublishedAt)
	})

	if len(ranked) > MaxArticles {
		ranked = ranked[:MaxArticles]
	}
	if ranked == nil {
		ranked = []Article{}
	}

	for i := range ranked {
		ranked[i].IsBreaking = IsBreaking(ranked[i].PublishedAt, now)
	}

	return Snapshot{
		LastUpdated:  now,
		ArticleCount: len(ranked),
		Articles:     ranked,
	}
}

func IsBreaking(publishedAt, now time.Time) bool {
	return now.Sub(publishedAt) < BreakingWindow
}
