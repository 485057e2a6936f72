package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/lysyi3m/sitrep/app/feed"
	"github.com/lysyi3m/sitrep/app/news"
	"github.com/lysyi3m/sitrep/app/snapshot"
)

type Notifier interface {
	SnapshotPublished(ctx context.Context, snap news.Snapshot, archiveDate string)
}

type RunResult struct {
	ID           string
	Snapshot     news.Snapshot
	ArchiveDate  string
	Feeds        int
	FailedFeeds  int
	RawArticles  int
	Deduplicated int
	Stats        news.Stats
	Duration     time.Duration
}

// Pipeline is one end-to-end ingestion run: fetch every source, deduplicate,
// rank and publish the snapshot.
type Pipeline struct {
	sources  []feed.Source
	fetcher  *Fetcher
	store    *snapshot.Store
	notifier Notifier
	now      func() time.Time
}

// NewPipeline accepts a nil notifier.
func NewPipeline(sources []feed.Source, fetcher *Fetcher, store *snapshot.Store, notifier Notifier) *Pipeline {
	return &Pipeline{
		sources:  sources,
		fetcher:  fetcher,
		store:    store,
		notifier: notifier,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (p *Pipeline) Sources() []feed.Source {
	return slices.Clone(p.sources)
}

// Run fails when it is cancelled before the fetch completes or when the
// snapshot cannot be published. Feeds that fail are logged and contribute
// nothing, so a run where every feed fails still publishes an empty snapshot.
// A cancelled run leaves the published snapshot untouched.
func (p *Pipeline) Run(ctx context.Context) (*RunResult, error) {
	task := NewTask(TaskTypeRunPipeline, "")
	task.Start()

	slog.Info("Run started", "id", task.GetID(), "feeds", len(p.sources))

	results := p.fetcher.FetchAll(ctx, p.sources)
	if err := ctx.Err(); err != nil {
		slog.Warn("Run aborted", "id", task.GetID(), "error", err)
		return nil, fmt.Errorf("run aborted: %w", err)
	}

	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
		}
	}

	articles := Articles(results)
	deduplicated := news.Deduplicate(articles)
	snap := news.Rank(deduplicated, p.now())

	archiveDate, err := p.store.Write(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to publish snapshot: %w", err)
	}

	if p.notifier != nil {
		p.notifier.SnapshotPublished(ctx, snap, archiveDate)
	}

	run := &RunResult{
		ID:           task.GetID(),
		Snapshot:     snap,
		ArchiveDate:  archiveDate,
		Feeds:        len(p.sources),
		FailedFeeds:  failed,
		RawArticles:  len(articles),
		Deduplicated: len(deduplicated),
		Stats:        news.CountStats(snap.Articles),
		Duration:     task.GetDuration(),
	}

	slog.Info("Run completed",
		"id", run.ID,
		"duration", run.Duration,
		"feeds", run.Feeds,
		"failed", run.FailedFeeds,
		"raw", run.RawArticles,
		"deduplicated", run.Deduplicated,
		"published", run.Snapshot.ArticleCount,
		"breaking", run.Stats.Breaking,
		"archive_date", run.ArchiveDate)
	slog.Debug("Run statistics", "id", run.ID, "categories", run.Stats.Categories, "sources", run.Stats.Sources)

	return run, nil
}
