package api

import (
	"context"

	"github.com/lysyi3m/sitrep/app/feed"
	"github.com/lysyi3m/sitrep/app/snapshot"
	"github.com/lysyi3m/sitrep/app/tasks"
)

type RunnerInterface interface {
	RunOnce(ctx context.Context) (*tasks.RunResult, error)
	LastRun() (*tasks.RunResult, error)
}

var _ RunnerInterface = (*tasks.Scheduler)(nil)

type Handler struct {
	store   *snapshot.Store
	sources []feed.Source
	runner  RunnerInterface
	version string
}
