package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

var (
	ErrRunInProgress    = errors.New("run already in progress")
	ErrSchedulerStopped = errors.New("scheduler stopped")
)

type Runner interface {
	Run(ctx context.Context) (*RunResult, error)
}

// Scheduler triggers the pipeline on a cron schedule. At most one run is in
// flight; a tick that arrives during a run is skipped.
type Scheduler struct {
	cron    *cron.Cron
	runner  Runner
	timeout time.Duration
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	running sync.Mutex

	mu      sync.RWMutex
	lastRun *RunResult
	lastErr error
}

func NewScheduler(spec string, runner Runner, timeout time.Duration) (*Scheduler, error) {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Scheduler{
		cron:    cron.New(),
		runner:  runner,
		timeout: timeout,
		ctx:     ctx,
		cancel:  cancel,
	}

	if _, err := s.cron.AddFunc(spec, s.scheduledRun); err != nil {
		cancel()
		return nil, fmt.Errorf("invalid schedule %q: %w", spec, err)
	}

	return s, nil
}

func (s *Scheduler) Start(runOnStart bool) {
	s.cron.Start()

	if runOnStart {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.scheduledRun()
		}()
	}
}

// Stop cancels a run in progress, scheduled or manual, and waits for it to
// return. A cancelled run does not publish.
func (s *Scheduler) Stop() {
	s.cancel()
	<-s.cron.Stop().Done()
	s.wg.Wait()
}

// RunOnce starts a run immediately unless one is already in progress. The
// run ends early when ctx is done or the scheduler is stopped.
func (s *Scheduler) RunOnce(ctx context.Context) (*RunResult, error) {
	if s.ctx.Err() != nil {
		return nil, ErrSchedulerStopped
	}
	if !s.running.TryLock() {
		return nil, ErrRunInProgress
	}
	defer s.running.Unlock()

	s.wg.Add(1)
	defer s.wg.Done()

	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	stop := context.AfterFunc(s.ctx, cancel)
	defer stop()

	result, err := s.runner.Run(runCtx)

	s.mu.Lock()
	s.lastErr = err
	if err == nil {
		s.lastRun = result
	}
	s.mu.Unlock()

	return result, err
}

// LastRun returns the last successful run and the error of the most recent
// attempt, if it failed.
func (s *Scheduler) LastRun() (*RunResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRun, s.lastErr
}

func (s *Scheduler) scheduledRun() {
	if s.ctx.Err() != nil {
		return
	}

	_, err := s.RunOnce(s.ctx)
	switch {
	case errors.Is(err, ErrSchedulerStopped):
	case errors.Is(err, ErrRunInProgress):
		slog.Warn("Previous run still in progress, skipping scheduled run")
	case err != nil:
		slog.Error("Scheduled run failed", "error", err)
	}
}
