package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/lysyi3m/sitrep/app/api"
	"github.com/lysyi3m/sitrep/app/briefing"
	"github.com/lysyi3m/sitrep/app/cfg"
	"github.com/lysyi3m/sitrep/app/feed"
	"github.com/lysyi3m/sitrep/app/notify"
	"github.com/lysyi3m/sitrep/app/snapshot"
	"github.com/lysyi3m/sitrep/app/tasks"
)

// A pipeline run waits at most this long for all feeds and the snapshot write.
const runTimeout = 5 * time.Minute

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if appCfg == nil {
		return
	}

	setupLogger(appCfg.Debug)

	slog.Info("Starting SITREP", "version", appCfg.Version, "command", string(appCfg.Command))

	switch appCfg.Command {
	case cfg.CommandServe:
		err = serve()
	case cfg.CommandBrief:
		brief()
	default:
		err = fetch()
	}

	if err != nil {
		slog.Error("Fatal error", "error", err)
		os.Exit(1)
	}
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func fetch() error {
	pipeline, _, err := newPipeline(cfg.Get())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	_, err = pipeline.Run(ctx)
	return err
}

func serve() error {
	appCfg := cfg.Get()

	pipeline, sources, err := newPipeline(appCfg)
	if err != nil {
		return err
	}

	scheduler, err := tasks.NewScheduler(appCfg.Schedule, pipeline, runTimeout)
	if err != nil {
		return err
	}

	scheduler.Start(appCfg.RunOnStart)

	store := snapshot.NewStore(appCfg.DataDir)
	handler := api.NewHandler(store, sources, scheduler, appCfg.Version)
	server := api.NewServer(handler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: runTimeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server started", "port", appCfg.Port, "schedule", appCfg.Schedule, "refresh_api", appCfg.APIAccessKey != "")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	var serveErr error
	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case serveErr = <-serverErrChan:
	}

	// Cancels any run, including one started through the API, so the
	// refresh request returns before the server drains.
	scheduler.Stop()
	slog.Info("Scheduler stopped")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	return serveErr
}

// brief never fails the process: a missing key, snapshot or model answer
// only means there is no new briefing.
func brief() {
	appCfg := cfg.Get()

	client, err := briefing.NewClient(appCfg.BriefingProvider, appCfg.BriefingModel, appCfg.AnthropicAPIKey, appCfg.OpenAIAPIKey)
	if err != nil {
		slog.Warn("Skipping briefing generation", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	generator := briefing.NewGenerator(snapshot.NewStore(appCfg.DataDir), client, appCfg.BriefingTop)
	if _, err := generator.Run(ctx); err != nil {
		slog.Warn("Briefing generation failed", "error", err)
	}
}

func newPipeline(appCfg *cfg.Cfg) (*tasks.Pipeline, []feed.Source, error) {
	sources, err := feed.LoadRegistry(appCfg.FeedsFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load feed registry: %w", err)
	}

	var notifier tasks.Notifier
	if appCfg.PublishersFile != "" {
		configs, err := notify.LoadConfig(appCfg.PublishersFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load publishers: %w", err)
		}
		publishers, err := notify.BuildPublishers(context.Background(), configs)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("Publishers configured", "count", len(publishers))
		notifier = notify.NewDispatcher(publishers)
	}

	fetcher := tasks.NewFetcher(
		&http.Client{},
		feed.NewParser(),
		feed.NewCategorizer(),
		feed.NewContentExtractor(),
		appCfg.UserAgent,
		appCfg.FetchTimeout,
	)

	return tasks.NewPipeline(sources, fetcher, snapshot.NewStore(appCfg.DataDir), notifier), sources, nil
}
