package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lysyi3m/sitrep/app/briefing"
	"github.com/lysyi3m/sitrep/app/feed"
	"github.com/lysyi3m/sitrep/app/news"
	"github.com/lysyi3m/sitrep/app/snapshot"
	"github.com/lysyi3m/sitrep/app/tasks"
)

func NewHandler(store *snapshot.Store, sources []feed.Source, runner RunnerInterface, version string) *Handler {
	return &Handler{
		store:   store,
		sources: sources,
		runner:  runner,
		version: version,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   h.version,
		"feeds":     len(h.sources),
	}

	if h.runner != nil {
		lastRun, lastErr := h.runner.LastRun()
		if lastRun != nil {
			health["last_run"] = runSummary(lastRun)
		}
		if lastErr != nil {
			health["last_error"] = lastErr.Error()
		}
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetNews(c *gin.Context) {
	snap, err := h.store.ReadCurrent()
	if err != nil {
		h.snapshotError(c, "get_news", err)
		return
	}

	c.Header("X-Article-Count", strconv.Itoa(snap.ArticleCount))
	c.Header("X-Last-Updated", snap.LastUpdated.UTC().Format(time.RFC3339))
	c.JSON(http.StatusOK, snap)
}

func (h *Handler) ListArchive(c *gin.Context) {
	dates, err := h.store.ListArchives()
	if err != nil {
		slog.Error("Snapshot store error", "operation", "list_archive", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list archive"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"dates": dates,
		"total": len(dates),
	})
}

func (h *Handler) GetArchive(c *gin.Context) {
	date := strings.TrimSuffix(c.Param("date"), ".json")

	snap, err := h.store.ReadArchive(date)
	if err != nil {
		h.snapshotError(c, "get_archive", err)
		return
	}

	c.JSON(http.StatusOK, snap)
}

func (h *Handler) GetBriefing(c *gin.Context) {
	var b briefing.Briefing
	if err := h.store.ReadJSON(snapshot.BriefingFile, &b); err != nil {
		h.snapshotError(c, "get_briefing", err)
		return
	}

	c.JSON(http.StatusOK, b)
}

func (h *Handler) ListCategories(c *gin.Context) {
	categories := feed.Categories()

	out := make([]map[string]interface{}, 0, len(categories))
	for _, category := range categories {
		out = append(out, map[string]interface{}{
			"key":   category.Key,
			"label": category.Label,
			"color": category.Color,
		})
	}

	c.JSON(http.StatusOK, gin.H{"categories": out})
}

func (h *Handler) ListFeeds(c *gin.Context) {
	feeds := make([]map[string]interface{}, 0, len(h.sources))
	for _, source := range h.sources {
		feeds = append(feeds, map[string]interface{}{
			"source":          source.Name,
			"url":             source.URL,
			"category":        source.Category,
			"extract_content": source.ExtractContent,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"feeds": feeds,
		"total": len(feeds),
	})
}

func (h *Handler) GetStats(c *gin.Context) {
	snap, err := h.store.ReadCurrent()
	if err != nil {
		h.snapshotError(c, "get_stats", err)
		return
	}

	stats := news.CountStats(snap.Articles)
	c.JSON(http.StatusOK, gin.H{
		"lastUpdated":  snap.LastUpdated,
		"articleCount": stats.ArticleCount,
		"breaking":     stats.Breaking,
		"categories":   stats.Categories,
		"sources":      stats.Sources,
	})
}

func (h *Handler) APIRefresh(c *gin.Context) {
	if h.runner == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Scheduler not available"})
		return
	}

	// The run outlives a client that disconnects early; stopping the
	// scheduler still cancels it.
	result, err := h.runner.RunOnce(context.WithoutCancel(c.Request.Context()))
	if errors.Is(err, tasks.ErrRunInProgress) {
		c.JSON(http.StatusConflict, gin.H{"error": "Run already in progress"})
		return
	}
	if errors.Is(err, tasks.ErrSchedulerStopped) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Server shutting down"})
		return
	}
	if err != nil {
		slog.Error("Manual run failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Run failed", "message": err.Error()})
		return
	}

	slog.Info("Manual run completed", "id", result.ID, "articles", result.Snapshot.ArticleCount)
	c.JSON(http.StatusOK, runSummary(result))
}

func (h *Handler) snapshotError(c *gin.Context, operation string, err error) {
	switch {
	case errors.Is(err, snapshot.ErrInvalidDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
	case errors.Is(err, snapshot.ErrNoSnapshot):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	default:
		slog.Error("Snapshot store error", "operation", operation, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read snapshot"})
	}
}

func runSummary(run *tasks.RunResult) map[string]interface{} {
	return map[string]interface{}{
		"id":           run.ID,
		"lastUpdated":  run.Snapshot.LastUpdated,
		"articleCount": run.Snapshot.ArticleCount,
		"archiveDate":  run.ArchiveDate,
		"feeds":        run.Feeds,
		"failedFeeds":  run.FailedFeeds,
		"duration":     run.Duration.String(),
	}
}
