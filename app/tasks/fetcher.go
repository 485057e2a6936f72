package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/lysyi3m/sitrep/app/feed"
	"github.com/lysyi3m/sitrep/app/news"
)

// FeedResult is the outcome of one feed in a run. Err is set when the feed
// contributed nothing because it failed.
type FeedResult struct {
	Source   feed.Source
	Articles []news.Article
	Err      error
	Duration time.Duration
}

type Fetcher struct {
	httpClient       *http.Client
	parser           *feed.Parser
	categorizer      *feed.Categorizer
	contentExtractor *feed.ContentExtractor
	userAgent        string
	timeout          time.Duration
}

func NewFetcher(httpClient *http.Client, parser *feed.Parser, categorizer *feed.Categorizer, contentExtractor *feed.ContentExtractor, userAgent string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		httpClient:       httpClient,
		parser:           parser,
		categorizer:      categorizer,
		contentExtractor: contentExtractor,
		userAgent:        userAgent,
		timeout:          timeout,
	}
}

// FetchAll runs every source concurrently and waits for all of them. Results
// come back in registry order; a failed source yields a result with Err set
// and no articles.
func (f *Fetcher) FetchAll(ctx context.Context, sources []feed.Source) []FeedResult {
	results := make([]FeedResult, len(sources))

	var wg sync.WaitGroup
	for i, source := range sources {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = f.executeTask(ctx, NewFetchFeedTask(source, f.httpClient, f.parser, f.categorizer, f.contentExtractor, f.userAgent, f.timeout))
		}()
	}
	wg.Wait()

	return results
}

func (f *Fetcher) executeTask(ctx context.Context, task *FetchFeedTask) (result FeedResult) {
	result.Source = task.Source
	task.Start()

	defer func() {
		if r := recover(); r != nil {
			result.Articles = nil
			result.Err = fmt.Errorf("panic while processing feed: %v", r)
		}
		result.Duration = task.GetDuration()
		if result.Err != nil {
			slog.Warn("Feed failed", "feed", task.FeedName, "url", task.Source.URL, "id", task.GetID(), "duration", result.Duration, "error", result.Err)
		}
	}()

	result.Articles, result.Err = task.Execute(ctx)
	if result.Err != nil {
		result.Articles = nil
	}
	return result
}

// Articles flattens results in order.
func Articles(results []FeedResult) []news.Article {
	var total int
	for _, result := range results {
		total += len(result.Articles)
	}

	articles := make([]news.Article, 0, total)
	for _, result := range results {
		articles = append(articles, result.Articles...)
	}
	return articles
}
