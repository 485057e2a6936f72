package tasks

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/lysyi3m/sitrep/app/feed"
	"github.com/lysyi3m/sitrep/app/news"
)

const SnippetLength = 250

// FetchFeedTask downloads one feed and turns its entries into articles. All
// network work of the task shares a single deadline.
type FetchFeedTask struct {
	Task
	Source           feed.Source
	httpClient       *http.Client
	parser           *feed.Parser
	categorizer      *feed.Categorizer
	contentExtractor *feed.ContentExtractor
	userAgent        string
	timeout          time.Duration
	now              func() time.Time
}

func NewFetchFeedTask(source feed.Source, httpClient *http.Client, parser *feed.Parser, categorizer *feed.Categorizer, contentExtractor *feed.ContentExtractor, userAgent string, timeout time.Duration) *FetchFeedTask {
	return &FetchFeedTask{
		Task:             NewTask(TaskTypeFetchFeed, source.Name),
		Source:           source,
		httpClient:       httpClient,
		parser:           parser,
		categorizer:      categorizer,
		contentExtractor: contentExtractor,
		userAgent:        userAgent,
		timeout:          timeout,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (t *FetchFeedTask) Execute(ctx context.Context) ([]news.Article, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	data, err := t.fetch(timeoutCtx, t.Source.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	entries, err := t.parser.Run(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	now := t.now()
	articles := make([]news.Article, 0, len(entries))
	skipped := 0
	extracted := 0

	for _, entry := range entries {
		if t.Source.ExtractContent && feed.StripHTML(entry.Description) == "" && entry.Link != "" {
			if text, err := t.extractDescription(timeoutCtx, entry.Link); err != nil {
				slog.Debug("Content extraction failed", "feed", t.FeedName, "url", entry.Link, "error", err)
			} else {
				entry.Description = text
				extracted++
			}
		}

		article, ok := t.buildArticle(entry, now)
		if !ok {
			skipped++
			continue
		}
		articles = append(articles, article)
	}

	slog.Info("Task completed",
		"type", t.GetType(),
		"feed", t.FeedName,
		"duration", t.GetDuration(),
		"total", len(entries),
		"skipped", skipped,
		"extracted", extracted,
		"articles", len(articles))

	return articles, nil
}

// buildArticle reports false for entries without a usable title.
func (t *FetchFeedTask) buildArticle(entry feed.RawEntry, now time.Time) (news.Article, bool) {
	title := feed.StripHTML(entry.Title)
	if title == "" {
		return news.Article{}, false
	}

	description := feed.StripHTML(entry.Description)
	link := strings.TrimSpace(entry.Link)
	categories := t.categorizer.Run(title, description)

	return news.Article{
		ID:              feed.MakeID(cmp.Or(link, title)),
		Title:           title,
		Source:          t.Source.Name,
		URL:             link,
		PublishedAt:     entry.PublishedAt(now),
		Categories:      categories,
		PrimaryCategory: categories[0],
		Snippet:         feed.Truncate(description, SnippetLength),
	}, true
}

func (t *FetchFeedTask) extractDescription(ctx context.Context, pageURL string) (string, error) {
	data, err := t.fetchPage(ctx, pageURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch article content: %w", err)
	}
	return t.contentExtractor.Run(data, pageURL)
}

func (t *FetchFeedTask) fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := t.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}

func (t *FetchFeedTask) fetchPage(ctx context.Context, url string) ([]byte, error) {
	resp, err := t.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "text/html") {
		return nil, fmt.Errorf("content type is not HTML: %s", contentType)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}

// get returns the response only for status 200; the caller closes the body.
func (t *FetchFeedTask) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", t.userAgent)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	return resp, nil
}
