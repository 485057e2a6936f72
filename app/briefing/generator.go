package briefing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lysyi3m/sitrep/app/snapshot"
)

const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

var (
	ErrMissingAPIKey = errors.New("API key not set")
	ErrNoHeadlines   = errors.New("snapshot has no headlines")
)

// NewClient picks the client for provider. A missing key is reported as
// ErrMissingAPIKey so callers can skip the briefing quietly.
func NewClient(provider, model, anthropicKey, openaiKey string) (Client, error) {
	switch provider {
	case ProviderAnthropic, "":
		if anthropicKey == "" {
			return nil, fmt.Errorf("%w: ANTHROPIC_API_KEY", ErrMissingAPIKey)
		}
		return NewAnthropicClient(anthropicKey, model), nil
	case ProviderOpenAI:
		if openaiKey == "" {
			return nil, fmt.Errorf("%w: OPENAI_API_KEY", ErrMissingAPIKey)
		}
		return NewOpenAIClient(openaiKey, model), nil
	default:
		return nil, fmt.Errorf("unknown briefing provider: %s", provider)
	}
}

type Generator struct {
	store  *snapshot.Store
	client Client
	top    int
	now    func() time.Time
}

func NewGenerator(store *snapshot.Store, client Client, top int) *Generator {
	return &Generator{
		store:  store,
		client: client,
		top:    top,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Run briefs on the top headlines of the current snapshot and writes
// briefing.json. Nothing is written when any step fails.
func (g *Generator) Run(ctx context.Context) (*Briefing, error) {
	snap, err := g.store.ReadCurrent()
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	articles := snap.Articles
	if len(articles) > g.top {
		articles = articles[:g.top]
	}
	if len(articles) == 0 {
		return nil, ErrNoHeadlines
	}

	content, err := g.client.Complete(ctx, BuildPrompt(articles))
	if err != nil {
		return nil, fmt.Errorf("failed to generate briefing: %w", err)
	}

	content = cleanJSONResponse(content)

	var b Briefing
	if err := json.Unmarshal([]byte(content), &b); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w, content: %s", err, content)
	}
	if b.Summary == "" {
		return nil, fmt.Errorf("response has no summary, content: %s", content)
	}
	if b.TopStories == nil {
		b.TopStories = []TopStory{}
	}

	now := g.now()
	b.Date = now.Format(snapshot.DateLayout)
	b.GeneratedAt = now

	if err := g.store.WriteJSON(snapshot.BriefingFile, b); err != nil {
		return nil, err
	}

	slog.Info("Briefing written",
		"model", g.client.ModelName(),
		"headlines", len(articles),
		"top_stories", len(b.TopStories),
		"date", b.Date)

	return &b, nil
}
