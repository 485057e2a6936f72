package briefing

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/lysyi3m/sitrep/app/news"
	"github.com/lysyi3m/sitrep/app/snapshot"
)

type fakeClient struct {
	response string
	err      error
	prompt   string
}

func (c *fakeClient) Complete(ctx context.Context, prompt string) (string, error) {
	c.prompt = prompt
	return c.response, c.err
}

func (c *fakeClient) ModelName() string { return "fake" }

func writeSnapshot(t *testing.T, store *snapshot.Store, count int) {
	t.Helper()
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	articles := make([]news.Article, 0, count)
	for i := 0; i < count; i++ {
		articles = append(articles, news.Article{
			ID:          string(rune('a' + i)),
			Title:       "Headline " + string(rune('A'+i)),
			Source:      "BBC",
			PublishedAt: now,
		})
	}
	if _, err := store.Write(news.Rank(articles, now)); err != nil {
		t.Fatalf("Expected no error writing snapshot, got: %v", err)
	}
}

func newTestGenerator(store *snapshot.Store, client Client, top int) *Generator {
	g := NewGenerator(store, client, top)
	g.now = func() time.Time { return time.Date(2024, 3, 11, 6, 0, 0, 0, time.UTC) }
	return g
}

func TestGenerator_Run(t *testing.T) {
	store := snapshot.NewStore(t.TempDir())
	writeSnapshot(t, store, 25)

	client := &fakeClient{response: "Here is your briefing:\n```json\n{\"summary\": \"Quiet night.\", \"topStories\": [{\"headline\": \"Headline A\", \"significance\": \"Sets the tone.\"}]}\n```"}
	b, err := newTestGenerator(store, client, 20).Run(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if b.Summary != "Quiet night." || len(b.TopStories) != 1 {
		t.Errorf("Unexpected briefing: %+v", b)
	}
	if b.Date != "2024-03-11" {
		t.Errorf("Expected date 2024-03-11, got: %s", b.Date)
	}

	if !strings.Contains(client.prompt, "20. [BBC] Headline T") {
		t.Errorf("Expected 20 headlines in prompt, got: %s", client.prompt)
	}
	if strings.Contains(client.prompt, "21. ") {
		t.Error("Expected prompt to stop at 20 headlines")
	}

	var stored Briefing
	if err := store.ReadJSON(snapshot.BriefingFile, &stored); err != nil {
		t.Fatalf("Expected briefing.json, got: %v", err)
	}
	if stored.Summary != "Quiet night." || !stored.GeneratedAt.Equal(b.GeneratedAt) {
		t.Errorf("Unexpected stored briefing: %+v", stored)
	}
}

func TestGenerator_Run_Failures(t *testing.T) {
	tests := []struct {
		name     string
		articles int
		client   *fakeClient
	}{
		{"no snapshot", -1, &fakeClient{}},
		{"empty snapshot", 0, &fakeClient{}},
		{"api error", 3, &fakeClient{err: errors.New("overloaded")}},
		{"not json", 3, &fakeClient{response: "I cannot help with that."}},
		{"no summary", 3, &fakeClient{response: `{"topStories": []}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := snapshot.NewStore(t.TempDir())
			if tt.articles >= 0 {
				writeSnapshot(t, store, tt.articles)
			}

			if _, err := newTestGenerator(store, tt.client, 20).Run(context.Background()); err == nil {
				t.Fatal("Expected error")
			}

			var stored Briefing
			if err := store.ReadJSON(snapshot.BriefingFile, &stored); !errors.Is(err, snapshot.ErrNoSnapshot) {
				t.Errorf("Expected no briefing.json to be written, got: %v", err)
			}
		})
	}
}

func TestNewClient(t *testing.T) {
	if _, err := NewClient(ProviderAnthropic, "", "", ""); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("Expected ErrMissingAPIKey, got: %v", err)
	}
	if _, err := NewClient(ProviderOpenAI, "", "key", ""); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("Expected ErrMissingAPIKey for openai, got: %v", err)
	}
	if _, err := NewClient("other", "", "key", "key"); err == nil {
		t.Error("Expected error for unknown provider")
	}

	client, err := NewClient(ProviderAnthropic, "", "key", "")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if client.ModelName() != "claude-sonnet-4-20250514" {
		t.Errorf("Expected default model, got: %s", client.ModelName())
	}

	client, err = NewClient(ProviderOpenAI, "gpt-4.1-mini", "", "key")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if client.ModelName() != "gpt-4.1-mini" {
		t.Errorf("Expected configured model, got: %s", client.ModelName())
	}
}
