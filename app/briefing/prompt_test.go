package briefing

import (
	"strings"
	"testing"

	"github.com/lysyi3m/sitrep/app/news"
)

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt([]news.Article{
		{Source: "BBC", Title: "First"},
		{Source: "Reuters", Title: "Second"},
	})

	if !strings.Contains(prompt, "Headlines:\n1. [BBC] First\n2. [Reuters] Second\n") {
		t.Errorf("Expected numbered headlines, got: %s", prompt)
	}
	if !strings.Contains(prompt, `"topStories"`) {
		t.Error("Expected JSON shape in prompt")
	}
}

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain JSON unchanged",
			input: `{"summary":"test"}`,
			want:  `{"summary":"test"}`,
		},
		{
			name:  "strips json fenced block",
			input: "```json\n{\"summary\":\"test\"}\n```",
			want:  `{"summary":"test"}`,
		},
		{
			name:  "strips surrounding prose",
			input: "Sure! {\"summary\":\"test\"} Let me know.",
			want:  `{"summary":"test"}`,
		},
		{
			name:  "no object",
			input: "  nothing here  ",
			want:  "nothing here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanJSONResponse(tt.input); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
