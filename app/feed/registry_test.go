package feed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadRegistry_BuiltIn(t *testing.T) {
	sources, err := LoadRegistry("")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(sources) != 11 {
		t.Fatalf("Expected 11 built-in feeds, got %d", len(sources))
	}
	if sources[0].Name != "BBC" || sources[0].Category != "world" {
		t.Errorf("Expected first feed to be BBC/world, got %+v", sources[0])
	}
	if sources[len(sources)-1].Name != "Reuters" {
		t.Errorf("Expected registry order to be preserved, got last feed %s", sources[len(sources)-1].Name)
	}
}

func TestLoadRegistry_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "feeds.yml")
	content := `feeds:
  - url: https://example.com/rss.xml
    source: Example
    category: europe
    extract_content: true
  - url: https://example.org/atom.xml
    source: "  Other  "
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write registry: %v", err)
	}

	sources, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("Expected 2 feeds, got %d", len(sources))
	}
	if !sources[0].ExtractContent {
		t.Error("Expected extract_content to be read")
	}
	if sources[1].Name != "Other" {
		t.Errorf("Expected trimmed source name, got %q", sources[1].Name)
	}
	if sources[1].Category != FallbackCategory {
		t.Errorf("Expected default category %s, got %s", FallbackCategory, sources[1].Category)
	}
}

func TestLoadRegistry_MissingFile(t *testing.T) {
	_, err := LoadRegistry(filepath.Join(t.TempDir(), "missing.yml"))
	if err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestParseRegistry_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errText string
	}{
		{"Malformed YAML", "feeds: [", "failed to parse YAML"},
		{"No feeds", "feeds: []", "at least one feed"},
		{"Missing URL", "feeds:\n  - source: A\n", "feed URL is required"},
		{"Missing source", "feeds:\n  - url: https://a.example/rss\n", "source name is required"},
		{"Relative URL", "feeds:\n  - url: /rss\n    source: A\n", "absolute http(s) URL"},
		{"Unsupported scheme", "feeds:\n  - url: ftp://a.example/rss\n    source: A\n", "absolute http(s) URL"},
		{"Unknown category", "feeds:\n  - url: https://a.example/rss\n    source: A\n    category: sports\n", "unknown category"},
		{"Duplicate URL", "feeds:\n  - url: https://a.example/rss\n    source: A\n  - url: https://a.example/rss\n    source: B\n", "duplicates feed at index 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRegistry([]byte(tt.content))
			if err == nil {
				t.Fatal("Expected error")
			}
			if !strings.Contains(err.Error(), tt.errText) {
				t.Errorf("Expected error containing %q, got: %v", tt.errText, err)
			}
		})
	}
}
