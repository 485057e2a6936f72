package news

import "testing"

func TestCountStats(t *testing.T) {
	stats := CountStats([]Article{
		{Source: "BBC", Categories: []string{"ukraine", "russia"}, IsBreaking: true},
		{Source: "BBC", Categories: []string{"world"}},
		{Source: "NYT", Categories: []string{"russia"}},
	})

	if stats.ArticleCount != 3 {
		t.Errorf("Expected 3 articles, got %d", stats.ArticleCount)
	}
	if stats.Breaking != 1 {
		t.Errorf("Expected 1 breaking article, got %d", stats.Breaking)
	}
	if stats.Categories["russia"] != 2 || stats.Categories["ukraine"] != 1 || stats.Categories["world"] != 1 {
		t.Errorf("Unexpected category counts: %v", stats.Categories)
	}
	if stats.Sources["BBC"] != 2 || stats.Sources["NYT"] != 1 {
		t.Errorf("Unexpected source counts: %v", stats.Sources)
	}
}
