package feed

import (
	"strings"
	"testing"
)

const articlePage = `
	<!DOCTYPE html>
	<html>
	<head>
		<title>Test Article</title>
	</head>
	<body>
		<header>
			<h1>Site Header</h1>
			<nav>Navigation</nav>
		</header>
		<main>
			<article>
				<h1>Main Article Title</h1>
				<p>This is the main content of the article. It contains several paragraphs of meaningful text that should be extracted by the readability algorithm.</p>
				<p>This is another paragraph with more content. The readability algorithm should identify this as the main content area and extract it properly.</p>
				<p>Here is some more substantial content to ensure we meet the character threshold. This paragraph adds more context and information that would be valuable to readers.</p>
			</article>
		</main>
		<aside>
			<div>Advertisement</div>
			<div>Related Links</div>
		</aside>
		<footer>
			<p>Copyright 2024</p>
		</footer>
	</body>
	</html>
	`

func TestContentExtractor_Run_ValidHTML(t *testing.T) {
	extractor := NewContentExtractor()

	result, err := extractor.Run([]byte(articlePage), "https://example.com/article")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if !strings.Contains(result, "main content of the article") {
		t.Errorf("Expected extracted text to contain main article text, got: %s", result)
	}
	if strings.Contains(result, "Advertisement") {
		t.Errorf("Expected extracted text to exclude advertisement")
	}
	if strings.Contains(result, "<") {
		t.Errorf("Expected plain text, got markup: %s", result)
	}
}

func TestContentExtractor_Run_PrefersMetaDescription(t *testing.T) {
	extractor := NewContentExtractor()

	page := strings.Replace(articlePage,
		"<title>Test Article</title>",
		`<title>Test Article</title><meta name="description" content="Ceasefire talks resume in Cairo">`, 1)

	result, err := extractor.Run([]byte(page), "")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if result != "Ceasefire talks resume in Cairo" {
		t.Errorf("Expected meta description as excerpt, got: %s", result)
	}
}

func TestContentExtractor_Run_EmptyData(t *testing.T) {
	extractor := NewContentExtractor()

	for _, data := range [][]byte{nil, {}} {
		result, err := extractor.Run(data, "https://example.com")
		if err == nil {
			t.Error("Expected error for empty data")
		}
		if result != "" {
			t.Errorf("Expected empty result, got: %s", result)
		}
	}
}
