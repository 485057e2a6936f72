package feed

import "time"

// Feed registry types

type Source struct {
	URL            string `yaml:"url"`
	Name           string `yaml:"source"`
	Category       string `yaml:"category"`
	ExtractContent bool   `yaml:"extract_content"` // fill empty descriptions from the article page
}

type Registry struct {
	Feeds []Source `yaml:"feeds"`
}

// Feed processing types

// RawEntry holds one feed item as found in the payload. Description may
// still contain markup and Published is whatever date text the feed used.
// PublishedParsed is gofeed's reading of that text, nil when it had none.
type RawEntry struct {
	Title           string
	Description     string
	Link            string
	Published       string
	PublishedParsed *time.Time
}

type Category struct {
	Key      string
	Label    string
	Color    string
	Keywords []string
}
