package feed

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"
	"github.com/mmcdole/gofeed/atom"
	ext "github.com/mmcdole/gofeed/extensions"
	"github.com/mmcdole/gofeed/rss"
)

var ErrUnsupportedFormat = errors.New("unsupported feed format")

// Parser turns RSS 2.0 and Atom payloads into RawEntry values. The format is
// detected once per payload; nothing downstream sees which one it was.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Run(data []byte) ([]RawEntry, error) {
	// gofeed's format parsers keep per-document state, so each call gets its own.
	switch feedType := gofeed.DetectFeedType(bytes.NewReader(data)); feedType {
	case gofeed.FeedTypeRSS:
		feed, err := (&rss.Parser{}).Parse(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to parse RSS feed: %w", err)
		}
		entries := make([]RawEntry, 0, len(feed.Items))
		for _, item := range feed.Items {
			if item != nil {
				entries = append(entries, p.normalizeRSSItem(item))
			}
		}
		return entries, nil

	case gofeed.FeedTypeAtom:
		feed, err := (&atom.Parser{}).Parse(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to parse Atom feed: %w", err)
		}
		entries := make([]RawEntry, 0, len(feed.Entries))
		for _, entry := range feed.Entries {
			if entry != nil {
				entries = append(entries, p.normalizeAtomEntry(entry))
			}
		}
		return entries, nil

	default:
		return nil, fmt.Errorf("%w: detected %s", ErrUnsupportedFormat, feedTypeName(feedType))
	}
}

func (p *Parser) normalizeRSSItem(item *rss.Item) RawEntry {
	entry := RawEntry{
		Title:           item.Title,
		Description:     cmp.Or(item.Description, item.Content, mediaDescription(item.Extensions)),
		Link:            strings.TrimSpace(item.Link),
		Published:       strings.TrimSpace(item.PubDate),
		PublishedParsed: item.PubDateParsed,
	}

	if entry.Link == "" && item.GUID != nil && item.GUID.IsPermalink != "false" && isHTTPURL(item.GUID.Value) {
		entry.Link = strings.TrimSpace(item.GUID.Value)
	}

	if entry.Published == "" && item.DublinCoreExt != nil && len(item.DublinCoreExt.Date) > 0 {
		entry.Published = strings.TrimSpace(item.DublinCoreExt.Date[0])
		entry.PublishedParsed = nil
	}

	return entry
}

func (p *Parser) normalizeAtomEntry(entry *atom.Entry) RawEntry {
	var content string
	if entry.Content != nil {
		content = entry.Content.Value
	}

	published, parsed := entry.Published, entry.PublishedParsed
	if strings.TrimSpace(published) == "" {
		published, parsed = entry.Updated, entry.UpdatedParsed
	}

	return RawEntry{
		Title:           entry.Title,
		Description:     cmp.Or(entry.Summary, content, mediaDescription(entry.Extensions)),
		Link:            strings.TrimSpace(atomLink(entry.Links)),
		Published:       strings.TrimSpace(published),
		PublishedParsed: parsed,
	}
}

// atomLink prefers the alternate link, then any link with an href.
func atomLink(links []*atom.Link) string {
	for _, link := range links {
		if link != nil && link.Href != "" && (link.Rel == "" || link.Rel == "alternate") {
			return link.Href
		}
	}
	for _, link := range links {
		if link != nil && link.Href != "" {
			return link.Href
		}
	}
	return ""
}

// mediaDescription looks for media:description at item level, then inside
// media:group and media:content.
func mediaDescription(extensions ext.Extensions) string {
	media, ok := extensions["media"]
	if !ok {
		return ""
	}

	if description := firstExtensionValue(media["description"]); description != "" {
		return description
	}
	for _, name := range []string{"group", "content"} {
		for _, parent := range media[name] {
			if description := firstExtensionValue(parent.Children["description"]); description != "" {
				return description
			}
		}
	}
	return ""
}

func firstExtensionValue(values []ext.Extension) string {
	for _, value := range values {
		if v := strings.TrimSpace(value.Value); v != "" {
			return v
		}
	}
	return ""
}

func isHTTPURL(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func feedTypeName(feedType gofeed.FeedType) string {
	switch feedType {
	case gofeed.FeedTypeJSON:
		return "JSON feed"
	case gofeed.FeedTypeRSS:
		return "RSS"
	case gofeed.FeedTypeAtom:
		return "Atom"
	default:
		return "unknown"
	}
}
