package feed

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// RFC 822 zone names; gofeed and dateparse both read these as UTC.
var rfc822Zones = map[string]string{
	"EST": "-0500", "EDT": "-0400",
	"CST": "-0600", "CDT": "-0500",
	"MST": "-0700", "MDT": "-0600",
	"PST": "-0800", "PDT": "-0700",
}

var (
	fullYear  = regexp.MustCompile(`\d{4}`)
	monthName = regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\b`)
)

const minYear = 1970

// PublishedAt is the entry's publication time. The date gofeed parsed is
// used when present, except for US zone names it gets wrong. Anything else
// goes through ParseDate.
func (e RawEntry) PublishedAt(now time.Time) time.Time {
	if _, ok := usZone(e.Published); !ok && e.PublishedParsed != nil && plausibleDate(*e.PublishedParsed) {
		return e.PublishedParsed.UTC()
	}
	return ParseDate(e.Published, now)
}

// ParseDate reads a feed date in any common layout. It never fails: missing
// or unreadable dates become now, so an article is kept with ingestion time
// rather than dropped.
func ParseDate(s string, now time.Time) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return now
	}

	if zone, ok := usZone(s); ok {
		s = strings.TrimSpace(strings.TrimSuffix(s, zone)) + " " + rfc822Zones[zone]
	}

	// dateparse fills in zero values for fragments like "Mon," or "1/".
	if !fullYear.MatchString(s) && !monthName.MatchString(s) {
		return now
	}

	t, err := dateparse.ParseStrict(s)
	if err != nil || !plausibleDate(t) {
		return now
	}
	return t.UTC()
}

func usZone(s string) (string, bool) {
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return "", false
	}
	zone := strings.ToUpper(fields[len(fields)-1])
	if _, ok := rfc822Zones[zone]; !ok {
		return "", false
	}
	return fields[len(fields)-1], true
}

func plausibleDate(t time.Time) bool {
	return !t.IsZero() && t.Year() >= minYear
}
