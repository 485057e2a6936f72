package feed

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/unicode/norm"
)

// StripHTML removes markup, decodes entities and collapses whitespace.
func StripHTML(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	if !strings.ContainsAny(s, "<&") {
		return collapseWhitespace(s)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return collapseWhitespace(s)
	}

	doc.Find("script, style").Remove()
	// Block boundaries would otherwise glue neighbouring words together.
	doc.Find("br, p, div, li, h1, h2, h3, h4, h5, h6, tr").AfterHtml(" ")

	return collapseWhitespace(doc.Text())
}

// Truncate cuts s to at most max runes.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}
