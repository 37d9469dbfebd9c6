package versioning

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripHTML reduces a rich-text comment body to its plain text. Plain
// bodies pass through unchanged; anything that fails to parse is kept
// verbatim rather than rejected.
func StripHTML(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	text := strings.TrimSpace(doc.Text())
	if text == "" {
		return s
	}
	return text
}
