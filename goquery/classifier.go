package goquery

import (
	"strings"

	"github.com/fwojciec/partscout"
)

var _ partscout.DocumentClassifier = (*Classifier)(nil)

// DefaultMinBodySize is the smallest body a real results page has. Anything
// shorter is a stub or challenge page.
const DefaultMinBodySize = 1000

var (
	blockedTitleMarkers = []string{"access denied", "blocked", "forbidden"}
	blockedTextMarkers  = []string{
		"access denied",
		"your request has been blocked",
		"cloudflare",
		"checking your browser",
		"verify you are human",
	}
	blockedHTMLMarkers = []string{"cf-browser-verification", "challenge-platform", "just a moment"}

	notFoundTitleMarkers = []string{"error", "not found", "404"}
	notFoundTextMarkers  = []string{"no results", "no parts found", "part not found", "we couldn't find"}
)

// Classifier decides whether a search page holds results, reports that the
// part is unknown, or is an anti-automation page.
type Classifier struct {
	// MinBodySize is the body length below which a page counts as blocked.
	MinBodySize int
}

// NewClassifier creates a Classifier with DefaultMinBodySize.
func NewClassifier() *Classifier {
	return &Classifier{MinBodySize: DefaultMinBodySize}
}

// Classify returns the verdict for a fetched page. Block markers are checked
// before not-found markers because challenge pages often carry both.
func (c *Classifier) Classify(raw string) partscout.Verdict {
	doc, err := parse(raw)
	if err != nil {
		return partscout.VerdictBlocked
	}

	title := strings.ToLower(doc.Find("title").First().Text())
	text := strings.ToLower(doc.Find("body").Text())
	lower := strings.ToLower(raw)

	switch {
	case containsAny(title, blockedTitleMarkers),
		containsAny(text, blockedTextMarkers),
		containsAny(lower, blockedHTMLMarkers),
		hasSelector(doc, "#challenge-form, #cf-wrapper"):
		return partscout.VerdictBlocked
	case len(raw) < c.MinBodySize:
		return partscout.VerdictBlocked
	case containsAny(title, notFoundTitleMarkers),
		containsAny(text, notFoundTextMarkers):
		return partscout.VerdictNotFound
	}
	return partscout.VerdictValid
}

// Title returns the trimmed text of the first title element.
func (c *Classifier) Title(raw string) string {
	doc, err := parse(raw)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}
