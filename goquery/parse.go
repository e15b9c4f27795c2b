// Package goquery classifies distributor search pages and extracts component
// records from them using CSS selectors.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/partscout"
	"golang.org/x/net/html"
)

// parse builds a goquery document from raw HTML. The HTML5 parser accepts any
// input, so errors only surface for pathological readers.
func parse(raw string) (*goquery.Document, error) {
	root, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return nil, partscout.Wrap(partscout.EINVALID, err, "failed to parse HTML")
	}
	return goquery.NewDocumentFromNode(root), nil
}

// hasSelector checks if the document contains at least one element matching the selector.
func hasSelector(doc *goquery.Document, selector string) bool {
	return doc.Find(selector).Length() > 0
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
