package goquery_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/partscout"
	"github.com/fwojciec/partscout/goquery"
	"github.com/stretchr/testify/assert"
)

// Ensure Classifier implements partscout.DocumentClassifier at compile time.
var _ partscout.DocumentClassifier = (*goquery.Classifier)(nil)

// padded wraps body in a page long enough to pass the minimum size check.
func padded(title, body string) string {
	filler := "<!-- " + strings.Repeat("x", goquery.DefaultMinBodySize) + " -->"
	return "<!DOCTYPE html><html><head><title>" + title + "</title></head><body>" + body + filler + "</body></html>"
}

func TestClassifier_Classify(t *testing.T) {
	t.Parallel()

	t.Run("accepts a results page", func(t *testing.T) {
		t.Parallel()

		html := padded("LM358 Price and Stock", `<table><tbody><tr><td>LM358</td><td>Texas Instruments</td></tr></tbody></table>`)

		assert.Equal(t, partscout.VerdictValid, goquery.NewClassifier().Classify(html))
	})

	t.Run("blocks short pages", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>LM358</title></head><body>ok</body></html>`

		assert.Equal(t, partscout.VerdictBlocked, goquery.NewClassifier().Classify(html))
	})

	t.Run("blocks browser checks regardless of length", func(t *testing.T) {
		t.Parallel()

		short := `<html><body>Checking your browser before accessing</body></html>`
		long := padded("LM358", "<p>Checking your browser before accessing findchips.com</p>")

		c := goquery.NewClassifier()
		assert.Equal(t, partscout.VerdictBlocked, c.Classify(short))
		assert.Equal(t, partscout.VerdictBlocked, c.Classify(long))
	})

	t.Run("blocks on title markers", func(t *testing.T) {
		t.Parallel()

		html := padded("Access Denied", "<p>Reference #18.2f</p>")

		assert.Equal(t, partscout.VerdictBlocked, goquery.NewClassifier().Classify(html))
	})

	t.Run("blocks on challenge markup", func(t *testing.T) {
		t.Parallel()

		html := padded("LM358", `<div class="cf-browser-verification"></div>`)

		assert.Equal(t, partscout.VerdictBlocked, goquery.NewClassifier().Classify(html))
	})

	t.Run("block wins over not found", func(t *testing.T) {
		t.Parallel()

		html := padded("404 Not Found", "<p>Your request has been blocked. No results found.</p>")

		assert.Equal(t, partscout.VerdictBlocked, goquery.NewClassifier().Classify(html))
	})

	t.Run("reports not found from body text", func(t *testing.T) {
		t.Parallel()

		html := padded("Search - XYZ999", "<p>No results found for XYZ999</p>")

		assert.Equal(t, partscout.VerdictNotFound, goquery.NewClassifier().Classify(html))
	})

	t.Run("reports not found from title", func(t *testing.T) {
		t.Parallel()

		html := padded("Page Not Found", "<p>Try another search</p>")

		assert.Equal(t, partscout.VerdictNotFound, goquery.NewClassifier().Classify(html))
	})

	t.Run("honors custom minimum size", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>LM358</title></head><body>results</body></html>`
		c := &goquery.Classifier{MinBodySize: 10}

		assert.Equal(t, partscout.VerdictValid, c.Classify(html))
	})
}

func TestClassifier_Title(t *testing.T) {
	t.Parallel()

	c := goquery.NewClassifier()

	assert.Equal(t, "LM358 Price", c.Title("<html><head><title>\n  LM358 Price \n</title></head></html>"))
	assert.Empty(t, c.Title("<html><body>no title</body></html>"))
}
