package goquery_test

import (
	"testing"

	"github.com/fwojciec/partscout"
	"github.com/fwojciec/partscout/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements partscout.RecordExtractor at compile time.
var _ partscout.RecordExtractor = (*goquery.Extractor)(nil)

const searchURL = "https://www.findchips.com/search/LM358"

func TestExtractor_ExtractRecord(t *testing.T) {
	t.Parallel()

	t.Run("extracts fields from result rows", func(t *testing.T) {
		t.Parallel()

		html := padded("LM358 Price", `
<table>
  <tbody>
    <tr data-price='[[5,"INR","40.06"],[10,"INR","24.84"]]' data-distributor_name="Mouser" data-instock="1200">
      <td>LM358DR</td>
      <td>Texas Instruments</td>
      <td>Dual Operational Amplifier, 1.1MHz, SOIC-8 RoHS: Compliant Min Qty: 1</td>
    </tr>
    <tr data-price='[[1,"USD","0.50"]]' data-distributor_name="Digikey" data-instock="5">
      <td>LM358P</td><td>onsemi</td><td>Other part</td>
    </tr>
  </tbody>
</table>
<a href="/parts/lm358/datasheet.pdf">PDF</a>`)

		rec, err := goquery.NewExtractor("https://www.findchips.com").ExtractRecord(html, "LM358", searchURL)

		require.NoError(t, err)
		assert.Equal(t, partscout.PartNumber("LM358"), rec.PartNumber)
		assert.Equal(t, "Texas Instruments", rec.Manufacturer)
		assert.Equal(t, "Dual Operational Amplifier, 1.1MHz, SOIC-8", rec.Description)
		assert.Equal(t, "5 ₹40.06, 10 ₹24.84", rec.Price)
		assert.Equal(t, []partscout.PriceTier{
			{Quantity: 5, Currency: "INR", UnitPrice: "40.06"},
			{Quantity: 10, Currency: "INR", UnitPrice: "24.84"},
		}, rec.PriceTiers)
		assert.Equal(t, "Mouser", rec.Distributor)
		assert.Equal(t, "1200", rec.AvailableStock)
		assert.Equal(t, "https://www.findchips.com/parts/lm358/datasheet.pdf", rec.DatasheetLink)
		assert.Equal(t, searchURL, rec.SourceURL)
		assert.True(t, rec.HasData())
	})

	t.Run("decodes entity-encoded numeric prices", func(t *testing.T) {
		t.Parallel()

		html := padded("LM358", `<table><tbody><tr data-price="[[1,&#34;USD&#34;,0.45],[100,&#34;USD&#34;,0.31]]"><td>x</td></tr></tbody></table>`)

		rec, err := goquery.NewExtractor("").ExtractRecord(html, "LM358", searchURL)

		require.NoError(t, err)
		assert.Equal(t, "1 $0.45, 100 $0.31", rec.Price)
	})

	t.Run("falls back to distributor block", func(t *testing.T) {
		t.Parallel()

		html := padded("LM358", `<div class="distributor-results" data-distributor_name="Arrow"></div>`)

		rec, err := goquery.NewExtractor("").ExtractRecord(html, "LM358", searchURL)

		require.NoError(t, err)
		assert.Equal(t, "Arrow", rec.Distributor)
	})

	t.Run("falls back to single price in document", func(t *testing.T) {
		t.Parallel()

		html := padded("LM358", `<div class="offer">From ₹12.50 per unit</div>`)

		rec, err := goquery.NewExtractor("").ExtractRecord(html, "LM358", searchURL)

		require.NoError(t, err)
		assert.Equal(t, "₹12.50", rec.Price)
		assert.Empty(t, rec.PriceTiers)
	})

	t.Run("falls back to description in body text", func(t *testing.T) {
		t.Parallel()

		html := padded("LM358", "<div>\nLM358\nOP-AMP, 1.1MHZ, 0.6V/US, DFN-8\nBuy for $1.00, ships in 2 days\n</div>")

		rec, err := goquery.NewExtractor("").ExtractRecord(html, "LM358", searchURL)

		require.NoError(t, err)
		assert.Equal(t, "OP-AMP, 1.1MHZ, 0.6V/US, DFN-8", rec.Description)
	})

	t.Run("matches datasheet link by label", func(t *testing.T) {
		t.Parallel()

		html := padded("LM358", `<a href="https://example.com/lm358.pdf">View Datasheet</a>`)

		rec, err := goquery.NewExtractor("").ExtractRecord(html, "LM358", searchURL)

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/lm358.pdf", rec.DatasheetLink)
	})

	t.Run("leaves missing fields empty", func(t *testing.T) {
		t.Parallel()

		html := padded("LM358", "<p>nothing to see</p>")

		rec, err := goquery.NewExtractor("").ExtractRecord(html, "LM358", searchURL)

		require.NoError(t, err)
		assert.Empty(t, rec.Manufacturer)
		assert.Empty(t, rec.Description)
		assert.Empty(t, rec.Price)
		assert.Empty(t, rec.Distributor)
		assert.Empty(t, rec.AvailableStock)
		assert.Empty(t, rec.DatasheetLink)
		assert.False(t, rec.HasData())
	})

	t.Run("ignores short manufacturer and placeholder stock", func(t *testing.T) {
		t.Parallel()

		html := padded("LM358", `<table><tbody><tr data-price="not json" data-instock="N/A"><td>LM358</td><td>TI</td><td>Op amp</td></tr></tbody></table>`)

		rec, err := goquery.NewExtractor("").ExtractRecord(html, "LM358", searchURL)

		require.NoError(t, err)
		assert.Empty(t, rec.Manufacturer)
		assert.Empty(t, rec.Description)
		assert.Empty(t, rec.AvailableStock)
		assert.Empty(t, rec.PriceTiers)
	})

	t.Run("uses base URL when source URL is empty", func(t *testing.T) {
		t.Parallel()

		html := padded("LM358", `<a href="/part-details/LM358">Part Details</a>`)

		rec, err := goquery.NewExtractor("https://www.findchips.com").ExtractRecord(html, "LM358", "")

		require.NoError(t, err)
		assert.Equal(t, "https://www.findchips.com/part-details/LM358", rec.DatasheetLink)
	})
}
