package goquery

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/partscout"
)

var _ partscout.RecordExtractor = (*Extractor)(nil)

// Selectors for the result layout.
const (
	resultRowSelector    = "table tbody tr, .result-row, .part-row"
	manufacturerSelector = "td:nth-child(2), .manufacturer"
	descriptionSelector  = "td:nth-child(3), .description"
	pricedRowSelector    = "tr[data-price]"
	distributorSelector  = ".distributor-results"
)

var (
	trailingMetaRe   = regexp.MustCompile(`(?is)(Prices include|COO:|RoHS:|Min Qty:|Container:).*`)
	descriptionRe    = regexp.MustCompile(`[A-Z][A-Z0-9\s,]+,.*[0-9]`)
	singlePriceRe    = regexp.MustCompile(`(₹|\$)(\d[\d,]*\.?\d*)`)
	datasheetMarkers = []string{"datasheet", "part details"}
)

// page is a parsed results page shared by the field strategies.
type page struct {
	raw    string
	doc    *goquery.Document
	row    *goquery.Selection // first result row
	priced *goquery.Selection // first priced row
	base   *url.URL
}

// strategy extracts one field, returning "" when it finds nothing.
type strategy func(p *page) string

// firstOf runs strategies in order and returns the first non-empty result.
func firstOf(p *page, strategies ...strategy) string {
	for _, s := range strategies {
		if v := strings.TrimSpace(s(p)); partscout.Known(v) {
			return v
		}
	}
	return ""
}

// Extractor mines component records from results pages.
type Extractor struct {
	// BaseURL resolves relative links when the page URL is unknown.
	BaseURL string
}

// NewExtractor creates an Extractor that resolves relative links against baseURL.
func NewExtractor(baseURL string) *Extractor {
	return &Extractor{BaseURL: baseURL}
}

// ExtractRecord extracts every field it can from a valid results page.
// Fields with no match are left empty.
func (e *Extractor) ExtractRecord(raw string, pn partscout.PartNumber, sourceURL string) (*partscout.ComponentRecord, error) {
	doc, err := parse(raw)
	if err != nil {
		return nil, err
	}

	baseRef := sourceURL
	if baseRef == "" {
		baseRef = e.BaseURL
	}
	base, err := url.Parse(baseRef)
	if err != nil {
		return nil, partscout.Errorf(partscout.EINVALID, "invalid base URL: %v", err)
	}

	p := &page{
		raw:    raw,
		doc:    doc,
		row:    doc.Find(resultRowSelector).First(),
		priced: doc.Find(pricedRowSelector).First(),
		base:   base,
	}

	tiers := priceTiers(p)

	rec := &partscout.ComponentRecord{
		PartNumber:     pn,
		Manufacturer:   firstOf(p, rowManufacturer),
		Description:    firstOf(p, rowDescription, textDescription),
		PriceTiers:     tiers,
		AvailableStock: firstOf(p, pricedRowAttr("data-instock")),
		Distributor:    firstOf(p, pricedRowAttr("data-distributor_name"), distributorBlock),
		DatasheetLink:  firstOf(p, datasheetLink),
		SourceURL:      sourceURL,
	}
	if len(tiers) > 0 {
		rec.Price = partscout.FormatPriceTiers(tiers)
	} else {
		rec.Price = firstOf(p, singlePrice)
	}
	return rec, nil
}

func rowManufacturer(p *page) string {
	v := strings.TrimSpace(p.row.Find(manufacturerSelector).First().Text())
	if len(v) <= 2 {
		return ""
	}
	return v
}

func rowDescription(p *page) string {
	v := cleanDescription(p.row.Find(descriptionSelector).First().Text())
	if len(v) <= 10 {
		return ""
	}
	return v
}

// textDescription scans body text for a technical phrase such as
// "OP-AMP, 1.1MHZ, 0.6V/US, DFN-8".
func textDescription(p *page) string {
	for line := range strings.SplitSeq(p.doc.Find("body").Text(), "\n") {
		line = strings.TrimSpace(line)
		if len(line) <= 20 || len(line) >= 150 {
			continue
		}
		if strings.ContainsAny(line, "₹$") {
			continue
		}
		if descriptionRe.MatchString(line) {
			return line
		}
	}
	return ""
}

// cleanDescription drops trailing metadata annotations and collapses whitespace.
func cleanDescription(s string) string {
	s = trailingMetaRe.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}

func pricedRowAttr(name string) strategy {
	return func(p *page) string {
		v, _ := p.priced.Attr(name)
		return v
	}
}

func distributorBlock(p *page) string {
	v, _ := p.doc.Find(distributorSelector).First().Attr("data-distributor_name")
	return v
}

func singlePrice(p *page) string {
	return singlePriceRe.FindString(p.raw)
}

func datasheetLink(p *page) string {
	var link string
	p.doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" {
			return true
		}
		label := strings.ToLower(href + " " + sel.Text())
		if !containsAny(label, datasheetMarkers) {
			return true
		}
		link = resolveURL(p.base, href)
		return link == ""
	})
	return link
}

// resolveURL resolves a possibly relative href against base.
// Returns empty string if the href cannot be parsed.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// priceTiers decodes the first priced row's data-price attribute, a JSON
// list of [quantity, currency, price] triples. Malformed tiers are skipped.
func priceTiers(p *page) []partscout.PriceTier {
	attr, ok := p.priced.Attr("data-price")
	if !ok {
		return nil
	}
	tiers, err := decodePriceTiers(attr)
	if err != nil {
		return nil
	}
	return tiers
}

func decodePriceTiers(attr string) ([]partscout.PriceTier, error) {
	dec := json.NewDecoder(strings.NewReader(attr))
	dec.UseNumber()

	var rows [][]any
	if err := dec.Decode(&rows); err != nil {
		return nil, partscout.Wrap(partscout.EINVALID, err, "invalid price data")
	}

	tiers := make([]partscout.PriceTier, 0, len(rows))
	for _, row := range rows {
		if len(row) < 3 {
			continue
		}
		qty, ok := row[0].(json.Number)
		if !ok {
			continue
		}
		n, err := qty.Int64()
		if err != nil {
			continue
		}
		currency, _ := row[1].(string)
		price := scalarText(row[2])
		if price == "" {
			continue
		}
		tiers = append(tiers, partscout.PriceTier{Quantity: n, Currency: currency, UnitPrice: price})
	}
	return tiers, nil
}

func scalarText(v any) string {
	switch v := v.(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}
