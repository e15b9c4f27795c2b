package partscout

import (
	"context"
	"strconv"
	"strings"
	"time"
)

// NA is the display and storage marker for an unknown field value.
const NA = "N/A"

// MaxPriceTiers caps how many tiers FormatPriceTiers renders.
const MaxPriceTiers = 7

// Known reports whether v carries real data. Empty strings and the NA
// marker are both unknown.
func Known(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && !strings.EqualFold(v, NA)
}

// OrNA returns v, or NA when v is unknown.
func OrNA(v string) string {
	if !Known(v) {
		return NA
	}
	return v
}

// PriceTier is a volume-pricing breakpoint.
type PriceTier struct {
	Quantity  int64  `json:"quantity"`
	Currency  string `json:"currency"`  // ISO 4217 code as published, e.g. "INR"
	UnitPrice string `json:"unitPrice"` // decimal text as published, e.g. "40.06"
}

var currencySymbols = map[string]string{
	"INR": "₹",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CNY": "¥",
}

// CurrencySymbol maps an ISO currency code to its symbol. Unknown codes are
// returned unchanged.
func CurrencySymbol(code string) string {
	if s, ok := currencySymbols[strings.ToUpper(code)]; ok {
		return s
	}
	return code
}

// String renders the tier as "{qty} {symbol}{price}".
func (t PriceTier) String() string {
	return strconv.FormatInt(t.Quantity, 10) + " " + CurrencySymbol(t.Currency) + t.UnitPrice
}

// FormatPriceTiers renders at most MaxPriceTiers tiers as a comma-joined
// list, e.g. "5 ₹40.06, 10 ₹24.84". Returns "" for no tiers.
func FormatPriceTiers(tiers []PriceTier) string {
	if len(tiers) > MaxPriceTiers {
		tiers = tiers[:MaxPriceTiers]
	}
	parts := make([]string, 0, len(tiers))
	for _, t := range tiers {
		parts = append(parts, t.String())
	}
	return strings.Join(parts, ", ")
}

// ComponentRecord is the structured result of a part lookup. Every field
// other than PartNumber is optional; an empty string means unknown.
type ComponentRecord struct {
	PartNumber     PartNumber  `json:"partNumber"`
	Manufacturer   string      `json:"manufacturer"`
	Description    string      `json:"description"`
	PriceTiers     []PriceTier `json:"priceTiers,omitempty"`
	Price          string      `json:"lowestPrice"` // rendered tiers, or a single scraped price
	AvailableStock string      `json:"availableStock"`
	Distributor    string      `json:"distributor"`
	DatasheetLink  string      `json:"datasheetLink"`
	SourceURL      string      `json:"searchUrl"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// Validate returns an error if the record contains invalid fields.
func (r *ComponentRecord) Validate() error {
	if r.PartNumber == "" {
		return Errorf(EINVALID, "component part number required")
	}
	return nil
}

// HasData reports whether at least one descriptive field carries real data.
// Records without data are treated as extraction failures.
func (r *ComponentRecord) HasData() bool {
	return (Known(r.Description) && len(r.Description) > 10) ||
		Known(r.Price) ||
		Known(r.Distributor) ||
		(Known(r.Manufacturer) && len(r.Manufacturer) > 2) ||
		Known(r.AvailableStock)
}

// Merge copies known fields from upd into r. A known value in r is never
// replaced by an unknown one.
func (r *ComponentRecord) Merge(upd *ComponentRecord) {
	if upd == nil {
		return
	}
	mergeField(&r.Manufacturer, upd.Manufacturer)
	mergeField(&r.Description, upd.Description)
	mergeField(&r.Price, upd.Price)
	mergeField(&r.AvailableStock, upd.AvailableStock)
	mergeField(&r.Distributor, upd.Distributor)
	mergeField(&r.DatasheetLink, upd.DatasheetLink)
	mergeField(&r.SourceURL, upd.SourceURL)
	if len(upd.PriceTiers) > 0 {
		r.PriceTiers = append([]PriceTier(nil), upd.PriceTiers...)
	}
}

func mergeField(dst *string, v string) {
	if Known(v) {
		*dst = strings.TrimSpace(v)
	}
}

// ComponentService represents a service for managing stored component records.
// Records are keyed by part number, compared case-insensitively.
type ComponentService interface {
	// UpsertComponent stores rec, merging it into an existing record for the
	// same part number. Returns the stored record and whether it was created.
	UpsertComponent(ctx context.Context, rec *ComponentRecord) (*ComponentRecord, bool, error)

	// FindComponentByPartNumber retrieves a record.
	// Returns ENOTFOUND if no record exists.
	FindComponentByPartNumber(ctx context.Context, pn PartNumber) (*ComponentRecord, error)

	// FindComponents retrieves records matching the filter.
	FindComponents(ctx context.Context, filter ComponentFilter) ([]*ComponentRecord, error)

	// DeleteComponent removes a record.
	// Returns ENOTFOUND if no record exists.
	DeleteComponent(ctx context.Context, pn PartNumber) error

	// DeleteAllComponents removes every record and returns how many were removed.
	DeleteAllComponents(ctx context.Context) (int, error)
}

// ComponentFilter represents a filter for FindComponents.
type ComponentFilter struct {
	PartNumber *PartNumber `json:"partNumber"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ComponentLookup fetches a part from the upstream search site.
type ComponentLookup interface {
	// LookupComponent validates pn, fetches and classifies its results page,
	// and extracts a record. Failures carry one of EINVALID, ERATELIMITED,
	// EBLOCKED, ENOTFOUND, ENODATA, ETIMEOUT, ECONNECT or EUNAVAILABLE.
	LookupComponent(ctx context.Context, pn string) (*ComponentRecord, error)
}
