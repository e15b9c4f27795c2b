package partscout

// Verdict classifies a fetched results page.
type Verdict int

// Document verdicts.
const (
	VerdictValid Verdict = iota
	VerdictNotFound
	VerdictBlocked
)

// String returns the lowercase verdict name.
func (v Verdict) String() string {
	switch v {
	case VerdictValid:
		return "valid"
	case VerdictNotFound:
		return "not_found"
	case VerdictBlocked:
		return "blocked"
	}
	return "unknown"
}

// DocumentClassifier decides whether a fetched page holds results.
type DocumentClassifier interface {
	// Classify returns VerdictBlocked for stub or challenge pages,
	// VerdictNotFound for empty-result pages and VerdictValid otherwise.
	// Blocked takes precedence over NotFound.
	Classify(html string) Verdict

	// Title returns the trimmed page title, or "" when there is none.
	Title(html string) string
}

// RecordExtractor mines a component record out of a valid results page.
type RecordExtractor interface {
	// ExtractRecord never fails on missing fields; unknown fields are left
	// empty. sourceURL is recorded on the result and used to resolve
	// relative links.
	ExtractRecord(html string, pn PartNumber, sourceURL string) (*ComponentRecord, error)
}
