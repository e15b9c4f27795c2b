package partscout

import (
	"regexp"
	"strings"
)

// CandidateSet is a deduplicated set of part numbers that remembers the
// order in which members were first added. The zero value is ready to use.
type CandidateSet struct {
	seen  map[PartNumber]struct{}
	items []PartNumber
}

// Add inserts p and reports whether it was not already present.
func (s *CandidateSet) Add(p PartNumber) bool {
	if s.seen == nil {
		s.seen = make(map[PartNumber]struct{})
	}
	if _, ok := s.seen[p]; ok {
		return false
	}
	s.seen[p] = struct{}{}
	s.items = append(s.items, p)
	return true
}

// AddAll inserts every member of ps.
func (s *CandidateSet) AddAll(ps []PartNumber) {
	for _, p := range ps {
		s.Add(p)
	}
}

// Contains reports whether p is in the set.
func (s *CandidateSet) Contains(p PartNumber) bool {
	_, ok := s.seen[p]
	return ok
}

// Len returns the number of members.
func (s *CandidateSet) Len() int {
	return len(s.items)
}

// Slice returns the members in first-discovery order.
func (s *CandidateSet) Slice() []PartNumber {
	return append([]PartNumber(nil), s.items...)
}

var (
	tokenSepRe     = regexp.MustCompile(`[\s,;:]+`)
	leadingLabelRe = regexp.MustCompile(`^(?:REF|ITEM|PART|NO|#|NUM)[:\s]*`)
	trailLabelRe   = regexp.MustCompile(`[:\s]*(?:REF|ITEM|PART|NO|#|NUM)$`)
	greedyAlnumRe  = regexp.MustCompile(`\b[A-Z]{2,8}\d{2,8}[A-Z0-9\-]*\b`)
	scanRes        = buildScanRes()
)

func buildScanRes() []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, scanRuleCount)
	for _, r := range inclusionRules[:scanRuleCount] {
		res = append(res, regexp.MustCompile(`\b(?:`+r.Shape+`)\b`))
	}
	return res
}

// ExtractCandidates normalizes raw text and returns the validated part
// numbers found in it. Greedy scanning is enabled only for SourceOCR.
func ExtractCandidates(raw string, kind SourceKind) []PartNumber {
	return Extract(Normalize(raw), kind)
}

// Extract returns the validated part numbers found in already-normalized
// text. Results of the independent strategies are unioned; order is first
// discovery and carries no meaning.
func Extract(cleaned string, kind SourceKind) []PartNumber {
	var set CandidateSet
	upper := strings.ToUpper(cleaned)

	for _, line := range strings.Split(upper, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, tok := range tokenSepRe.Split(line, -1) {
			for _, form := range tokenForms(tok) {
				addIfValid(&set, form)
			}
		}
	}

	for _, re := range scanRes {
		for _, m := range re.FindAllString(upper, -1) {
			addIfValid(&set, m)
		}
	}

	if kind == SourceOCR {
		for _, m := range greedyAlnumRe.FindAllString(upper, -1) {
			addIfValid(&set, m)
		}
	}

	return set.Slice()
}

// tokenForms returns the token as written and with administrative labels
// and edge punctuation stripped.
func tokenForms(tok string) []string {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return nil
	}
	stripped := leadingLabelRe.ReplaceAllString(tok, "")
	stripped = trailLabelRe.ReplaceAllString(stripped, "")
	stripped = strings.Trim(stripped, ".-/")
	if stripped == tok || stripped == "" {
		return []string{tok}
	}
	return []string{tok, stripped}
}

func addIfValid(set *CandidateSet, token string) {
	if c := ClassifyToken(token); c.Valid {
		set.Add(PartNumber(c.Token))
	}
}
