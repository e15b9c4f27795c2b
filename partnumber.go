package partscout

import (
	"regexp"
	"strings"
)

// PartNumber is a normalized, validated part-number string.
type PartNumber string

// Token length bounds, inclusive.
const (
	MinPartNumberLen = 3
	MaxPartNumberLen = 40
)

// Rule is a named shape in the part-number grammar.
type Rule struct {
	Name    string
	Shape   string // regular expression body, unanchored
	Example string

	// Anchored rules must match the whole token. Unanchored rules veto on any
	// substring match and are only used for exclusions.
	Anchored bool

	re *regexp.Regexp
}

// MatchString reports whether token matches the rule.
func (r *Rule) MatchString(token string) bool {
	return r.re.MatchString(token)
}

func newRule(name, shape, example string, anchored bool) *Rule {
	expr := shape
	if anchored {
		expr = `^(?:` + shape + `)$`
	}
	return &Rule{
		Name:     name,
		Shape:    shape,
		Example:  example,
		Anchored: anchored,
		re:       regexp.MustCompile(expr),
	}
}

// Exclusion rules veto a token even when an inclusion rule accepts it.
// Order is the evaluation order; the first match is reported.
var exclusionRules = []*Rule{
	newRule("year", `\d{4}`, "2024", true),
	newRule("small-integer", `\d{1,3}`, "42", true),
	newRule("abbreviation", `[A-Z]{1,3}`, "API", true),
	newRule("short-code", `[A-Z]{1,2}\d{1,2}`, "R12", true),
	newRule("iso-date", `\d{4}-\d{2}-\d{2}`, "2024-01-01", true),
	newRule("serial", `[A-Z]\d{4}[A-Z]?`, "A1234B", true),
	newRule("placeholder", `(?:REF|ITEM|PART)\d+`, "REF123", true),
	newRule("date-code", `[A-Z]{2}\d{6}`, "AB123456", true),
	newRule("bare-number", `\d{6,8}`, "123456", true),
	newRule("letters-only", `[A-Z]{2,4}`, "SMD", true),
	newRule("description-word", `CUSTOMER|MICROCONTROLLER|BIT.*CONTROLLER`, "8BITCONTROLLER1", false),
	newRule("long-prefix", `^[A-Z]{10,}\d`, "DESCRIPTION1", false),
	newRule("component-noun", `(?:CONNECTOR|RESISTOR|CAPACITOR|DIODE|TRANSISTOR)[A-Z]*\d`, "RESISTOR10K", false),
	newRule("range-pair", `[A-Z]+\d+-[A-Z]+\d+`, "SW17-SW19", true),
	newRule("range-short", `[A-Z]+\d+-\d+`, "D1-11", true),
	newRule("range-open", `[A-Z]+-\d+`, "SW-19", true),
}

// Inclusion rules model real part-number shapes. The first three are the
// highest-precision shapes and are also used to scan free text.
var inclusionRules = []*Rule{
	newRule("family-suffix", `[A-Z]{2,8}\d{2,8}[A-Z]?(?:-[A-Z0-9]+)*`, "NE555P", true),
	newRule("discrete", `(?:[A-Z]\d{1,2}|\d)[A-Z]{1,4}\d{1,6}(?:-[A-Z0-9]+)*`, "1N4148", true),
	newRule("long-series", `[A-Z]{2,6}\d{4,6}[A-Z]?(?:-[A-Z0-9]+)*`, "AD8606", true),
	newRule("slash-suffix", `[A-Z]{2,6}\d{2,6}(?:/[A-Z0-9]+)+`, "LM358/NOPB", true),
	newRule("dot-suffix", `[A-Z]{2,6}\d{2,6}(?:\.[A-Z0-9]+)+`, "LM358.DT", true),
	newRule("module", `[A-Z]{3,8}\d{2,6}[A-Z]{0,4}(?:-?\d+)?`, "ATMEGA328P", true),
	newRule("logic-family", `[A-Z]{2,5}\d{2}[A-Z]{1,4}\d{2,6}[A-Z0-9]{0,6}(?:-[A-Z0-9]+)*`, "SN74HC595", true),
}

// scanRuleCount is how many leading inclusion rules are used for free-text scans.
const scanRuleCount = 3

// commonPrefixes is a tunable allow-list. Tokens that start with one of these
// skip the stricter letters-then-digits check.
var commonPrefixes = []string{
	"LM", "NE", "SN", "TL", "UA", "MC", "IC", "CD", "HC", "LS",
	"1N", "2N", "3N", "BC", "PN", "TIP",
	"AT", "AVR", "PIC", "ESP", "STM",
	"IRF", "MPS", "BD", "IR",
	"MAX", "INA", "OPA",
}

var strictLeadRe = regexp.MustCompile(`^[A-Z]{2,}\d{2,}`)

// Grammar returns copies of the exclusion and inclusion rule tables in
// evaluation order.
func Grammar() (exclusions, inclusions []Rule) {
	for _, r := range exclusionRules {
		exclusions = append(exclusions, *r)
	}
	for _, r := range inclusionRules {
		inclusions = append(inclusions, *r)
	}
	return exclusions, inclusions
}

// CommonPrefixes returns the manufacturer-prefix allow-list.
func CommonPrefixes() []string {
	return append([]string(nil), commonPrefixes...)
}

// Reason explains why ClassifyToken rejected a token.
type Reason string

// Rejection reasons, in the order checks are applied.
const (
	ReasonNone     Reason = ""
	ReasonEmpty    Reason = "empty"
	ReasonLength   Reason = "length"
	ReasonMix      Reason = "letters-and-digits"
	ReasonExcluded Reason = "excluded"
	ReasonNoShape  Reason = "no-shape"
	ReasonStrict   Reason = "strict-prefix"
)

// TokenClass is the outcome of classifying a single token.
type TokenClass struct {
	Token  string `json:"token"` // trimmed, uppercased input
	Valid  bool   `json:"valid"`
	Reason Reason `json:"reason,omitempty"`
	Rule   string `json:"rule,omitempty"` // matching exclusion (rejected) or inclusion (accepted) rule
}

// ClassifyToken runs token through the grammar: length and letter/digit
// checks, then exclusions, then inclusions, then the prefix allow-list.
// Exclusions always take precedence over inclusions.
func ClassifyToken(token string) TokenClass {
	t := strings.ToUpper(strings.TrimSpace(token))
	c := TokenClass{Token: t}

	if t == "" {
		c.Reason = ReasonEmpty
		return c
	}
	if n := len(t); n < MinPartNumberLen || n > MaxPartNumberLen {
		c.Reason = ReasonLength
		return c
	}
	if !hasLetterAndDigit(t) {
		c.Reason = ReasonMix
		return c
	}

	for _, r := range exclusionRules {
		if r.MatchString(t) {
			c.Reason = ReasonExcluded
			c.Rule = r.Name
			return c
		}
	}

	for _, r := range inclusionRules {
		if r.MatchString(t) {
			c.Rule = r.Name
			break
		}
	}
	if c.Rule == "" {
		c.Reason = ReasonNoShape
		return c
	}

	if !hasCommonPrefix(t) && !strictLeadRe.MatchString(t) {
		c.Reason = ReasonStrict
		return c
	}

	c.Valid = true
	return c
}

// IsValidPartNumber reports whether token is a plausible part number.
// The check is case-insensitive and ignores surrounding whitespace.
func IsValidPartNumber(token string) bool {
	return ClassifyToken(token).Valid
}

// ParsePartNumber validates token and returns its normalized form.
// Returns EINVALID echoing the offending token when validation fails.
func ParsePartNumber(token string) (PartNumber, error) {
	c := ClassifyToken(token)
	if !c.Valid {
		return "", Errorf(EINVALID, "%q is not a valid part number (e.g., LM358, 1N4148, NE555, SN74HC595)", strings.TrimSpace(token))
	}
	return PartNumber(c.Token), nil
}

func hasLetterAndDigit(s string) bool {
	var letter, digit bool
	for i := 0; i < len(s); i++ {
		switch ch := s[i]; {
		case ch >= 'A' && ch <= 'Z':
			letter = true
		case ch >= '0' && ch <= '9':
			digit = true
		}
	}
	return letter && digit
}

func hasCommonPrefix(s string) bool {
	for _, p := range commonPrefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
