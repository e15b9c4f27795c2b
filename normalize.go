package partscout

import "strings"

// SourceKind identifies where raw text came from.
type SourceKind string

// Source kinds accepted by ExtractCandidates.
const (
	SourceText SourceKind = "text"
	SourceOCR  SourceKind = "ocr"
)

// ParseSourceKind converts a user-supplied string into a SourceKind.
// An empty string means SourceText.
func ParseSourceKind(s string) (SourceKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return SourceText, nil
	case "ocr", "image":
		return SourceOCR, nil
	}
	return "", Errorf(EINVALID, "unknown source kind %q (want text or ocr)", s)
}

type glyphClass int

const (
	glyphOther glyphClass = iota
	glyphLetter
	glyphDigit
)

func classify(r rune) glyphClass {
	switch {
	case r >= '0' && r <= '9':
		return glyphDigit
	case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
		return glyphLetter
	}
	return glyphOther
}

// neighborClass is classify, except that glyphs which are themselves
// ambiguous give no context.
func neighborClass(r rune) glyphClass {
	switch r {
	case 'I', 'l', 'O', 'o':
		return glyphOther
	}
	return classify(r)
}

// Normalize repairs common scan and OCR artifacts before tokenization.
//
// Vertical bars become "I". An ambiguous I/l next to digits becomes "1"; an
// uppercase I keeps its letter form when a letter is also adjacent. An
// ambiguous O/0 becomes "O" when only letters are adjacent and "0" when only
// digits are adjacent; mixed contexts are left alone. Characters outside
// letters, digits, space, hyphen, period and slash become spaces, runs of
// horizontal whitespace collapse to one space, and blank lines are dropped.
//
// The result favors recall. Validation enforces precision later.
func Normalize(raw string) string {
	src := []rune(strings.ReplaceAll(raw, "|", "I"))
	out := make([]rune, len(src))

	for i, r := range src {
		left, right := glyphOther, glyphOther
		if i > 0 {
			left = neighborClass(src[i-1])
		}
		if i < len(src)-1 {
			right = neighborClass(src[i+1])
		}
		digitNear := left == glyphDigit || right == glyphDigit
		letterNear := left == glyphLetter || right == glyphLetter

		switch r {
		case 'l':
			if digitNear {
				r = '1'
			}
		case 'I':
			if digitNear && !letterNear {
				r = '1'
			}
		case 'O', 'o', '0':
			switch {
			case digitNear && !letterNear:
				r = '0'
			case letterNear && !digitNear && r == '0':
				r = 'O'
			}
		}
		out[i] = r
	}

	var b strings.Builder
	b.Grow(len(out))
	for _, line := range strings.Split(string(out), "\n") {
		line = collapseSpaces(line)
		if line == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
	}
	return b.String()
}

// collapseSpaces replaces disallowed characters with spaces, collapses
// whitespace runs and trims the line.
func collapseSpaces(line string) string {
	var b strings.Builder
	space := false
	for _, r := range line {
		if classify(r) == glyphOther && r != '-' && r != '.' && r != '/' {
			space = true
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}
