package fs

import (
	"io"
	"os"
	"unicode/utf8"

	"github.com/fwojciec/partscout"
)

// DefaultMaxTextSize is the largest text file ReadText accepts by default.
const DefaultMaxTextSize = 5 << 20

// ReadText reads a UTF-8 text file. Files larger than maxBytes are rejected
// rather than truncated, so a part list is never silently cut short.
func ReadText(path string, maxBytes int64) (string, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxTextSize
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return "", partscout.Errorf(partscout.ENOTFOUND, "file not found: %s", path)
	} else if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return "", err
	}
	if int64(len(data)) > maxBytes {
		return "", partscout.Errorf(partscout.EINVALID, "file %s exceeds %d bytes", path, maxBytes)
	}
	if !utf8.Valid(data) {
		return "", partscout.Errorf(partscout.EINVALID, "file %s is not UTF-8 text", path)
	}
	return string(data), nil
}
