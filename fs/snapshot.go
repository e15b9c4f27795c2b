// Package fs provides file-based storage: HTML snapshots of fetched pages and
// bounded reads of user-supplied text files.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/partscout"
)

// Ensure SnapshotStore implements partscout.SnapshotStore at compile time.
var _ partscout.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore writes fetched pages to a directory so extraction problems
// can be inspected later. File names are content-addressed, so saving the
// same page twice writes one file.
type SnapshotStore struct {
	baseDir string
}

// NewSnapshotStore creates a SnapshotStore that writes to baseDir.
func NewSnapshotStore(baseDir string) *SnapshotStore {
	return &SnapshotStore{baseDir: baseDir}
}

// Save writes html to {baseDir}/{part}-{hash}.html and returns the path.
// The file is written to a temporary name first and renamed into place.
func (s *SnapshotStore) Save(ctx context.Context, pn partscout.PartNumber, html string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(s.baseDir, SnapshotName(pn, html))
	tmp, err := os.CreateTemp(s.baseDir, ".snapshot-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(html); err != nil {
		_ = tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", err
	}
	return path, nil
}

// SnapshotName returns the file name used for a snapshot of html.
// Example: LM358/NOPB → LM358_NOPB-<16 hex digits>.html
func SnapshotName(pn partscout.PartNumber, html string) string {
	return fmt.Sprintf("%s-%016x.html", sanitize(string(pn)), xxhash.Sum64String(html))
}

// sanitize maps characters that are unsafe in file names to underscores.
func sanitize(s string) string {
	if s == "" {
		return "unknown"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			return r
		}
		return '_'
	}, s)
}
