package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/fwojciec/partscout"
	main "github.com/fwojciec/partscout/cmd/partscout"
	"github.com/fwojciec/partscout/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDeps() (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
	}, stdout, stderr
}

func TestSearchCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("looks up, stores and prints each part", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := newDeps()
		deps.Lookup = &mock.ComponentLookup{
			LookupComponentFn: func(ctx context.Context, pn string) (*partscout.ComponentRecord, error) {
				return &partscout.ComponentRecord{PartNumber: partscout.PartNumber(pn), Distributor: "Mouser"}, nil
			},
		}
		deps.Components = &mock.ComponentService{
			UpsertComponentFn: func(ctx context.Context, rec *partscout.ComponentRecord) (*partscout.ComponentRecord, bool, error) {
				return rec, rec.PartNumber == "LM358", nil
			},
		}

		err := (&main.SearchCmd{Parts: []string{"LM358", "NE555P"}}).Run(deps)

		require.NoError(t, err)
		assert.Empty(t, stderr.String())
		assert.Contains(t, stdout.String(), "Added LM358")
		assert.Contains(t, stdout.String(), "Updated NE555P")
		assert.Contains(t, stdout.String(), "Distributor     : Mouser")
	})

	t.Run("continues after a failed lookup", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := newDeps()
		deps.Lookup = &mock.ComponentLookup{
			LookupComponentFn: func(ctx context.Context, pn string) (*partscout.ComponentRecord, error) {
				if pn == "BAD1" {
					return nil, partscout.Errorf(partscout.EINVALID, "%q is not a valid part number", pn)
				}
				return &partscout.ComponentRecord{PartNumber: partscout.PartNumber(pn), Distributor: "Mouser"}, nil
			},
		}
		var upserts int
		deps.Components = &mock.ComponentService{
			UpsertComponentFn: func(ctx context.Context, rec *partscout.ComponentRecord) (*partscout.ComponentRecord, bool, error) {
				upserts++
				return rec, true, nil
			},
		}

		err := (&main.SearchCmd{Parts: []string{"BAD1", "LM358"}}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 of 2 lookups failed")
		assert.Contains(t, stderr.String(), `error: BAD1: "BAD1" is not a valid part number`)
		assert.Contains(t, stdout.String(), "Added LM358")
		assert.Equal(t, 1, upserts)
	})

	t.Run("stops waiting when context is canceled", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := newDeps()
		ctx, cancel := context.WithCancel(context.Background())
		deps.Ctx = ctx
		deps.Lookup = &mock.ComponentLookup{
			LookupComponentFn: func(ctx context.Context, pn string) (*partscout.ComponentRecord, error) {
				cancel()
				return nil, partscout.Errorf(partscout.ENOTFOUND, "not found")
			},
		}

		err := (&main.SearchCmd{Parts: []string{"LM358", "NE555P"}, Interval: 1 << 40}).Run(deps)

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestListCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints full records", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		deps.Components = &mock.ComponentService{
			FindComponentsFn: func(ctx context.Context, filter partscout.ComponentFilter) ([]*partscout.ComponentRecord, error) {
				return []*partscout.ComponentRecord{{PartNumber: "LM358"}, {PartNumber: "NE555P"}}, nil
			},
		}

		err := (&main.ListCmd{Full: true}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Part Number     : LM358")
		assert.Contains(t, stdout.String(), "Part Number     : NE555P")
		assert.Contains(t, stdout.String(), "\n\n")
	})

	t.Run("reports storage errors", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps()
		deps.Components = &mock.ComponentService{
			FindComponentsFn: func(ctx context.Context, filter partscout.ComponentFilter) ([]*partscout.ComponentRecord, error) {
				return nil, partscout.Errorf(partscout.EINTERNAL, "database is locked")
			},
		}

		err := (&main.ListCmd{}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error: database is locked")
	})
}

func TestScanCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("routes images through OCR with greedy scanning", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		deps.OCR = &mock.OCREngine{
			RecognizeFn: func(ctx context.Context, imagePath string) (string, error) {
				return "X/ATMEGA328PU/X", nil
			},
		}

		err := (&main.ScanCmd{Files: []string{"board.jpg"}, Concurrency: 2}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "ATMEGA328PU\n", stdout.String())
	})

	t.Run("forces OCR for text files", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		var calls atomic.Int32
		deps.OCR = &mock.OCREngine{
			RecognizeFn: func(ctx context.Context, imagePath string) (string, error) {
				calls.Add(1)
				assert.Equal(t, "notes.txt", filepath.Base(imagePath))
				return "LM358", nil
			},
		}

		err := (&main.ScanCmd{Files: []string{"notes.txt"}, OCR: true}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, int32(1), calls.Load())
		assert.Equal(t, "LM358\n", stdout.String())
	})

	t.Run("fails when any file fails", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps()
		deps.OCR = &mock.OCREngine{
			RecognizeFn: func(ctx context.Context, imagePath string) (string, error) {
				return "", partscout.Errorf(partscout.EOCR, "OCR failed: bad image")
			},
		}

		err := (&main.ScanCmd{Files: []string{"a.png", "b.png"}, Concurrency: 1}).Run(deps)

		assert.Equal(t, partscout.EOCR, partscout.ErrorCode(err))
		assert.Contains(t, stderr.String(), "OCR failed: bad image")
	})
}

func TestProbeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints probe result", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		deps.Prober = &mock.Prober{
			ProbeFn: func(ctx context.Context) (*partscout.ProbeResult, error) {
				return &partscout.ProbeResult{
					URL:        "https://www.findchips.com/search/LM358",
					Status:     200,
					BodyLength: 52000,
					Title:      "LM358 | FindChips",
					Verdict:    "valid",
					CanConnect: true,
					Message:    "search site is reachable",
				}, nil
			},
		}

		err := (&main.ProbeCmd{}).Run(deps)

		require.NoError(t, err)
		out := stdout.String()
		assert.Contains(t, out, "Status:      200")
		assert.Contains(t, out, "Length:      52000 bytes")
		assert.Contains(t, out, "Can connect: yes")
	})

	t.Run("reports connection failure", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps()
		deps.Prober = &mock.Prober{
			ProbeFn: func(ctx context.Context) (*partscout.ProbeResult, error) {
				return &partscout.ProbeResult{Message: "cannot reach the search site"}, partscout.Errorf(partscout.ECONNECT, "could not reach upstream")
			},
		}

		err := (&main.ProbeCmd{}).Run(deps)

		assert.Equal(t, partscout.ECONNECT, partscout.ErrorCode(err))
		assert.Contains(t, stderr.String(), "cannot reach the search site")
		assert.Contains(t, stderr.String(), "error: could not reach upstream")
	})
}
