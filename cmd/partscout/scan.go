package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fwojciec/partscout"
	scoutfs "github.com/fwojciec/partscout/fs"
	"golang.org/x/sync/errgroup"
)

// textExtensions are read as text; every other file goes through OCR.
var textExtensions = map[string]bool{
	".txt":  true,
	".text": true,
	".csv":  true,
	".tsv":  true,
	".md":   true,
	".log":  true,
}

// Run executes the scan command.
func (c *ScanCmd) Run(deps *Dependencies) error {
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	results := make([][]partscout.PartNumber, len(c.Files))
	g, ctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(concurrency)
	for i, path := range c.Files {
		g.Go(func() error {
			var (
				raw  string
				kind partscout.SourceKind
				err  error
			)
			if c.OCR || !textExtensions[strings.ToLower(filepath.Ext(path))] {
				kind = partscout.SourceOCR
				raw, err = deps.OCR.Recognize(ctx, path)
			} else {
				kind = partscout.SourceText
				raw, err = scoutfs.ReadText(path, scoutfs.DefaultMaxTextSize)
			}
			if err != nil {
				return partscout.Wrap(partscout.ErrorCode(err), err, "%s: %s", path, partscout.ErrorMessage(err))
			}
			results[i] = partscout.ExtractCandidates(raw, kind)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		printError(deps, err)
		return err
	}

	var set partscout.CandidateSet
	for _, pns := range results {
		set.AddAll(pns)
	}

	if set.Len() == 0 {
		fmt.Fprintln(deps.Stderr, "No part numbers found. Make sure the files contain readable part numbers (e.g. LM358, 1N4148, NE555).")
		return partscout.Errorf(partscout.ENOTFOUND, "no part numbers found")
	}

	for _, pn := range set.Slice() {
		fmt.Fprintln(deps.Stdout, pn)
	}
	return nil
}
