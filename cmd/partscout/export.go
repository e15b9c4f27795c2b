package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fwojciec/partscout"
	"github.com/fwojciec/partscout/xlsx"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	var recs []*partscout.ComponentRecord
	if c.Part != "" {
		rec, err := deps.Components.FindComponentByPartNumber(deps.Ctx, partscout.PartNumber(strings.ToUpper(strings.TrimSpace(c.Part))))
		if err != nil {
			printError(deps, err)
			return err
		}
		recs = append(recs, rec)
	} else {
		var err error
		recs, err = deps.Components.FindComponents(deps.Ctx, partscout.ComponentFilter{})
		if err != nil {
			printError(deps, err)
			return err
		}
	}

	if len(recs) == 0 {
		fmt.Fprintln(deps.Stderr, "error: no components found. Use 'partscout search' to add some first.")
		return partscout.Errorf(partscout.ENOTFOUND, "no components to export")
	}

	f, err := os.Create(c.Output)
	if err != nil {
		return fmt.Errorf("create %s: %w", c.Output, err)
	}
	if err := xlsx.WriteComponents(f, recs); err != nil {
		_ = f.Close()
		printError(deps, err)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", c.Output, err)
	}

	fmt.Fprintf(deps.Stdout, "Exported %d components to %s\n", len(recs), c.Output)
	return nil
}
