package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/partscout/xlsx"
)

// Run executes the import command. Imported rows are merged into stored
// records the same way lookups are.
func (c *ImportCmd) Run(deps *Dependencies) error {
	f, err := os.Open(c.File)
	if err != nil {
		return fmt.Errorf("open %s: %w", c.File, err)
	}
	defer f.Close()

	recs, err := xlsx.ReadComponents(f)
	if err != nil {
		printError(deps, err)
		return err
	}

	var added, updated int
	for _, rec := range recs {
		_, created, err := deps.Components.UpsertComponent(deps.Ctx, rec)
		if err != nil {
			printError(deps, err)
			return err
		}
		if created {
			added++
		} else {
			updated++
		}
	}

	fmt.Fprintf(deps.Stdout, "Imported %d components (%d added, %d updated)\n", len(recs), added, updated)
	return nil
}
