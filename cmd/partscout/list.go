package main

import (
	"fmt"

	"github.com/fwojciec/partscout"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	recs, err := deps.Components.FindComponents(deps.Ctx, partscout.ComponentFilter{})
	if err != nil {
		printError(deps, err)
		return err
	}

	if len(recs) == 0 {
		fmt.Fprintln(deps.Stdout, "No components found. Use 'partscout search' to add one.")
		return nil
	}

	if c.Full {
		fmt.Fprintln(deps.Stdout, partscout.FormatRecords(recs))
		return nil
	}

	for _, r := range recs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", r.PartNumber, partscout.OrNA(r.Manufacturer), partscout.OrNA(r.Price))
	}
	return nil
}
