package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/partscout"
)

// Run executes the search command. Parts are looked up one at a time with
// Interval between lookups; a failed part does not stop the others.
func (c *SearchCmd) Run(deps *Dependencies) error {
	failed := 0
	for i, raw := range c.Parts {
		if i > 0 && c.Interval > 0 {
			select {
			case <-deps.Ctx.Done():
				return deps.Ctx.Err()
			case <-time.After(c.Interval):
			}
		}

		rec, err := deps.Lookup.LookupComponent(deps.Ctx, raw)
		if err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", raw, partscout.ErrorMessage(err))
			continue
		}

		stored, created, err := deps.Components.UpsertComponent(deps.Ctx, rec)
		if err != nil {
			printError(deps, err)
			return err
		}

		verb := "Updated"
		if created {
			verb = "Added"
		}
		if i > 0 {
			fmt.Fprintln(deps.Stdout)
		}
		fmt.Fprintf(deps.Stdout, "%s %s\n", verb, stored.PartNumber)
		fmt.Fprintln(deps.Stdout, partscout.FormatRecord(stored))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d lookups failed", failed, len(c.Parts))
	}
	return nil
}
