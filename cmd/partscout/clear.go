package main

import (
	"fmt"

	"github.com/fwojciec/partscout"
)

// Run executes the clear command.
func (c *ClearCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return partscout.Errorf(partscout.EINVALID, "use --force to confirm deletion")
	}

	n, err := deps.Components.DeleteAllComponents(deps.Ctx)
	if err != nil {
		printError(deps, err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted %d components\n", n)
	return nil
}
