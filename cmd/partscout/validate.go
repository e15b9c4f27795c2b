package main

import (
	"fmt"

	"github.com/fwojciec/partscout"
)

// Run executes the validate command. It fails when any token is invalid.
func (c *ValidateCmd) Run(deps *Dependencies) error {
	invalid := 0
	for _, tok := range c.Tokens {
		cl := partscout.ClassifyToken(tok)
		if cl.Valid {
			fmt.Fprintf(deps.Stdout, "%s\tvalid\t%s\n", cl.Token, cl.Rule)
			continue
		}
		invalid++
		if cl.Rule != "" {
			fmt.Fprintf(deps.Stdout, "%s\tinvalid\t%s (%s)\n", cl.Token, cl.Reason, cl.Rule)
		} else {
			fmt.Fprintf(deps.Stdout, "%s\tinvalid\t%s\n", cl.Token, cl.Reason)
		}
	}

	if invalid > 0 {
		return partscout.Errorf(partscout.EINVALID, "%d of %d tokens are not valid part numbers", invalid, len(c.Tokens))
	}
	return nil
}
