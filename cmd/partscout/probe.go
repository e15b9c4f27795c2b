package main

import (
	"fmt"
)

// Run executes the probe command.
func (c *ProbeCmd) Run(deps *Dependencies) error {
	res, err := deps.Prober.Probe(deps.Ctx)
	if err != nil {
		if res != nil && res.Message != "" {
			fmt.Fprintln(deps.Stderr, res.Message)
		}
		printError(deps, err)
		return err
	}

	canConnect := "no"
	if res.CanConnect {
		canConnect = "yes"
	}
	fmt.Fprintf(deps.Stdout, "URL:         %s\n", res.URL)
	fmt.Fprintf(deps.Stdout, "Status:      %d\n", res.Status)
	fmt.Fprintf(deps.Stdout, "Length:      %d bytes\n", res.BodyLength)
	fmt.Fprintf(deps.Stdout, "Title:       %s\n", res.Title)
	fmt.Fprintf(deps.Stdout, "Verdict:     %s\n", res.Verdict)
	fmt.Fprintf(deps.Stdout, "Can connect: %s\n", canConnect)
	fmt.Fprintln(deps.Stdout, res.Message)
	return nil
}
