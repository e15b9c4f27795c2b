package main

import "fmt"

// Run executes the serve command. It blocks until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	fmt.Fprintf(deps.Stdout, "Listening on %s\n", c.Addr)
	return deps.Server.ListenAndServe(deps.Ctx, c.Addr)
}
