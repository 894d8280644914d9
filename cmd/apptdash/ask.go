package main

import (
	"fmt"

	"github.com/fwojciec/apptdash"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	if err := deps.Dashboard.Load(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", apptdash.ErrorMessage(err))
		return err
	}

	answer, err := deps.Dashboard.Ask(deps.Ctx, c.Question)
	if answer != "" {
		fmt.Fprintln(deps.Stdout, answer)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", apptdash.ErrorMessage(err))
		return err
	}
	return nil
}
