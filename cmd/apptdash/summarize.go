package main

import (
	"fmt"

	"github.com/fwojciec/apptdash"
)

// Run executes the summarize command.
func (c *SummarizeCmd) Run(deps *Dependencies) error {
	if err := deps.Dashboard.Load(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", apptdash.ErrorMessage(err))
		return err
	}

	text, err := deps.Dashboard.Summarize(deps.Ctx)
	if text != "" {
		fmt.Fprintln(deps.Stdout, text)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", apptdash.ErrorMessage(err))
		return err
	}
	return nil
}
