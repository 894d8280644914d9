package main

import (
	"fmt"

	"github.com/fwojciec/apptdash"
)

// Run executes the form command.
func (c *FormCmd) Run(deps *Dependencies) error {
	if deps.FormURL == "" {
		err := apptdash.Errorf(apptdash.ENOTFOUND, "no booking form configured")
		fmt.Fprintf(deps.Stderr, "error: %s. Set APPTDASH_FORM_URL or --form-url.\n", apptdash.ErrorMessage(err))
		return err
	}
	fmt.Fprintln(deps.Stdout, deps.FormURL)
	return nil
}
