package main

import (
	"fmt"

	"github.com/fwojciec/apptdash"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	if err := deps.Dashboard.Load(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", apptdash.ErrorMessage(err))
		return err
	}

	appts := deps.Dashboard.Appointments(c.Search)
	if len(appts) == 0 {
		if c.Search != "" {
			fmt.Fprintf(deps.Stdout, "No appointments match %q.\n", c.Search)
			return nil
		}
		fmt.Fprintln(deps.Stdout, "No appointments found.")
		return nil
	}

	for _, a := range appts {
		fmt.Fprintf(deps.Stdout, "%s  %s %s  %s  %s  %s  %s\n",
			a.ID, a.Date, a.Time, a.CustomerName, a.ServiceType, a.Status, a.Contact)
	}
	return nil
}
