package main

import (
	"fmt"

	"github.com/fwojciec/apptdash"
)

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	if err := deps.Dashboard.Load(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", apptdash.ErrorMessage(err))
		return err
	}

	stats := deps.Dashboard.Stats()
	fmt.Fprintf(deps.Stdout, "Total appointments:    %d\n", stats.TotalAppointments)
	fmt.Fprintf(deps.Stdout, "Today:                 %d\n", stats.TodayAppointments)
	fmt.Fprintf(deps.Stdout, "Pending confirmations: %d\n", stats.PendingConfirmations)
	fmt.Fprintf(deps.Stdout, "Popular service:       %s\n", stats.PopularService)
	return nil
}
