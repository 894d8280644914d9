package main

import (
	"fmt"

	"github.com/fwojciec/apptdash"
)

// Run executes the source command.
func (c *SourceCmd) Run(deps *Dependencies) error {
	d := deps.Dashboard

	switch {
	case c.Reset && c.URL != "":
		err := apptdash.Errorf(apptdash.EINVALID, "cannot set and reset the location at once")
		fmt.Fprintf(deps.Stderr, "error: %s\n", apptdash.ErrorMessage(err))
		return err
	case c.Reset:
		if err := d.ResetSource(deps.Ctx); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", apptdash.ErrorMessage(err))
			return err
		}
	case c.URL != "":
		if err := d.Refresh(deps.Ctx, c.URL); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", apptdash.ErrorMessage(err))
			return err
		}
	default:
		return c.show(deps)
	}

	fmt.Fprintf(deps.Stdout, "Source set to %s (%d appointments)\n", d.SourceURL(), d.Snapshot().Len())
	return nil
}

func (c *SourceCmd) show(deps *Dependencies) error {
	url, err := deps.Preferences.FindPreference(deps.Ctx, apptdash.PrefSourceURL)
	switch {
	case apptdash.ErrorCode(err) == apptdash.ENOTFOUND:
		url = deps.Dashboard.DefaultSourceURL()
	case err != nil:
		fmt.Fprintf(deps.Stderr, "error: %s\n", apptdash.ErrorMessage(err))
		return err
	}

	if url == "" {
		fmt.Fprintln(deps.Stdout, "No source configured. Use 'apptdash source URL' to set one.")
		return nil
	}
	fmt.Fprintln(deps.Stdout, url)
	return nil
}
