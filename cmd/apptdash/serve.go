package main

import (
	"fmt"

	"github.com/fwojciec/apptdash"
	apptgin "github.com/fwojciec/apptdash/gin"
	"golang.org/x/sync/errgroup"
)

// Run executes the serve command. It blocks until the context is cancelled
// or the server stops on its own.
func (c *ServeCmd) Run(deps *Dependencies) error {
	server := apptgin.NewServer()
	server.Addr = c.Addr
	server.FormURL = deps.FormURL
	server.Dashboard = deps.Dashboard
	server.Logger = deps.Logger
	server.Ping = deps.Ping

	if err := server.Open(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", apptdash.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Listening on %s\n", server.URL())

	g, ctx := errgroup.WithContext(deps.Ctx)
	g.Go(func() error {
		// A failed first load leaves the dashboard empty with its error set.
		if err := deps.Dashboard.Load(ctx); err != nil {
			deps.Logger.Warn("initial load failed", "err", err)
		}
		return nil
	})
	g.Go(func() error {
		select {
		case <-ctx.Done():
			return server.Close()
		case err := <-server.Err():
			_ = server.Close()
			fmt.Fprintf(deps.Stderr, "error: server stopped: %v\n", err)
			return fmt.Errorf("http server: %w", err)
		}
	})
	return g.Wait()
}
