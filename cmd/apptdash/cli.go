package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/apptdash"
	"github.com/fwojciec/apptdash/dashboard"
)

const (
	storeSQLite = "sqlite"
	storeFile   = "file"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx         context.Context
	Stdout      io.Writer
	Stderr      io.Writer
	Logger      *slog.Logger
	Dashboard   *dashboard.Dashboard
	Preferences apptdash.PreferenceService
	FormURL     string

	// Ping checks the preference database, when there is one.
	Ping func(ctx context.Context) error
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB        string `name:"db" env:"APPTDASH_DB" default:"${default_db}" help:"Database path"`
	Store     string `env:"APPTDASH_STORE" enum:"sqlite,file" default:"sqlite" help:"Preference store (sqlite or file)"`
	SourceURL string `name:"source" env:"APPTDASH_SOURCE_URL" help:"Default published sheet CSV location"`
	FormURL   string `name:"form-url" env:"APPTDASH_FORM_URL" help:"Booking form link"`
	Model     string `env:"GEMINI_MODEL" default:"gemini-3-flash-preview" help:"Gemini model"`
	Language  string `env:"APPTDASH_LANGUAGE" default:"Thai" help:"Language of assistant replies"`
	Verbose   bool   `short:"v" env:"APPTDASH_VERBOSE" help:"Enable debug logging"`

	List      ListCmd      `cmd:"" help:"List appointments, newest first"`
	Stats     StatsCmd     `cmd:"" help:"Show dashboard statistics"`
	Summarize SummarizeCmd `cmd:"" help:"Analyze the schedule with Gemini"`
	Ask       AskCmd       `cmd:"" help:"Ask a question about the schedule"`
	Source    SourceCmd    `cmd:"" help:"Show, change, or reset the sheet location"`
	Form      FormCmd      `cmd:"" help:"Print the booking form link"`
	Serve     ServeCmd     `cmd:"" help:"Serve the dashboard JSON API"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Search string `short:"s" help:"Filter by customer name or service"`
}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct{}

// SummarizeCmd is the "summarize" subcommand.
type SummarizeCmd struct{}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question string `arg:"" help:"Question to ask about the schedule"`
}

// SourceCmd is the "source" subcommand.
type SourceCmd struct {
	URL   string `arg:"" optional:"" help:"New published sheet CSV location"`
	Reset bool   `help:"Reset to the default location"`
}

// FormCmd is the "form" subcommand.
type FormCmd struct{}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `env:"APPTDASH_ADDR" default:":8080" help:"Listen address"`
}
