package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/apptdash"
	"github.com/fwojciec/apptdash/dashboard"
	"github.com/fwojciec/apptdash/fs"
	"github.com/fwojciec/apptdash/gemini"
	appthttp "github.com/fwojciec/apptdash/http"
	"github.com/fwojciec/apptdash/ingest"
	apptslog "github.com/fwojciec/apptdash/slog"
	"github.com/fwojciec/apptdash/sqlite"
	"github.com/joho/godotenv"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database, when the sqlite store is selected.
	DB *sqlite.DB

	// Fetcher used by the default ingestor.
	Fetcher apptdash.Fetcher

	// Services for end-to-end testing. Built from configuration when nil.
	Preferences apptdash.PreferenceService
	Ingestor    apptdash.Ingestor
	Assistant   apptdash.Assistant
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.Fetcher != nil {
		_ = m.Fetcher.Close()
	}
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("apptdash"),
		kong.Description("Appointment dashboard over a published spreadsheet."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Vars{"default_db": defaultDBPath()},
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'apptdash --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	deps.Logger = newLogger(stderr, cmd, cli.Verbose)
	deps.FormURL = cli.FormURL

	prefs, err := m.openPreferences(cli, stderr)
	if err != nil {
		return err
	}
	defer m.Close()
	deps.Preferences = apptslog.NewLoggingPreferenceService(prefs, deps.Logger)
	if m.DB != nil {
		deps.Ping = m.DB.Ping
	}

	ingestor := m.Ingestor
	if ingestor == nil {
		fetcher := appthttp.NewFetcher()
		m.Fetcher = fetcher
		ingestor = ingest.NewIngestor(apptslog.NewLoggingFetcher(fetcher, deps.Logger))
	}

	var assistant apptdash.Assistant
	if cmd == "summarize" || cmd == "ask" || cmd == "serve" {
		if assistant, err = m.openAssistant(ctx, cli, stderr); err != nil {
			return err
		}
		assistant = apptslog.NewLoggingAssistant(assistant, deps.Logger)
	}

	deps.Dashboard = dashboard.New(
		apptslog.NewLoggingIngestor(ingestor, deps.Logger),
		deps.Preferences,
		assistant,
		dashboard.WithDefaultSourceURL(cli.SourceURL),
		dashboard.WithLogger(deps.Logger),
	)

	return kongCtx.Run(deps)
}

func (m *Main) openPreferences(cli *CLI, stderr io.Writer) (apptdash.PreferenceService, error) {
	if m.Preferences != nil {
		return m.Preferences, nil
	}

	if err := os.MkdirAll(filepath.Dir(cli.DB), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	switch cli.Store {
	case storeFile:
		return fs.NewPreferenceStore(filepath.Dir(cli.DB)), nil
	case storeSQLite:
		m.DB = sqlite.NewDB(cli.DB)
		if err := m.DB.Open(); err != nil {
			m.DB = nil
			fmt.Fprintf(stderr, "Hint: Set APPTDASH_DB to use a different database path\n")
			return nil, fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
		}
		return sqlite.NewPreferenceService(m.DB), nil
	default:
		return nil, apptdash.Errorf(apptdash.EINVALID, "unknown store %q", cli.Store)
	}
}

func (m *Main) openAssistant(ctx context.Context, cli *CLI, stderr io.Writer) (apptdash.Assistant, error) {
	if m.Assistant != nil {
		return m.Assistant, nil
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return nil, fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	return gemini.NewAssistant(client,
		gemini.WithModel(cli.Model),
		gemini.WithLanguage(cli.Language),
	), nil
}

// newLogger logs text to stderr for one-shot commands and JSON for serve.
func newLogger(w io.Writer, cmd string, verbose bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelWarn}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	if cmd == "serve" {
		if !verbose {
			opts.Level = slog.LevelInfo
		}
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "apptdash.db"
	}
	return filepath.Join(home, ".apptdash", "apptdash.db")
}
