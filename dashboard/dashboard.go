// Package dashboard holds the in-memory state behind the appointment
// dashboard: the current snapshot, the last ingestion error, and the last
// assistant replies. Each piece of state has a single writer that replaces
// it wholesale.
package dashboard

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fwojciec/apptdash"
	"golang.org/x/sync/singleflight"
)

// State is a point-in-time copy of everything needed to render the dashboard.
type State struct {
	SourceURL        string         `json:"sourceUrl"`
	DefaultSourceURL string         `json:"defaultSourceUrl,omitempty"`
	Syncing          bool           `json:"syncing"`
	Error            string         `json:"error,omitempty"`
	Insight          string         `json:"insight,omitempty"`
	Answer           string         `json:"answer,omitempty"`
	SnapshotID       string         `json:"snapshotId,omitempty"`
	ContentHash      string         `json:"contentHash,omitempty"`
	FetchedAt        *time.Time     `json:"fetchedAt,omitempty"`
	Count            int            `json:"count"`
	Stats            apptdash.Stats `json:"stats"`
}

// Dashboard is the state container for one dashboard session.
type Dashboard struct {
	ingestor  apptdash.Ingestor
	prefs     apptdash.PreferenceService
	assistant apptdash.Assistant

	defaultSourceURL string
	logger           *slog.Logger
	now              func() time.Time

	refresh singleflight.Group
	syncing atomic.Bool

	mu        sync.RWMutex
	inflight  string
	sourceURL string
	snapshot  *apptdash.Snapshot
	errMsg    string
	insight   string
	answer    string
}

// Option configures a Dashboard.
type Option func(*Dashboard)

// WithDefaultSourceURL sets the location used when no preference is stored
// and by ResetSource.
func WithDefaultSourceURL(url string) Option {
	return func(d *Dashboard) {
		d.defaultSourceURL = url
	}
}

// WithLogger sets the logger. Defaults to discarding output.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dashboard) {
		d.logger = logger
	}
}

// WithClock sets the function used to read the current time.
func WithClock(now func() time.Time) Option {
	return func(d *Dashboard) {
		d.now = now
	}
}

// New creates a new Dashboard.
func New(ingestor apptdash.Ingestor, prefs apptdash.PreferenceService, assistant apptdash.Assistant, opts ...Option) *Dashboard {
	d := &Dashboard{
		ingestor:  ingestor,
		prefs:     prefs,
		assistant: assistant,
		logger:    slog.New(slog.DiscardHandler),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Load runs the startup ingestion cycle against the stored source location,
// falling back to the default location when none has been stored.
func (d *Dashboard) Load(ctx context.Context) error {
	url, err := d.prefs.FindPreference(ctx, apptdash.PrefSourceURL)
	switch {
	case apptdash.ErrorCode(err) == apptdash.ENOTFOUND:
		url = d.defaultSourceURL
	case err != nil:
		return err
	}

	if url == "" {
		return apptdash.Errorf(apptdash.EINVALID, "no source location configured")
	}
	return d.Refresh(ctx, url)
}

// ResetSource refreshes from the default source location.
func (d *Dashboard) ResetSource(ctx context.Context) error {
	if d.defaultSourceURL == "" {
		return apptdash.Errorf(apptdash.EINVALID, "no default source location configured")
	}
	return d.Refresh(ctx, d.defaultSourceURL)
}

// Refresh runs one ingestion cycle against sourceURL. A call for the location
// already being fetched joins that cycle and receives its result; a call for
// any other location while a cycle is in flight returns ECONFLICT.
//
// The cycle itself is detached from the caller's cancellation so that one
// caller going away does not fail the others. Each caller stops waiting when
// its own ctx is done.
//
// On failure the error message is recorded and the loaded records are kept.
// On success the records are replaced, and the location is persisted unless
// the sheet had no data rows.
func (d *Dashboard) Refresh(ctx context.Context, sourceURL string) error {
	d.mu.Lock()
	if d.inflight != "" && d.inflight != sourceURL {
		busy := d.inflight
		d.mu.Unlock()
		d.logger.Debug("refresh rejected", "url", sourceURL, "in_flight", busy)
		return apptdash.Errorf(apptdash.ECONFLICT, "refresh already in progress")
	}
	d.inflight = sourceURL
	d.mu.Unlock()

	cycleCtx := context.WithoutCancel(ctx)
	ch := d.refresh.DoChan(sourceURL, func() (any, error) {
		d.mu.Lock()
		d.inflight = sourceURL
		d.mu.Unlock()
		d.syncing.Store(true)
		defer func() {
			d.mu.Lock()
			d.inflight = ""
			d.mu.Unlock()
			d.syncing.Store(false)
		}()
		return nil, d.ingest(cycleCtx, sourceURL)
	})

	select {
	case res := <-ch:
		if res.Shared {
			d.logger.Debug("joined in-flight refresh", "url", sourceURL)
		}
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dashboard) ingest(ctx context.Context, sourceURL string) error {
	d.mu.Lock()
	d.sourceURL = sourceURL
	d.errMsg = ""
	d.mu.Unlock()

	snap, err := d.ingestor.Ingest(ctx, sourceURL)
	if err != nil {
		d.setError(err)
		return err
	}

	d.mu.Lock()
	prev := d.snapshot
	d.snapshot = snap
	d.mu.Unlock()

	if prev != nil && prev.ContentHash == snap.ContentHash {
		d.logger.Debug("source content unchanged", "url", sourceURL, "hash", snap.ContentHash)
	}

	// A sheet with no data rows is not remembered as a working location.
	if snap.Len() == 0 {
		d.logger.Debug("empty sheet, location not persisted", "url", sourceURL)
		return nil
	}

	if err := d.prefs.SetPreference(ctx, apptdash.PrefSourceURL, sourceURL); err != nil {
		d.setError(err)
		return err
	}
	return nil
}

func (d *Dashboard) setError(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.errMsg = "failed to load appointments: " + apptdash.ErrorMessage(err)
}

// Syncing reports whether an ingestion cycle is in flight.
func (d *Dashboard) Syncing() bool {
	return d.syncing.Load()
}

// SourceURL returns the location of the most recent ingestion attempt.
func (d *Dashboard) SourceURL() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.sourceURL
}

// DefaultSourceURL returns the configured default location.
func (d *Dashboard) DefaultSourceURL() string {
	return d.defaultSourceURL
}

// Snapshot returns the current snapshot, or nil before the first success.
func (d *Dashboard) Snapshot() *apptdash.Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.snapshot
}

// current returns the full record set of the current snapshot.
func (d *Dashboard) current() []*apptdash.Appointment {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.snapshot == nil {
		return nil
	}
	return d.snapshot.Appointments
}

// Appointments returns the current records matching search.
func (d *Dashboard) Appointments(search string) []*apptdash.Appointment {
	return slices.Clone(apptdash.FilterAppointments(d.current(), search))
}

// Stats computes statistics over the current records.
func (d *Dashboard) Stats() apptdash.Stats {
	return apptdash.ComputeStats(d.current(), d.now())
}

// Summarize asks the assistant to analyze the full record set and records
// the text to display. On failure the displayed text is SummaryFallback and
// the error is returned alongside it.
func (d *Dashboard) Summarize(ctx context.Context) (string, error) {
	appts := d.current()
	if len(appts) == 0 {
		return "", apptdash.Errorf(apptdash.EINVALID, "no appointments loaded")
	}

	text, err := d.assistant.Summarize(ctx, appts)
	switch {
	case err != nil:
		d.logger.Error("schedule analysis failed", "err", err)
		text = apptdash.SummaryFallback
	case strings.TrimSpace(text) == "":
		text = apptdash.NoInsightMessage
	}

	d.mu.Lock()
	d.insight = text
	d.mu.Unlock()
	return text, err
}

// ClearInsight dismisses the displayed schedule analysis.
func (d *Dashboard) ClearInsight() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.insight = ""
}

// Ask asks the assistant a question about the full record set and records
// the text to display. On failure the displayed text is AnswerFallback and
// the error is returned alongside it. Concurrent calls race; the last reply
// to arrive is the one displayed.
func (d *Dashboard) Ask(ctx context.Context, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", apptdash.Errorf(apptdash.EINVALID, "question required")
	}
	appts := d.current()
	if len(appts) == 0 {
		return "", apptdash.Errorf(apptdash.EINVALID, "no appointments loaded")
	}

	text, err := d.assistant.Answer(ctx, question, appts)
	if err != nil {
		d.logger.Error("question failed", "err", err)
		text = apptdash.AnswerFallback
	}

	d.mu.Lock()
	d.answer = text
	d.mu.Unlock()
	return text, err
}

// State returns a copy of the dashboard state.
func (d *Dashboard) State() State {
	d.mu.RLock()
	s := State{
		SourceURL:        d.sourceURL,
		DefaultSourceURL: d.defaultSourceURL,
		Error:            d.errMsg,
		Insight:          d.insight,
		Answer:           d.answer,
	}
	snap := d.snapshot
	d.mu.RUnlock()

	s.Syncing = d.Syncing()
	if snap != nil {
		fetchedAt := snap.FetchedAt
		s.SnapshotID = snap.ID
		s.ContentHash = snap.ContentHash
		s.FetchedAt = &fetchedAt
		s.Count = snap.Len()
		s.Stats = apptdash.ComputeStats(snap.Appointments, d.now())
	} else {
		s.Stats = apptdash.ComputeStats(nil, d.now())
	}
	return s
}
