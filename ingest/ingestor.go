// Package ingest turns a published appointment sheet into a snapshot.
package ingest

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/apptdash"
	"github.com/google/uuid"
)

// Ensure Ingestor implements apptdash.Ingestor at compile time.
var _ apptdash.Ingestor = (*Ingestor)(nil)

// Ingestor fetches a published sheet and parses it into appointments.
// It never retries; a failed cycle is repeated only when the caller asks.
type Ingestor struct {
	Fetcher apptdash.Fetcher

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewIngestor creates a new Ingestor backed by fetcher.
func NewIngestor(fetcher apptdash.Fetcher) *Ingestor {
	return &Ingestor{Fetcher: fetcher, Now: time.Now}
}

// Ingest runs one fetch-and-parse cycle against sourceURL.
func (in *Ingestor) Ingest(ctx context.Context, sourceURL string) (*apptdash.Snapshot, error) {
	if strings.TrimSpace(sourceURL) == "" {
		return nil, apptdash.Errorf(apptdash.EINVALID, "source location required")
	}

	now := in.now()
	payload, err := in.Fetcher.Fetch(ctx, CacheBust(sourceURL, now))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		// DNS failures, timeouts, and bad statuses are reported alike.
		return nil, apptdash.Errorf(apptdash.EUNAVAILABLE, "could not reach the data source: %v", err)
	}

	return &apptdash.Snapshot{
		ID:           uuid.New().String(),
		SourceURL:    sourceURL,
		ContentHash:  ComputeHash(payload),
		FetchedAt:    now.UTC(),
		Appointments: apptdash.ParseAppointments(payload),
	}, nil
}

func (in *Ingestor) now() time.Time {
	if in.Now == nil {
		return time.Now()
	}
	return in.Now()
}

// CacheBust appends a timestamp parameter so intermediate caches serve a
// fresh copy of the published sheet.
func CacheBust(sourceURL string, now time.Time) string {
	sep := "?"
	if strings.Contains(sourceURL, "?") {
		sep = "&"
	}
	return sourceURL + sep + "t=" + strconv.FormatInt(now.UnixMilli(), 10)
}

// ComputeHash computes a hash of the payload using xxhash.
func ComputeHash(payload string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(payload))
}
