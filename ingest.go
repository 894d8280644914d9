package apptdash

import "context"

// Ingestor runs one ingestion cycle: it fetches the published sheet and
// parses it into a fresh snapshot of appointments.
type Ingestor interface {
	// Ingest fetches and parses the sheet at sourceURL.
	// Returns EINVALID if sourceURL is empty and EUNAVAILABLE if the
	// source could not be reached.
	Ingest(ctx context.Context, sourceURL string) (*Snapshot, error)
}
