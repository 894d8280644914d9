package mock

import (
	"context"

	"github.com/fwojciec/apptdash"
)

var _ apptdash.Ingestor = (*Ingestor)(nil)

// Ingestor is a mock implementation of apptdash.Ingestor.
type Ingestor struct {
	IngestFn func(ctx context.Context, sourceURL string) (*apptdash.Snapshot, error)
}

func (i *Ingestor) Ingest(ctx context.Context, sourceURL string) (*apptdash.Snapshot, error) {
	return i.IngestFn(ctx, sourceURL)
}
