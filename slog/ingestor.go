package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/apptdash"
)

// Ensure LoggingIngestor implements apptdash.Ingestor.
var _ apptdash.Ingestor = (*LoggingIngestor)(nil)

// LoggingIngestor wraps an Ingestor with logging of each cycle.
type LoggingIngestor struct {
	next   apptdash.Ingestor
	logger *slog.Logger
}

// NewLoggingIngestor creates a new LoggingIngestor.
func NewLoggingIngestor(next apptdash.Ingestor, logger *slog.Logger) *LoggingIngestor {
	return &LoggingIngestor{next: next, logger: logger}
}

// Ingest delegates to the wrapped ingestor and logs the outcome.
func (i *LoggingIngestor) Ingest(ctx context.Context, sourceURL string) (snap *apptdash.Snapshot, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", sourceURL,
			"count", snap.Len(),
			"duration", time.Since(begin),
		}
		if snap != nil {
			attrs = append(attrs, "hash", snap.ContentHash)
		}
		if err != nil {
			i.logger.Warn("ingestion", append(attrs, "err", err)...)
			return
		}
		i.logger.Info("ingestion", attrs...)
	}(time.Now())
	return i.next.Ingest(ctx, sourceURL)
}
