package slog

import (
	"context"
	"log/slog"

	"github.com/fwojciec/apptdash"
)

// Ensure LoggingPreferenceService implements apptdash.PreferenceService.
var _ apptdash.PreferenceService = (*LoggingPreferenceService)(nil)

// LoggingPreferenceService wraps a PreferenceService and logs writes.
type LoggingPreferenceService struct {
	next   apptdash.PreferenceService
	logger *slog.Logger
}

// NewLoggingPreferenceService creates a new LoggingPreferenceService.
func NewLoggingPreferenceService(next apptdash.PreferenceService, logger *slog.Logger) *LoggingPreferenceService {
	return &LoggingPreferenceService{next: next, logger: logger}
}

// FindPreference delegates to the wrapped service.
func (s *LoggingPreferenceService) FindPreference(ctx context.Context, key string) (string, error) {
	return s.next.FindPreference(ctx, key)
}

// SetPreference delegates to the wrapped service and logs the write.
func (s *LoggingPreferenceService) SetPreference(ctx context.Context, key, value string) (err error) {
	defer func() {
		s.logger.Debug("preference set", "key", key, "err", err)
	}()
	return s.next.SetPreference(ctx, key, value)
}
