package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/apptdash"
)

// Ensure LoggingAssistant implements apptdash.Assistant.
var _ apptdash.Assistant = (*LoggingAssistant)(nil)

// LoggingAssistant wraps an Assistant with logging.
type LoggingAssistant struct {
	next   apptdash.Assistant
	logger *slog.Logger
}

// NewLoggingAssistant creates a new LoggingAssistant.
func NewLoggingAssistant(next apptdash.Assistant, logger *slog.Logger) *LoggingAssistant {
	return &LoggingAssistant{next: next, logger: logger}
}

// Summarize delegates to the wrapped assistant and logs the call.
func (a *LoggingAssistant) Summarize(ctx context.Context, appts []*apptdash.Appointment) (text string, err error) {
	defer func(begin time.Time) {
		a.logger.Info("assistant summarize",
			"records", len(appts),
			"chars", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Summarize(ctx, appts)
}

// Answer delegates to the wrapped assistant and logs the call.
func (a *LoggingAssistant) Answer(ctx context.Context, question string, appts []*apptdash.Appointment) (text string, err error) {
	defer func(begin time.Time) {
		a.logger.Info("assistant answer",
			"records", len(appts),
			"question_chars", len(question),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Answer(ctx, question, appts)
}
