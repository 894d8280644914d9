package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/apptdash"
	"github.com/fwojciec/apptdash/mock"
	apptslog "github.com/fwojciec/apptdash/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingAssistant(t *testing.T) {
	t.Parallel()

	appts := []*apptdash.Appointment{{ID: "row-0-a"}, {ID: "row-1-b"}, {ID: "row-2-c"}}

	t.Run("logs summarize", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Assistant{
			SummarizeFn: func(ctx context.Context, appts []*apptdash.Appointment) (string, error) {
				return "Busy Monday.", nil
			},
		}

		text, err := apptslog.NewLoggingAssistant(inner, logger).Summarize(context.Background(), appts)

		require.NoError(t, err)
		assert.Equal(t, "Busy Monday.", text)
		output := buf.String()
		assert.Contains(t, output, "msg=\"assistant summarize\"")
		assert.Contains(t, output, "records=3")
		assert.Contains(t, output, "chars=12")
	})

	t.Run("logs answer error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Assistant{
			AnswerFn: func(ctx context.Context, question string, appts []*apptdash.Appointment) (string, error) {
				return "", errors.New("quota exceeded")
			},
		}

		_, err := apptslog.NewLoggingAssistant(inner, logger).Answer(context.Background(), "who?", appts)

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "msg=\"assistant answer\"")
		assert.Contains(t, output, "question_chars=4")
		assert.Contains(t, output, "err=\"quota exceeded\"")
	})
}
