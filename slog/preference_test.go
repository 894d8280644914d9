package slog_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/apptdash"
	"github.com/fwojciec/apptdash/mock"
	apptslog "github.com/fwojciec/apptdash/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingPreferenceService(t *testing.T) {
	t.Parallel()

	t.Run("logs writes without value", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := mock.NewMemoryPreferences(nil)
		svc := apptslog.NewLoggingPreferenceService(inner, debugLogger(&buf))

		err := svc.SetPreference(context.Background(), apptdash.PrefSourceURL, "https://example.com/secret.csv")

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, "msg=\"preference set\"")
		assert.Contains(t, output, "key=sheet_csv_url")
		assert.NotContains(t, output, "secret.csv")
	})

	t.Run("reads pass through", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := mock.NewMemoryPreferences(map[string]string{"k": "v"})
		svc := apptslog.NewLoggingPreferenceService(inner, debugLogger(&buf))

		v, err := svc.FindPreference(context.Background(), "k")

		require.NoError(t, err)
		assert.Equal(t, "v", v)
		assert.Empty(t, buf.String())
	})
}
