package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/apptdash"
	"github.com/fwojciec/apptdash/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferenceService_FindPreference(t *testing.T) {
	t.Parallel()

	t.Run("returns ENOTFOUND when unset", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewPreferenceService(setupTestDB(t))

		_, err := svc.FindPreference(context.Background(), apptdash.PrefSourceURL)

		require.Error(t, err)
		assert.Equal(t, apptdash.ENOTFOUND, apptdash.ErrorCode(err))
	})

	t.Run("returns stored value", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewPreferenceService(setupTestDB(t))
		ctx := context.Background()

		require.NoError(t, svc.SetPreference(ctx, apptdash.PrefSourceURL, "https://example.com/pub?output=csv"))

		value, err := svc.FindPreference(ctx, apptdash.PrefSourceURL)
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/pub?output=csv", value)
	})
}

func TestPreferenceService_SetPreference(t *testing.T) {
	t.Parallel()

	t.Run("overwrites existing value", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewPreferenceService(setupTestDB(t))
		ctx := context.Background()

		require.NoError(t, svc.SetPreference(ctx, apptdash.PrefSourceURL, "https://old.example.com"))
		require.NoError(t, svc.SetPreference(ctx, apptdash.PrefSourceURL, "https://new.example.com"))

		value, err := svc.FindPreference(ctx, apptdash.PrefSourceURL)
		require.NoError(t, err)
		assert.Equal(t, "https://new.example.com", value)
	})

	t.Run("returns EINVALID for empty key", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewPreferenceService(setupTestDB(t))

		err := svc.SetPreference(context.Background(), "", "value")

		require.Error(t, err)
		assert.Equal(t, apptdash.EINVALID, apptdash.ErrorCode(err))
	})

	t.Run("survives reopening a file database", func(t *testing.T) {
		t.Parallel()

		path := t.TempDir() + "/prefs.db"
		ctx := context.Background()

		db := sqlite.NewDB(path)
		require.NoError(t, db.Open())
		require.NoError(t, sqlite.NewPreferenceService(db).SetPreference(ctx, apptdash.PrefSourceURL, "https://example.com/a.csv"))
		require.NoError(t, db.Close())

		reopened := sqlite.NewDB(path)
		require.NoError(t, reopened.Open())
		defer reopened.Close()

		value, err := sqlite.NewPreferenceService(reopened).FindPreference(ctx, apptdash.PrefSourceURL)
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/a.csv", value)
	})
}
