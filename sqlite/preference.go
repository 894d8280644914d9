package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fwojciec/apptdash"
)

// Compile-time interface verification.
var _ apptdash.PreferenceService = (*PreferenceService)(nil)

// PreferenceService implements apptdash.PreferenceService using SQLite.
type PreferenceService struct {
	db *DB
}

// NewPreferenceService creates a new PreferenceService.
func NewPreferenceService(db *DB) *PreferenceService {
	return &PreferenceService{db: db}
}

// FindPreference retrieves the value stored under key.
func (s *PreferenceService) FindPreference(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `
		SELECT value FROM preferences WHERE key = ?
	`, key).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", apptdash.Errorf(apptdash.ENOTFOUND, "preference %q not found", key)
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// SetPreference inserts or replaces the value stored under key.
func (s *PreferenceService) SetPreference(ctx context.Context, key, value string) error {
	if key == "" {
		return apptdash.Errorf(apptdash.EINVALID, "preference key required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO preferences (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().UTC().Format(time.RFC3339))

	return err
}
