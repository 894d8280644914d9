// Package fs provides file-based storage for apptdash preferences.
package fs

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/fwojciec/apptdash"
)

// PreferenceFile is the name of the file holding preferences.
const PreferenceFile = "preferences.json"

// Ensure PreferenceStore implements apptdash.PreferenceService at compile time.
var _ apptdash.PreferenceService = (*PreferenceStore)(nil)

// PreferenceStore keeps preferences as a JSON object in a single file.
// Writes go to a temporary file that is renamed over the original, so a
// crash never leaves a half-written file behind.
type PreferenceStore struct {
	mu  sync.Mutex
	dir string
}

// NewPreferenceStore creates a store that keeps its file in dir.
func NewPreferenceStore(dir string) *PreferenceStore {
	return &PreferenceStore{dir: dir}
}

func (s *PreferenceStore) path() string {
	return filepath.Join(s.dir, PreferenceFile)
}

// FindPreference returns the value stored under key.
func (s *PreferenceStore) FindPreference(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefs, err := s.load()
	if err != nil {
		return "", err
	}
	value, ok := prefs[key]
	if !ok {
		return "", apptdash.Errorf(apptdash.ENOTFOUND, "preference %q not found", key)
	}
	return value, nil
}

// SetPreference stores value under key.
func (s *PreferenceStore) SetPreference(ctx context.Context, key, value string) error {
	if key == "" {
		return apptdash.Errorf(apptdash.EINVALID, "preference key required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prefs, err := s.load()
	if err != nil {
		return err
	}
	prefs[key] = value
	return s.save(prefs)
}

// load reads the preference file. A missing file is an empty set.
func (s *PreferenceStore) load() (map[string]string, error) {
	prefs := make(map[string]string)
	data, err := os.ReadFile(s.path())
	if errors.Is(err, os.ErrNotExist) {
		return prefs, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &prefs); err != nil {
		return nil, apptdash.Errorf(apptdash.EINTERNAL, "corrupt preference file %s: %v", s.path(), err)
	}
	// A literal null decodes to a nil map.
	if prefs == nil {
		prefs = make(map[string]string)
	}
	return prefs, nil
}

func (s *PreferenceStore) save(prefs map[string]string) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, s.path()); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
