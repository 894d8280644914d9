package apptdash

import "context"

// PrefSourceURL is the preference key holding the last working source location.
const PrefSourceURL = "sheet_csv_url"

// PreferenceService persists small user preferences between sessions.
type PreferenceService interface {
	// FindPreference returns the stored value for key.
	// Returns ENOTFOUND if the preference has never been set.
	FindPreference(ctx context.Context, key string) (string, error)

	// SetPreference stores value under key, replacing any previous value.
	// Returns EINVALID if key is empty.
	SetPreference(ctx context.Context, key, value string) error
}
