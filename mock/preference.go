package mock

import (
	"context"
	"sync"

	"github.com/fwojciec/apptdash"
)

var _ apptdash.PreferenceService = (*PreferenceService)(nil)

// PreferenceService is a mock implementation of apptdash.PreferenceService.
type PreferenceService struct {
	FindPreferenceFn func(ctx context.Context, key string) (string, error)
	SetPreferenceFn  func(ctx context.Context, key, value string) error
}

func (s *PreferenceService) FindPreference(ctx context.Context, key string) (string, error) {
	return s.FindPreferenceFn(ctx, key)
}

func (s *PreferenceService) SetPreference(ctx context.Context, key, value string) error {
	return s.SetPreferenceFn(ctx, key, value)
}

// NewMemoryPreferences returns a PreferenceService backed by a map, for tests
// that only care about what was stored.
func NewMemoryPreferences(initial map[string]string) *PreferenceService {
	var mu sync.Mutex
	values := make(map[string]string, len(initial))
	for k, v := range initial {
		values[k] = v
	}
	return &PreferenceService{
		FindPreferenceFn: func(_ context.Context, key string) (string, error) {
			mu.Lock()
			defer mu.Unlock()
			v, ok := values[key]
			if !ok {
				return "", apptdash.Errorf(apptdash.ENOTFOUND, "preference %q not found", key)
			}
			return v, nil
		},
		SetPreferenceFn: func(_ context.Context, key, value string) error {
			mu.Lock()
			defer mu.Unlock()
			values[key] = value
			return nil
		},
	}
}
