package storage

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/pado/internal/constants"
	"github.com/julianstephens/pado/internal/models"
)

// Keys lists every key the store persists
var Keys = []string{constants.KeySettings, constants.KeyRecords, constants.KeySelectedWeather}

// Snapshot returns the raw stored value of every present key. Unlike the
// record accessors it reports backend failures, since a backup built from a
// failed read would silently be empty.
func (s *Store) Snapshot() (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := make(map[string]string, len(Keys))
	for _, key := range Keys {
		v, ok, err := s.backend.Get(key)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", key, err)
		}
		if ok {
			snap[key] = v
		}
	}
	return snap, nil
}

// RestoreSnapshot replaces all persisted state with snap. Keys missing from
// snap are removed. Values are checked before anything is written.
func (s *Store) RestoreSnapshot(snap map[string]string) error {
	if err := ValidateSnapshot(snap); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range Keys {
		v, ok := snap[key]
		var err error
		if ok {
			err = s.backend.Set(key, v)
		} else {
			err = s.backend.Remove(key)
		}
		if err != nil {
			return fmt.Errorf("failed to restore %s: %w", key, err)
		}
	}
	return nil
}

// ValidateSnapshot checks that every known value in snap parses
func ValidateSnapshot(snap map[string]string) error {
	for key := range snap {
		known := false
		for _, k := range Keys {
			if k == key {
				known = true
			}
		}
		if !known {
			return fmt.Errorf("unknown key in snapshot: %q", key)
		}
	}

	if v, ok := snap[constants.KeyRecords]; ok {
		// single unreadable days are kept by the store, so only the shape is checked
		var records map[string]json.RawMessage
		if err := json.Unmarshal([]byte(v), &records); err != nil {
			return fmt.Errorf("invalid records in snapshot: %w", err)
		}
	}
	if v, ok := snap[constants.KeySettings]; ok {
		var settings models.Settings
		if err := json.Unmarshal([]byte(v), &settings); err != nil {
			return fmt.Errorf("invalid settings in snapshot: %w", err)
		}
	}
	if v, ok := snap[constants.KeySelectedWeather]; ok {
		if !models.WeatherType(v).Valid() {
			return fmt.Errorf("invalid selected weather in snapshot: %q", v)
		}
	}
	return nil
}
