package storage

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/pado/internal/constants"
	"github.com/julianstephens/pado/internal/models"
)

func TestSnapshotRoundTrip(t *testing.T) {
	store, _, _ := setupTestStore(t)
	store.PickWeather(models.WeatherSnowy)
	store.SaveSettings(models.SettingsPatch{ReminderAt: ptr("22:15")})

	snap, err := store.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if len(snap) != 3 {
		t.Errorf("Snapshot() has %d keys, want 3", len(snap))
	}

	other, _, _ := setupTestStore(t)
	other.SaveRecord(models.DayRecord{Date: "2020-01-01", WeatherType: models.WeatherStorm})
	if err := other.RestoreSnapshot(snap); err != nil {
		t.Fatalf("RestoreSnapshot() error = %v", err)
	}

	if diff := cmp.Diff(store.GetAllRecords(), other.GetAllRecords()); diff != "" {
		t.Errorf("records after restore mismatch (-want +got):\n%s", diff)
	}
	if other.GetSettings().ReminderAt != "22:15" {
		t.Errorf("settings not restored: %+v", other.GetSettings())
	}
	if w, _ := other.GetSelectedWeather(); w != models.WeatherSnowy {
		t.Errorf("selected weather not restored: %s", w)
	}
}

func TestRestoreSnapshotRemovesMissingKeys(t *testing.T) {
	store, _, _ := setupTestStore(t)
	store.PickWeather(models.WeatherSunny)

	if err := store.RestoreSnapshot(map[string]string{constants.KeySettings: `{"notificationEnabled":false}`}); err != nil {
		t.Fatalf("RestoreSnapshot() error = %v", err)
	}
	if n := len(store.GetAllRecords()); n != 0 {
		t.Errorf("records survived restore: %d", n)
	}
	if _, ok := store.GetSelectedWeather(); ok {
		t.Error("selected weather survived restore")
	}
}

func TestRestoreSnapshotKeepsUnreadableDays(t *testing.T) {
	store, backend, _ := setupTestStore(t)
	records := `{"2024-01-01":{"date":"2024-01-01","weatherType":"sunny"},"2024-01-03":{"diary":"not a diary"}}`

	if err := store.RestoreSnapshot(map[string]string{constants.KeyRecords: records}); err != nil {
		t.Fatalf("RestoreSnapshot() error = %v", err)
	}
	if _, ok := store.GetRecord("2024-01-01"); !ok {
		t.Error("readable day missing after restore")
	}
	if raw, _, _ := backend.Get(constants.KeyRecords); raw != records {
		t.Errorf("records after restore = %s, want the snapshot value", raw)
	}
}

func TestRestoreSnapshotRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		snap map[string]string
	}{
		{name: "unknown key", snap: map[string]string{"pado_settings": "{}"}},
		{name: "corrupt records", snap: map[string]string{constants.KeyRecords: "nope"}},
		{name: "corrupt settings", snap: map[string]string{constants.KeySettings: "[1,2]"}},
		{name: "unknown weather", snap: map[string]string{constants.KeySelectedWeather: "hail"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _, _ := setupTestStore(t)
			store.PickWeather(models.WeatherSunny)

			if err := store.RestoreSnapshot(tt.snap); err == nil {
				t.Fatal("RestoreSnapshot() expected error")
			}
			if _, ok := store.GetTodayRecord(); !ok {
				t.Error("rejected restore modified the store")
			}
		})
	}
}

func TestSnapshotReportsBackendFailure(t *testing.T) {
	store, backend, _ := setupTestStore(t)
	backend.Fail = errors.New("offline")

	if _, err := store.Snapshot(); err == nil {
		t.Error("Snapshot() expected error from failing backend")
	}
}
