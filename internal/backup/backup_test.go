package backup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/pado/internal/constants"
	"github.com/julianstephens/pado/internal/kv"
	"github.com/julianstephens/pado/internal/models"
	"github.com/julianstephens/pado/internal/storage"
)

func setupTestManager(t *testing.T) (*Manager, *storage.Store, *time.Time) {
	t.Helper()
	now := time.Date(2024, 3, 15, 21, 5, 0, 0, time.Local)
	store := storage.New(kv.NewMemory(), storage.WithClock(func() time.Time { return now }))
	store.PickWeather(models.WeatherRainy)
	store.SaveDiary(models.NewFreeDiary("rainy day"))

	mgr := NewManager(store, "memory", t.TempDir())
	mgr.now = func() time.Time { return now }
	return mgr, store, &now
}

func TestCreateBackup(t *testing.T) {
	mgr, store, _ := setupTestManager(t)

	path, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if filepath.Base(path) != "pado-20240315-2105.json" {
		t.Errorf("backup name = %s", filepath.Base(path))
	}

	doc, err := Read(path)
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	snap, _ := store.Snapshot()
	if diff := cmp.Diff(snap, doc.Keys); diff != "" {
		t.Errorf("backup keys mismatch (-want +got):\n%s", diff)
	}
	if doc.Source != "memory" {
		t.Errorf("Source = %q, want memory", doc.Source)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("failed to stat backup: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("backup permissions = %v, want 0600", info.Mode().Perm())
	}
}

func TestCreateBackupEmptyStore(t *testing.T) {
	mgr := NewManager(storage.New(kv.NewMemory()), "memory", t.TempDir())
	if _, err := mgr.Create(); !errors.Is(err, ErrNothingToBackup) {
		t.Errorf("Create() error = %v, want ErrNothingToBackup", err)
	}
}

func TestCreateBackupNameCollisions(t *testing.T) {
	mgr, _, _ := setupTestManager(t)

	seen := map[string]bool{}
	for i := 0; i < 4; i++ {
		path, err := mgr.Create()
		if err != nil {
			t.Fatalf("Create() #%d failed: %v", i, err)
		}
		if seen[path] {
			t.Fatalf("Create() reused path %s", path)
		}
		seen[path] = true
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(backups) != 4 {
		t.Errorf("List() = %d backups, want 4", len(backups))
	}
}

func TestListBackupsSortedNewestFirst(t *testing.T) {
	mgr, _, now := setupTestManager(t)

	for i := 0; i < 3; i++ {
		*now = now.Add(time.Hour)
		if _, err := mgr.Create(); err != nil {
			t.Fatalf("Create() failed: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(mgr.Dir(), "notes.txt"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(mgr.Dir(), "pado-garbage.json"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(backups) != 3 {
		t.Fatalf("List() = %d backups, want 3", len(backups))
	}
	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Errorf("backups not sorted newest first: %v", backups)
		}
	}
	if backups[0].Size == 0 {
		t.Error("Size not populated")
	}
}

func TestListBackupsMissingDir(t *testing.T) {
	mgr := NewManager(storage.New(kv.NewMemory()), "memory", filepath.Join(t.TempDir(), "nowhere"))
	backups, err := mgr.List()
	if err != nil || len(backups) != 0 {
		t.Errorf("List() = %v, %v; want empty", backups, err)
	}
}

func TestBackupRotation(t *testing.T) {
	mgr, _, now := setupTestManager(t)

	for i := 0; i < constants.MaxBackups+3; i++ {
		*now = now.Add(24 * time.Hour)
		if _, err := mgr.Create(); err != nil {
			t.Fatalf("Create() #%d failed: %v", i, err)
		}
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Errorf("after rotation %d backups, want %d", len(backups), constants.MaxBackups)
	}
	if !backups[0].Timestamp.Equal(now.Truncate(time.Minute)) {
		t.Errorf("newest backup %v was rotated away", now)
	}
}

func TestRestoreBackup(t *testing.T) {
	mgr, store, now := setupTestManager(t)

	path, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	want := store.GetAllRecords()

	store.ClearAllRecords()
	store.SaveRecord(models.DayRecord{Date: "2024-01-01", WeatherType: models.WeatherStorm})
	*now = now.Add(time.Minute)

	previous, err := mgr.Restore(path)
	if err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}
	if previous == "" || previous == path {
		t.Errorf("Restore() previous = %q, want a new safety backup", previous)
	}

	if diff := cmp.Diff(want, store.GetAllRecords()); diff != "" {
		t.Errorf("records after restore mismatch (-want +got):\n%s", diff)
	}
	if w, _ := store.GetSelectedWeather(); w != models.WeatherRainy {
		t.Errorf("selected weather after restore = %s, want rainy", w)
	}

	safety, err := Read(previous)
	if err != nil {
		t.Fatalf("Read(previous) failed: %v", err)
	}
	if !strings.Contains(safety.Keys[constants.KeyRecords], "2024-01-01") {
		t.Error("safety backup does not hold the pre-restore data")
	}
}

func TestRestoreInvalidBackup(t *testing.T) {
	mgr, store, _ := setupTestManager(t)
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "not json", content: "garbage", wantErr: "corrupted"},
		{name: "wrong version", content: `{"version":9,"keys":{}}`, wantErr: "unsupported backup version"},
		{name: "bad records", content: `{"version":1,"keys":{"records":"nope"}}`, wantErr: "invalid records"},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, fmt.Sprintf("bad-%d.json", i))
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}
			_, err := mgr.Restore(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Restore() error = %v, want containing %q", err, tt.wantErr)
			}
			if _, ok := store.GetTodayRecord(); !ok {
				t.Error("failed restore changed the store")
			}
		})
	}

	if _, err := mgr.Restore(filepath.Join(dir, "missing.json")); err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("Restore(missing) error = %v", err)
	}
}

func TestParseName(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
	}{
		{"pado-20240315-2105.json", true},
		{"pado-20240315-210512.json", true},
		{"pado-20240315-210512-3.json", true},
		{"pado-20240315.json", false},
		{"other-20240315-2105.db", false},
		{"pado-2024031-2105.json", false},
	}
	for _, tt := range tests {
		if _, ok := parseName(tt.name); ok != tt.ok {
			t.Errorf("parseName(%q) ok = %v, want %v", tt.name, ok, tt.ok)
		}
	}
}
