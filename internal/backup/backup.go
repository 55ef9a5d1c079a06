// Package backup writes the persisted keys to timestamped JSON files in the
// config directory and restores them. Backups work the same for every
// storage backend because they go through the record store, not the files
// underneath it.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/pado/internal/constants"
	"github.com/julianstephens/pado/internal/logger"
)

const formatVersion = 1

var ErrNothingToBackup = errors.New("nothing to back up: storage is empty")

// Snapshotter is the part of the record store backups need
type Snapshotter interface {
	Snapshot() (map[string]string, error)
	RestoreSnapshot(map[string]string) error
}

// File is the on-disk backup document
type File struct {
	Version   int               `json:"version"`
	CreatedAt string            `json:"createdAt"`
	Source    string            `json:"source"`
	Keys      map[string]string `json:"keys"`
}

// Info describes one backup on disk
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

type Manager struct {
	store     Snapshotter
	source    string
	backupDir string
	now       func() time.Time
}

// NewManager keeps backups in <configDir>/backups. source names the backend
// the data came from and is only recorded for reference.
func NewManager(store Snapshotter, source, configDir string) *Manager {
	return &Manager{
		store:     store,
		source:    source,
		backupDir: filepath.Join(configDir, constants.BackupDirName),
		now:       time.Now,
	}
}

func (m *Manager) Dir() string { return m.backupDir }

// Create writes a new backup and prunes the oldest beyond MaxBackups
func (m *Manager) Create() (string, error) {
	path, err := m.create()
	if err != nil {
		return "", err
	}
	if err := m.rotate(); err != nil {
		logger.Warn("Failed to rotate old backups", "error", err)
	}
	return path, nil
}

func (m *Manager) create() (string, error) {
	snap, err := m.store.Snapshot()
	if err != nil {
		return "", fmt.Errorf("failed to read storage: %w", err)
	}
	if len(snap) == 0 {
		return "", ErrNothingToBackup
	}

	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	now := m.now()
	path, err := m.uniquePath(now)
	if err != nil {
		return "", err
	}

	doc := File{
		Version:   formatVersion,
		CreatedAt: now.UTC().Format(constants.TimestampFormat),
		Source:    m.source,
		Keys:      snap,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize backup: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}

	logger.Info("Backup created", "path", path, "keys", len(snap))
	return path, nil
}

// uniquePath names a backup by minute, falling back to seconds and then a
// counter when several are taken close together
func (m *Manager) uniquePath(now time.Time) (string, error) {
	name := func(stamp string) string {
		return filepath.Join(m.backupDir, constants.BackupFilePrefix+stamp+constants.BackupFileSuffix)
	}

	path := name(now.Format("20060102-1504"))
	if !exists(path) {
		return path, nil
	}

	stamp := now.Format("20060102-150405")
	path = name(stamp)
	for i := 1; exists(path); i++ {
		if i > 100 {
			return "", errors.New("failed to generate unique backup filename")
		}
		path = name(fmt.Sprintf("%s-%d", stamp, i))
	}
	return path, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// List returns the backups newest first. Files that do not look like
// backups are skipped.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Info{}, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []Info{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ts, ok := parseName(entry.Name())
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, Info{
			Path:      filepath.Join(m.backupDir, entry.Name()),
			Timestamp: ts,
			Size:      info.Size(),
		})
	}

	sort.SliceStable(backups, func(i, j int) bool {
		if backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].Path > backups[j].Path
		}
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

// parseName reads the timestamp out of pado-YYYYMMDD-HHMM[SS][-N].json
func parseName(name string) (time.Time, bool) {
	if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
		return time.Time{}, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix)

	parts := strings.Split(stamp, "-")
	if len(parts) == 3 {
		stamp = parts[0] + "-" + parts[1]
	} else if len(parts) != 2 {
		return time.Time{}, false
	}

	for _, layout := range []string{"20060102-1504", "20060102-150405"} {
		if ts, err := time.ParseInLocation(layout, stamp, time.Local); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func (m *Manager) rotate() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// Restore replaces the stored data with the backup at path. The current
// data is backed up first, without rotation, so a restore can be undone.
func (m *Manager) Restore(path string) (previous string, err error) {
	doc, err := Read(path)
	if err != nil {
		return "", err
	}

	previous, err = m.create()
	if err != nil && !errors.Is(err, ErrNothingToBackup) {
		return "", fmt.Errorf("failed to back up current data before restore: %w", err)
	}

	if err := m.store.RestoreSnapshot(doc.Keys); err != nil {
		return previous, fmt.Errorf("failed to restore backup: %w", err)
	}
	logger.Info("Backup restored", "path", path)
	return previous, nil
}

// Read loads and checks a backup file
func Read(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return File{}, fmt.Errorf("backup file does not exist: %s", path)
		}
		return File{}, fmt.Errorf("failed to read backup: %w", err)
	}

	var doc File
	if err := json.Unmarshal(data, &doc); err != nil {
		return File{}, fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}
	if doc.Version != formatVersion {
		return File{}, fmt.Errorf("unsupported backup version %d", doc.Version)
	}
	if doc.Keys == nil {
		doc.Keys = map[string]string{}
	}
	return doc, nil
}
