package kv

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/julianstephens/pado/internal/logger"
)

var errUnparsable = errors.New("storage document is not valid JSON")

// File keeps every key in one JSON object on disk. The file is re-read on
// each operation, so edits by hand or by another process are picked up.
type File struct {
	path string
	mu   sync.Mutex
}

func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Init() error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(f.path); err == nil {
		return fmt.Errorf("%w at %s", ErrAlreadyInitialized, f.path)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.write(map[string]string{})
}

// Load never fails for a missing file: absent storage reads as empty
func (f *File) Load() error {
	info, err := os.Stat(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to access storage: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("storage path is a directory: %s", f.path)
	}
	return nil
}

func (f *File) Close() error { return nil }

func (f *File) Location() string { return f.path }

func (f *File) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	if err != nil {
		return "", false, err
	}
	v, ok := doc[key]
	return v, ok, nil
}

func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	if errors.Is(err, errUnparsable) {
		aside, moveErr := f.moveAside()
		if moveErr != nil {
			return moveErr
		}
		logger.Warn("Storage document was unreadable, moved it aside and started over", "path", f.path, "moved_to", aside, "error", err)
		doc = map[string]string{}
	} else if err != nil {
		return err
	}
	doc[key] = value
	return f.write(doc)
}

// moveAside renames the current document to <path>.corrupt-<timestamp>
func (f *File) moveAside() (string, error) {
	aside := fmt.Sprintf("%s.corrupt-%s", f.path, time.Now().UTC().Format("20060102-150405.000"))
	if err := os.Rename(f.path, aside); err != nil {
		return "", fmt.Errorf("failed to move unreadable storage aside: %w", err)
	}
	return aside, nil
}

func (f *File) Remove(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	if err != nil {
		return err
	}
	if _, ok := doc[key]; !ok {
		return nil
	}
	delete(doc, key)
	return f.write(doc)
}

func (f *File) read() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read storage: %w", err)
	}

	doc := map[string]string{}
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", errUnparsable, err)
	}
	if doc == nil {
		doc = map[string]string{}
	}
	return doc, nil
}

func (f *File) write(doc map[string]string) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}
