package reminder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/pado/internal/constants"
)

var (
	ErrAlreadyRunning = errors.New("another pado reminder is already running")

	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
)

// AcquireLock claims the single reminder slot in dir by writing our PID to
// the lockfile. A lockfile left behind by a dead process is taken over.
func AcquireLock(dir string) (release func() error, err error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	path := filepath.Join(dir, constants.ReminderLockfileName)

	if content, err := os.ReadFile(path); err == nil {
		if pid, err := strconv.Atoi(strings.TrimSpace(string(content))); err == nil && pid != getpidFunc() {
			if p, err := findProcessFunc(pid); err == nil && p != nil {
				return nil, fmt.Errorf("%w (pid %d)", ErrAlreadyRunning, pid)
			}
		}
	}

	self := getpidFunc()
	if err := os.WriteFile(path, []byte(strconv.Itoa(self)), 0600); err != nil {
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}

	return func() error {
		content, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if strings.TrimSpace(string(content)) != strconv.Itoa(self) {
			return nil
		}
		return os.Remove(path)
	}, nil
}
