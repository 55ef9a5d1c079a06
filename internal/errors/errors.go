// Package errors renders command failures for the terminal. Known failures
// from the storage, keyring and reminder layers get a follow-up hint.
package errors

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/pado/internal/keyring"
	"github.com/julianstephens/pado/internal/kv"
	"github.com/julianstephens/pado/internal/logger"
	"github.com/julianstephens/pado/internal/reminder"
)

var hints = []struct {
	target error
	hint   string
}{
	{kv.ErrNotInitialized, "Run 'pado init' to create the store, or point --store at an existing one."},
	{kv.ErrEmbeddedCredentials, "Remove the password from the URL and run 'pado secret set' or set PADO_BACKEND_PASSWORD."},
	{keyring.ErrKeyringUnavailable, "Set PADO_BACKEND_PASSWORD instead of using the OS keyring."},
	{reminder.ErrAlreadyRunning, "Stop the running 'pado remind' first, or use 'pado remind --once'."},
}

// Format renders err with the "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Hint returns advice for a known failure, or "" when there is none
func Hint(err error) string {
	for _, h := range hints {
		if errors.Is(err, h.target) {
			return h.hint
		}
	}
	return ""
}

// Report writes err and its hint, if any, to w
func Report(w io.Writer, err error) {
	fmt.Fprintln(w, Format(err))
	if hint := Hint(err); hint != "" {
		fmt.Fprintln(w, "Hint: "+hint)
	}
}

// Fatal logs err, reports it on stderr and exits with code 1
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "error", err)
	Report(os.Stderr, err)
	os.Exit(1)
}

func Fatalf(format string, args ...interface{}) {
	Fatal(fmt.Errorf(format, args...))
}
