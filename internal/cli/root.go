package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/julianstephens/pado/internal/backup"
	"github.com/julianstephens/pado/internal/config"
	"github.com/julianstephens/pado/internal/constants"
	"github.com/julianstephens/pado/internal/logger"
	"github.com/julianstephens/pado/internal/models"
	"github.com/julianstephens/pado/internal/session"
	"github.com/julianstephens/pado/internal/storage"
)

type Context struct {
	Store   *storage.Store
	Session *session.Session
	Config  config.Config
	Out     io.Writer
	In      io.Reader

	reader *bufio.Reader
}

// Backups returns the backup manager for the current store
func (c *Context) Backups() *backup.Manager {
	return backup.NewManager(c.Store, c.Store.Backend().Location(), c.Config.ConfigDir())
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if _, err := c.Backups().Create(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

func (c *Context) printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}

func (c *Context) input() *bufio.Reader {
	if c.reader == nil {
		c.reader = bufio.NewReader(c.In)
	}
	return c.reader
}

// confirm asks a y/N question on In. EOF counts as no.
func (c *Context) confirm(prompt string) (bool, error) {
	c.printf("%s [y/N]: ", prompt)
	response, err := c.input().ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// readLine reads a single trimmed line from In
func (c *Context) readLine() (string, error) {
	line, err := c.input().ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// parseDate accepts YYYY-MM-DD or "today" (the store's local date)
func parseDate(store *storage.Store, s string) (string, error) {
	if s == "" || s == "today" {
		return store.Today(), nil
	}
	if _, err := time.Parse(constants.DateFormat, s); err != nil {
		return "", fmt.Errorf("invalid date format, use YYYY-MM-DD or 'today': %w", err)
	}
	return s, nil
}

// formatRecord renders a day record for the terminal
func formatRecord(r models.DayRecord) string {
	var b strings.Builder
	info := r.WeatherType.Info()
	fmt.Fprintf(&b, "%s  %s %s (%s)\n", r.Date, info.Emoji, info.Korean, info.Emotion)

	switch {
	case r.Diary == nil:
		b.WriteString("\n  일기 없음\n")
	case r.Diary.Type == models.DiaryGuided:
		b.WriteString("\n  [guided diary]\n")
		for _, qa := range r.Diary.Answers {
			fmt.Fprintf(&b, "  Q. %s\n", qa.Question)
			fmt.Fprintf(&b, "     %s\n", indent(qa.Answer, "     "))
		}
	default:
		b.WriteString("\n  [free diary]\n")
		fmt.Fprintf(&b, "  %s\n", indent(r.Diary.Content, "  "))
	}

	if len(r.Breathings) > 0 {
		fmt.Fprintf(&b, "\n  심호흡 %d회, 총 %d초\n", len(r.Breathings), r.TotalBreathingSeconds())
		for _, br := range r.Breathings {
			fmt.Fprintf(&b, "    - %ds at %s\n", br.Duration, br.CompletedAt)
		}
	}
	return b.String()
}

func indent(s, prefix string) string {
	return strings.ReplaceAll(strings.TrimRight(s, "\n"), "\n", "\n"+prefix)
}
