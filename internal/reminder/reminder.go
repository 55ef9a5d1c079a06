// Package reminder nudges the user once a day, at the configured time, to
// record the day's weather if they have not yet.
package reminder

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/julianstephens/pado/internal/constants"
	"github.com/julianstephens/pado/internal/logger"
	"github.com/julianstephens/pado/internal/storage"
)

const (
	Title   = "pado"
	Message = "오늘 너의 하루는 어땠어? 오늘의 날씨를 기록해보세요."
)

// Notifier delivers a reminder to the user
type Notifier interface {
	Notify(title, body string) error
}

// TerminalNotifier rings the bell and prints the reminder
type TerminalNotifier struct {
	Out io.Writer
}

func (n TerminalNotifier) Notify(title, body string) error {
	_, err := fmt.Fprintf(n.Out, "\a[%s] %s\n", title, body)
	return err
}

type Reminder struct {
	store    *storage.Store
	notifier Notifier
	loc      *time.Location

	mu       sync.Mutex
	lastSent string // date of the last reminder sent
}

func New(store *storage.Store, notifier Notifier, loc *time.Location) *Reminder {
	if loc == nil {
		loc = time.Local
	}
	return &Reminder{store: store, notifier: notifier, loc: loc}
}

// Due reports whether a reminder should go out at now: notifications are
// enabled, the reminder time has passed today, today has no record yet and
// nothing was sent today.
func (r *Reminder) Due(now time.Time) bool {
	settings := r.store.GetSettings()
	if !settings.NotificationEnabled {
		return false
	}

	local := now.In(r.loc)
	if local.Before(r.reminderTime(local, settings.ReminderAt)) {
		return false
	}

	today := local.Format(constants.DateFormat)
	r.mu.Lock()
	sent := r.lastSent == today
	r.mu.Unlock()
	if sent {
		return false
	}

	_, recorded := r.store.GetRecord(today)
	return !recorded
}

// reminderTime is the moment on local's date the reminder is set for. An
// unparsable setting falls back to the default time.
func (r *Reminder) reminderTime(local time.Time, at string) time.Time {
	clock, err := time.Parse(constants.TimeFormat, at)
	if err != nil {
		clock, _ = time.Parse(constants.TimeFormat, constants.DefaultReminderAt)
	}
	y, m, d := local.Date()
	return time.Date(y, m, d, clock.Hour(), clock.Minute(), 0, 0, r.loc)
}

// Tick sends the reminder when it is due and reports whether it did
func (r *Reminder) Tick(now time.Time) (bool, error) {
	if !r.Due(now) {
		return false, nil
	}
	if err := r.notifier.Notify(Title, Message); err != nil {
		return false, fmt.Errorf("failed to send reminder: %w", err)
	}

	r.mu.Lock()
	r.lastSent = now.In(r.loc).Format(constants.DateFormat)
	r.mu.Unlock()
	logger.Info("Reminder sent", "date", r.lastSent)
	return true, nil
}

// Start schedules Tick on a fixed interval. The caller must Shutdown the
// returned scheduler.
func (r *Reminder) Start(interval time.Duration) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler(gocron.WithLocation(r.loc))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if _, err := r.Tick(time.Now()); err != nil {
				logger.Error("Reminder failed", "error", err)
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("failed to schedule reminder: %w", err)
	}

	s.Start()
	return s, nil
}

// Run schedules reminders and blocks until ctx is done
func (r *Reminder) Run(ctx context.Context, interval time.Duration) error {
	s, err := r.Start(interval)
	if err != nil {
		return err
	}
	<-ctx.Done()
	if err := s.Shutdown(); err != nil {
		return fmt.Errorf("failed to stop scheduler: %w", err)
	}
	return nil
}

// DefaultInterval is how often the reminder time is checked
const DefaultInterval = constants.ReminderPollInterval * time.Second
