package reminder

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/julianstephens/pado/internal/kv"
	"github.com/julianstephens/pado/internal/models"
	"github.com/julianstephens/pado/internal/storage"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (n *recordingNotifier) Notify(title, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, title+": "+body)
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

func setupReminder(t *testing.T, now time.Time) (*Reminder, *storage.Store, *recordingNotifier) {
	t.Helper()
	store := storage.New(kv.NewMemory(), storage.WithClock(func() time.Time { return now }), storage.WithLocation(time.UTC))
	n := &recordingNotifier{}
	return New(store, n, time.UTC), store, n
}

func ptr[T any](v T) *T { return &v }

func TestDue(t *testing.T) {
	at := time.Date(2024, 3, 15, 21, 0, 30, 0, time.UTC)

	tests := []struct {
		name  string
		setup func(s *storage.Store)
		now   time.Time
		want  bool
	}{
		{name: "default time, nothing recorded", now: at, want: true},
		{name: "before the reminder time", now: at.Add(-time.Minute), want: false},
		{name: "after the reminder time, not yet sent", now: at.Add(90 * time.Minute), want: true},
		{name: "last minute of the day", now: time.Date(2024, 3, 15, 23, 59, 59, 0, time.UTC), want: true},
		{name: "just after midnight", now: time.Date(2024, 3, 16, 0, 0, 30, 0, time.UTC), want: false},
		{
			name:  "notifications disabled",
			setup: func(s *storage.Store) { s.SaveSettings(models.SettingsPatch{NotificationEnabled: ptr(false)}) },
			now:   at,
			want:  false,
		},
		{
			name:  "already recorded today",
			setup: func(s *storage.Store) { s.PickWeather(models.WeatherSunny) },
			now:   at,
			want:  false,
		},
		{
			name:  "custom reminder time",
			setup: func(s *storage.Store) { s.SaveSettings(models.SettingsPatch{ReminderAt: ptr("07:30")}) },
			now:   time.Date(2024, 3, 15, 7, 30, 0, 0, time.UTC),
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, store, _ := setupReminder(t, at)
			if tt.setup != nil {
				tt.setup(store)
			}
			if got := r.Due(tt.now); got != tt.want {
				t.Errorf("Due() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTickSendsOncePerDay(t *testing.T) {
	at := time.Date(2024, 3, 15, 21, 0, 0, 0, time.UTC)
	r, _, n := setupReminder(t, at)

	sent, err := r.Tick(at)
	if err != nil || !sent {
		t.Fatalf("Tick() = %v, %v; want sent", sent, err)
	}
	if sent, _ := r.Tick(at.Add(20 * time.Second)); sent {
		t.Error("second Tick() in the same minute sent again")
	}
	if n.count() != 1 {
		t.Errorf("notifications = %d, want 1", n.count())
	}

	if sent, _ := r.Tick(at.Add(24 * time.Hour)); !sent {
		t.Error("Tick() on the next day did not send")
	}
}

func TestTickCoarsePolling(t *testing.T) {
	start := time.Date(2024, 3, 15, 20, 57, 10, 0, time.UTC)
	r, _, n := setupReminder(t, start)

	for now := start; now.Before(start.Add(time.Hour)); now = now.Add(5 * time.Minute) {
		if _, err := r.Tick(now); err != nil {
			t.Fatalf("Tick(%s) error = %v", now.Format(time.TimeOnly), err)
		}
	}
	if n.count() != 1 {
		t.Errorf("notifications over an hour of 5m polling = %d, want 1", n.count())
	}
}

func TestTickLateCheckSends(t *testing.T) {
	late := time.Date(2024, 3, 15, 22, 43, 0, 0, time.UTC)
	r, _, n := setupReminder(t, late)

	sent, err := r.Tick(late)
	if err != nil || !sent {
		t.Fatalf("Tick() after the reminder time = %v, %v; want sent", sent, err)
	}
	if n.count() != 1 {
		t.Errorf("notifications = %d, want 1", n.count())
	}
}

func TestTickNotifierError(t *testing.T) {
	at := time.Date(2024, 3, 15, 21, 0, 0, 0, time.UTC)
	r, _, n := setupReminder(t, at)
	n.err = errors.New("no display")

	if _, err := r.Tick(at); err == nil {
		t.Fatal("Tick() expected error")
	}

	n.err = nil
	if sent, _ := r.Tick(at); !sent {
		t.Error("failed reminder was marked as sent")
	}
}

func TestTerminalNotifier(t *testing.T) {
	var buf bytes.Buffer
	if err := (TerminalNotifier{Out: &buf}).Notify(Title, Message); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}
	if !strings.Contains(buf.String(), Message) {
		t.Errorf("output %q missing message", buf.String())
	}
}

func TestRunStopsCleanly(t *testing.T) {
	defer goleak.VerifyNone(t)

	r, _, _ := setupReminder(t, time.Now())
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := r.Run(ctx, time.Hour); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
}
