// Package session holds the state that lives for one run of the app and
// outlives any single screen: currently the sleep timer.
//
// A Session is created once by the entry point and handed to every screen
// that needs it. Nothing here is persisted; a restart starts a fresh
// session. Reset returns a session to its just-created state.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// TimerOption is one of the sleep timer presets
type TimerOption struct {
	Label    string
	Duration time.Duration
}

var TimerOptions = []TimerOption{
	{Label: "15분", Duration: 15 * time.Minute},
	{Label: "30분", Duration: 30 * time.Minute},
	{Label: "1시간", Duration: time.Hour},
	{Label: "2시간", Duration: 2 * time.Hour},
}

type Session struct {
	ID        string
	StartedAt time.Time

	mu       sync.Mutex
	now      func() time.Time
	timerEnd time.Time
}

type Option func(*Session)

func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func New(opts ...Option) *Session {
	s := &Session{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.ID = uuid.New().String()
	s.StartedAt = s.now()
	return s
}

// StartTimer replaces any running timer and returns its end time
func (s *Session) StartTimer(d time.Duration) time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timerEnd = s.now().Add(d)
	return s.timerEnd
}

// Remaining reports the time left on the timer. ok is false when no timer
// is set or it has already run out.
func (s *Session) Remaining() (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timerEnd.IsZero() {
		return 0, false
	}
	left := s.timerEnd.Sub(s.now())
	if left <= 0 {
		return 0, false
	}
	return left, true
}

func (s *Session) Active() bool {
	_, ok := s.Remaining()
	return ok
}

// CheckElapsed clears a timer that has run out and reports whether it did.
// It returns true at most once per timer.
func (s *Session) CheckElapsed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timerEnd.IsZero() || s.now().Before(s.timerEnd) {
		return false
	}
	s.timerEnd = time.Time{}
	return true
}

func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timerEnd = time.Time{}
}

// Reset drops all session state and starts a new session ID
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timerEnd = time.Time{}
	s.ID = uuid.New().String()
	s.StartedAt = s.now()
}

// FormatRemaining renders h:mm:ss, or m:ss under an hour
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	h, m, sec := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%d:%02d", m, sec)
}
