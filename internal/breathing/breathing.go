// Package breathing sequences the paced breathing exercise: inhale, hold,
// exhale, repeated for a fixed number of cycles. It only computes where an
// exercise is at a given moment; screens own the ticking.
package breathing

import (
	"time"

	"github.com/julianstephens/pado/internal/constants"
)

type Phase int

const (
	Ready Phase = iota
	Inhale
	Hold
	Exhale
	Complete
)

var messages = map[Phase]string{
	Ready:    "하던 일을 멈추고 호흡에 집중하세요.",
	Inhale:   "숨을 들이쉬세요.",
	Hold:     "잠시 멈추세요.",
	Exhale:   "천천히 내쉬세요.",
	Complete: "잘 하셨어요.",
}

// Message is the prompt shown during the phase
func (p Phase) Message() string { return messages[p] }

func (p Phase) String() string {
	switch p {
	case Ready:
		return "ready"
	case Inhale:
		return "inhale"
	case Hold:
		return "hold"
	case Exhale:
		return "exhale"
	case Complete:
		return "complete"
	}
	return "unknown"
}

// Pattern is the timing of one exercise
type Pattern struct {
	Inhale time.Duration
	Hold   time.Duration
	Exhale time.Duration
	Cycles int
}

var DefaultPattern = Pattern{
	Inhale: constants.BreathingInhaleSec * time.Second,
	Hold:   constants.BreathingHoldSec * time.Second,
	Exhale: constants.BreathingExhaleSec * time.Second,
	Cycles: constants.BreathingCycles,
}

func (p Pattern) Cycle() time.Duration { return p.Inhale + p.Hold + p.Exhale }

func (p Pattern) Total() time.Duration { return p.Cycle() * time.Duration(p.Cycles) }

// Status is the position of an exercise at one moment
type Status struct {
	Phase Phase
	// Cycle counts completed cycles
	Cycle int
	// PhaseLeft is the time until the next phase starts
	PhaseLeft time.Duration
}

// At locates elapsed time since the start within the pattern
func (p Pattern) At(elapsed time.Duration) Status {
	if elapsed < 0 {
		return Status{Phase: Ready}
	}
	cycle := p.Cycle()
	if p.Cycles <= 0 || cycle <= 0 || elapsed >= p.Total() {
		return Status{Phase: Complete, Cycle: p.Cycles}
	}

	done := int(elapsed / cycle)
	in := elapsed - time.Duration(done)*cycle
	switch {
	case in < p.Inhale:
		return Status{Phase: Inhale, Cycle: done, PhaseLeft: p.Inhale - in}
	case in < p.Inhale+p.Hold:
		return Status{Phase: Hold, Cycle: done, PhaseLeft: p.Inhale + p.Hold - in}
	default:
		return Status{Phase: Exhale, Cycle: done, PhaseLeft: cycle - in}
	}
}

// Exercise is one run of a pattern. The zero value is not started.
type Exercise struct {
	Pattern   Pattern
	StartedAt time.Time
}

func NewExercise(p Pattern) *Exercise {
	return &Exercise{Pattern: p}
}

func (e *Exercise) Start(now time.Time) { e.StartedAt = now }

func (e *Exercise) Started() bool { return !e.StartedAt.IsZero() }

// Restart returns the exercise to Ready
func (e *Exercise) Restart() { e.StartedAt = time.Time{} }

func (e *Exercise) Status(now time.Time) Status {
	if !e.Started() {
		return Status{Phase: Ready}
	}
	return e.Pattern.At(now.Sub(e.StartedAt))
}

// Elapsed is the whole seconds since the start, as recorded on completion
func (e *Exercise) Elapsed(now time.Time) time.Duration {
	if !e.Started() {
		return 0
	}
	return now.Sub(e.StartedAt).Truncate(time.Second)
}
