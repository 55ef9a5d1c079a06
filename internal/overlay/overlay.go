// Package overlay models which sheet, if any, is open over the main screen.
//
// The main screen has three bottom sheets and at most one is open at a time.
// Every input is an Event; the transition table below is the only place that
// decides the next State and whether the screen should leave.
package overlay

import "fmt"

type State int

const (
	None State = iota
	WeatherSheet
	DiarySelect
	Menu
)

func (s State) String() string {
	switch s {
	case None:
		return "none"
	case WeatherSheet:
		return "weather"
	case DiarySelect:
		return "diary-select"
	case Menu:
		return "menu"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type Event int

const (
	// TapBackground opens the weather sheet when nothing else is open
	TapBackground Event = iota
	OpenDiarySelect
	OpenMenu
	// Close dismisses the open sheet, e.g. after a choice or a dimmer tap
	Close
	// Back is the platform back gesture or key
	Back
	// Navigate leaves the main screen for another one
	Navigate
)

func (e Event) String() string {
	switch e {
	case TapBackground:
		return "tap-background"
	case OpenDiarySelect:
		return "open-diary-select"
	case OpenMenu:
		return "open-menu"
	case Close:
		return "close"
	case Back:
		return "back"
	case Navigate:
		return "navigate"
	}
	return fmt.Sprintf("Event(%d)", int(e))
}

// Effect is what the screen must do besides redrawing
type Effect int

const (
	Stay Effect = iota
	// Leave: switch to the screen named by the caller
	Leave
	// Exit: back was pressed with nothing open; leave the main screen entirely
	Exit
)

type transition struct {
	next   State
	effect Effect
}

var transitions = map[State]map[Event]transition{
	None: {
		TapBackground:   {WeatherSheet, Stay},
		OpenDiarySelect: {DiarySelect, Stay},
		OpenMenu:        {Menu, Stay},
		Close:           {None, Stay},
		Back:            {None, Exit},
		Navigate:        {None, Leave},
	},
	WeatherSheet: {
		Close:    {None, Stay},
		Back:     {None, Stay},
		Navigate: {None, Leave},
	},
	DiarySelect: {
		Close:    {None, Stay},
		Back:     {None, Stay},
		Navigate: {None, Leave},
	},
	Menu: {
		Close:    {None, Stay},
		Back:     {None, Stay},
		Navigate: {None, Leave},
	},
}

// Machine is the single source of truth for the open overlay. The zero
// value has nothing open.
type Machine struct {
	state State
}

func (m *Machine) State() State { return m.state }

// IsOpen reports whether any sheet is showing
func (m *Machine) IsOpen() bool { return m.state != None }

// Fire applies e. Events with no entry in the table are ignored and
// reported with ok false; the state is unchanged.
func (m *Machine) Fire(e Event) (effect Effect, ok bool) {
	t, ok := transitions[m.state][e]
	if !ok {
		return Stay, false
	}
	m.state = t.next
	return t.effect, true
}

// Reset closes everything without an effect, for re-entering the screen
func (m *Machine) Reset() { m.state = None }
