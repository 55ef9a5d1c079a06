package overlay

import "testing"

func TestTransitions(t *testing.T) {
	tests := []struct {
		name       string
		from       State
		event      Event
		wantState  State
		wantEffect Effect
		wantOK     bool
	}{
		{"background opens weather", None, TapBackground, WeatherSheet, Stay, true},
		{"diary button", None, OpenDiarySelect, DiarySelect, Stay, true},
		{"menu button", None, OpenMenu, Menu, Stay, true},
		{"back at base exits", None, Back, None, Exit, true},
		{"navigate from base", None, Navigate, None, Leave, true},
		{"close at base is a no-op", None, Close, None, Stay, true},

		{"background ignored over weather", WeatherSheet, TapBackground, WeatherSheet, Stay, false},
		{"background ignored over menu", Menu, TapBackground, Menu, Stay, false},
		{"background ignored over diary", DiarySelect, TapBackground, DiarySelect, Stay, false},
		{"menu ignored over diary", DiarySelect, OpenMenu, DiarySelect, Stay, false},
		{"diary ignored over weather", WeatherSheet, OpenDiarySelect, WeatherSheet, Stay, false},

		{"close weather", WeatherSheet, Close, None, Stay, true},
		{"back closes menu", Menu, Back, None, Stay, true},
		{"back closes diary", DiarySelect, Back, None, Stay, true},
		{"navigate from menu closes and leaves", Menu, Navigate, None, Leave, true},
		{"navigate from diary closes and leaves", DiarySelect, Navigate, None, Leave, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Machine{state: tt.from}
			effect, ok := m.Fire(tt.event)
			if ok != tt.wantOK {
				t.Errorf("Fire(%s) ok = %v, want %v", tt.event, ok, tt.wantOK)
			}
			if effect != tt.wantEffect {
				t.Errorf("Fire(%s) effect = %v, want %v", tt.event, effect, tt.wantEffect)
			}
			if m.State() != tt.wantState {
				t.Errorf("state after %s = %s, want %s", tt.event, m.State(), tt.wantState)
			}
		})
	}
}

func TestEveryStateCanBeLeft(t *testing.T) {
	for _, s := range []State{None, WeatherSheet, DiarySelect, Menu} {
		for _, e := range []Event{Close, Back, Navigate} {
			m := Machine{state: s}
			if _, ok := m.Fire(e); !ok {
				t.Errorf("state %s has no transition for %s", s, e)
			}
			if m.IsOpen() {
				t.Errorf("state %s still open after %s", s, e)
			}
		}
	}
}

func TestBackSequence(t *testing.T) {
	var m Machine
	m.Fire(OpenMenu)
	if effect, _ := m.Fire(Back); effect != Stay {
		t.Errorf("first back effect = %v, want Stay", effect)
	}
	if effect, _ := m.Fire(Back); effect != Exit {
		t.Errorf("second back effect = %v, want Exit", effect)
	}
}

func TestReset(t *testing.T) {
	m := Machine{state: WeatherSheet}
	m.Reset()
	if m.IsOpen() {
		t.Error("IsOpen() after Reset()")
	}
}
