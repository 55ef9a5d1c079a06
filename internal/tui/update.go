package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/pado/internal/breathing"
	"github.com/julianstephens/pado/internal/overlay"
	"github.com/julianstephens/pado/internal/tui/components/weatherlist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case tickMsg:
		if msg.id != m.tickID {
			return m, nil
		}
		return m.handleTick()

	case weatherlist.PickWeatherMsg:
		return m.pickWeather(msg)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m.quit()
		}
		m.status = ""
		switch m.screen {
		case ScreenOnboarding:
			return m.updateOnboarding(msg)
		case ScreenMain:
			return m.updateMain(msg)
		case ScreenDiary:
			return m.updateDiary(msg)
		case ScreenGuided:
			return m.updateGuided(msg)
		case ScreenBreathing:
			return m.updateBreathing(msg)
		case ScreenCalendar:
			return m.updateCalendar(msg)
		case ScreenTimer:
			return m.updateTimer(msg)
		case ScreenSettings:
			return m.updateSettings(msg)
		}
	}

	// Anything else belongs to the focused component
	var cmd tea.Cmd
	switch {
	case m.screen == ScreenDiary || m.screen == ScreenGuided:
		m.editor, cmd = m.editor.Update(msg)
	case m.screen == ScreenMain && m.overlay.State() == overlay.WeatherSheet:
		m.weatherList, cmd = m.weatherList.Update(msg)
	case m.screen == ScreenCalendar && m.showDay:
		m.dayView, cmd = m.dayView.Update(msg)
	}
	return m, cmd
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	switch m.screen {
	case ScreenBreathing:
		if !m.exercise.Started() || m.saved {
			return m, nil
		}
		if m.exercise.Status(m.now()).Phase == breathing.Complete {
			m.completeBreathing()
			return m, nil
		}
		return m, tick(m.tickID, breathingTick)

	case ScreenTimer:
		if m.session.CheckElapsed() {
			m.timerDone = true
			return m, nil
		}
		if m.session.Active() {
			return m, tick(m.tickID, timerTick)
		}

	case ScreenMain:
		if m.session.CheckElapsed() {
			m.status = timerDoneTitle + ": " + timerDoneMessage
			return m, nil
		}
		if m.session.Active() {
			return m, tick(m.tickID, timerTick)
		}
	}
	return m, nil
}

func (m *Model) resize() {
	w := max(m.width-8, 20)
	h := max(m.height-10, 5)
	m.weatherList.SetSize(min(w, 50), h)
	m.dayView.SetSize(w, h)
	m.editor.SetWidth(min(w, 80))
	m.editor.SetHeight(max(h-6, 3))
}

func (m *Model) toggleHelp() {
	m.help.ShowAll = !m.help.ShowAll
}

// moveCursor steps a list cursor, clamped to [0, n)
func moveCursor(cursor, delta, n int) int {
	cursor += delta
	if cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}
