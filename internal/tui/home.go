package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/pado/internal/overlay"
	"github.com/julianstephens/pado/internal/session"
	"github.com/julianstephens/pado/internal/tui/components/weatherlist"
)

func (m Model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.overlay.State() {
	case overlay.WeatherSheet:
		if key.Matches(msg, m.keys.Back) && !m.weatherList.Filtering() {
			m.overlay.Fire(overlay.Back)
			return m, nil
		}
		var cmd tea.Cmd
		m.weatherList, cmd = m.weatherList.Update(msg)
		return m, cmd

	case overlay.DiarySelect, overlay.Menu:
		choices := m.sheetChoices()
		switch {
		case key.Matches(msg, m.keys.Back):
			m.overlay.Fire(overlay.Back)
		case key.Matches(msg, m.keys.Up):
			m.sheetCursor = moveCursor(m.sheetCursor, -1, len(choices))
		case key.Matches(msg, m.keys.Down):
			m.sheetCursor = moveCursor(m.sheetCursor, 1, len(choices))
		case key.Matches(msg, m.keys.Enter):
			return m.leaveMain(choices[m.sheetCursor].Screen)
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Back):
		if effect, _ := m.overlay.Fire(overlay.Back); effect == overlay.Exit {
			return m.navigate(ScreenOnboarding)
		}
	case key.Matches(msg, m.keys.Weather), key.Matches(msg, m.keys.Enter):
		if _, ok := m.overlay.Fire(overlay.TapBackground); ok {
			m.weatherList.Select(m.weather)
		}
	case key.Matches(msg, m.keys.Diary):
		if _, ok := m.overlay.Fire(overlay.OpenDiarySelect); ok {
			m.sheetCursor = 0
		}
	case key.Matches(msg, m.keys.Menu):
		if _, ok := m.overlay.Fire(overlay.OpenMenu); ok {
			m.sheetCursor = 0
		}
	case key.Matches(msg, m.keys.Breathe):
		return m.leaveMain(ScreenBreathing)
	case key.Matches(msg, m.keys.Help):
		m.toggleHelp()
	}
	return m, nil
}

// leaveMain closes any sheet and moves to s
func (m Model) leaveMain(s Screen) (tea.Model, tea.Cmd) {
	if effect, _ := m.overlay.Fire(overlay.Navigate); effect != overlay.Leave {
		return m, nil
	}
	return m.navigate(s)
}

func (m Model) pickWeather(msg weatherlist.PickWeatherMsg) (tea.Model, tea.Cmd) {
	m.store.PickWeather(msg.Weather)
	m.weather = msg.Weather
	m.overlay.Fire(overlay.Close)
	info := msg.Weather.Info()
	m.status = fmt.Sprintf("오늘의 날씨: %s %s", info.Emoji, info.Korean)
	return m, nil
}

func (m Model) sheetChoices() []choice {
	if m.overlay.State() == overlay.Menu {
		return menuChoices
	}
	return diaryChoices
}

func (m Model) viewMain() string {
	info := m.weather.Info()
	sections := []string{
		accentStyle.Render("PA:DO") + "  " + subtleStyle.Render(m.store.Today()),
		weatherStyle.Render(fmt.Sprintf("%s  %s", info.Emoji, info.Korean)),
		subtleStyle.Render(info.Emotion),
	}
	if _, picked := m.store.GetSelectedWeather(); !picked {
		sections = append(sections, "", subtleStyle.Render("w 키를 눌러 오늘의 날씨를 선택하세요"))
	}

	if summary := m.todaySummary(); summary != "" {
		sections = append(sections, "", summary)
	}
	if left, ok := m.session.Remaining(); ok {
		sections = append(sections, "", "⏱  예약종료까지 "+session.FormatRemaining(left))
	}

	sections = append(sections, "",
		strings.Join([]string{
			itemStyle.Render("[b] 🎵 심호흡"),
			itemStyle.Render("[d] ✏️ 기록"),
			itemStyle.Render("[m] ☰ 메뉴"),
		}, " "),
	)

	switch m.overlay.State() {
	case overlay.WeatherSheet:
		sections = append(sections, "", sheetStyle.Render(m.weatherList.View()))
	case overlay.DiarySelect:
		sections = append(sections, "", sheetStyle.Render(m.viewChoices("감정 정리하기", diaryChoices)))
	case overlay.Menu:
		sections = append(sections, "", sheetStyle.Render(m.viewChoices("메뉴", menuChoices)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) todaySummary() string {
	record, ok := m.store.GetTodayRecord()
	if !ok {
		return ""
	}
	var parts []string
	if record.Diary != nil {
		parts = append(parts, "✏️ 오늘의 기록 완료")
	}
	if n := len(record.Breathings); n > 0 {
		parts = append(parts, fmt.Sprintf("🎵 심호흡 %d회", n))
	}
	return subtleStyle.Render(strings.Join(parts, "  "))
}

func (m Model) viewChoices(title string, choices []choice) string {
	lines := []string{titleStyle.Render(title), ""}
	for i, c := range choices {
		row := c.Title + "  " + subtleStyle.Render(c.Description)
		if i == m.sheetCursor {
			lines = append(lines, selectedStyle.Render("› "+c.Title)+"  "+subtleStyle.Render(c.Description))
		} else {
			lines = append(lines, itemStyle.Render("  ")+row)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
