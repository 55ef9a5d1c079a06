package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/pado/internal/calendar"
)

var dayCellStyle = lipgloss.NewStyle().Width(5).Align(lipgloss.Center)

func (m Model) updateCalendar(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showDay {
		if key.Matches(msg, m.keys.Back) || key.Matches(msg, m.keys.Enter) {
			m.showDay = false
			return m, nil
		}
		var cmd tea.Cmd
		m.dayView, cmd = m.dayView.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		return m.navigate(ScreenMain)
	case key.Matches(msg, m.keys.Left):
		m.moveDay(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveDay(1)
	case key.Matches(msg, m.keys.Up):
		m.moveDay(-7)
	case key.Matches(msg, m.keys.Down):
		m.moveDay(7)
	case key.Matches(msg, m.keys.PrevMonth):
		m.shiftMonth(-1)
	case key.Matches(msg, m.keys.NextMonth):
		m.shiftMonth(1)
	case key.Matches(msg, m.keys.Enter):
		if r, ok := m.records[m.cursorDate()]; ok {
			m.dayView.SetRecord(r)
			m.showDay = true
		} else {
			m.status = "기록이 없어요"
		}
	case key.Matches(msg, m.keys.Help):
		m.toggleHelp()
	}
	return m, nil
}

func (m *Model) moveDay(delta int) {
	t := time.Date(m.year, m.month, m.day+delta, 0, 0, 0, 0, time.UTC)
	m.year, m.month, m.day = t.Year(), t.Month(), t.Day()
}

func (m *Model) shiftMonth(delta int) {
	m.year, m.month = calendar.Shift(m.year, m.month, delta)
	m.day = min(m.day, calendar.DaysIn(m.year, m.month))
}

func (m Model) cursorDate() string {
	return calendar.DateKey(m.year, m.month, m.day)
}

func (m Model) viewCalendar() string {
	if m.showDay {
		return lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render(m.cursorDate()),
			"",
			m.dayView.View(),
		)
	}

	today := m.store.Today()
	var header []string
	for _, label := range calendar.WeekdayLabels {
		header = append(header, dayCellStyle.Render(subtleStyle.Render(label)))
	}
	rows := []string{
		titleStyle.Render(fmt.Sprintf("‹  %s  ›", calendar.Title(m.year, m.month))),
		"",
		strings.Join(header, ""),
	}

	for _, week := range calendar.Weeks(m.year, m.month) {
		var cells []string
		for _, day := range week {
			cells = append(cells, dayCellStyle.Render(m.dayCell(day, today)))
		}
		rows = append(rows, strings.Join(cells, ""))
	}

	count := 0
	for date := range m.records {
		if strings.HasPrefix(date, m.cursorDate()[:7]) {
			count++
		}
	}
	rows = append(rows, "", subtleStyle.Render(fmt.Sprintf("이번 달 기록 %d개", count)))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) dayCell(day int, today string) string {
	if day == 0 {
		return ""
	}
	date := calendar.DateKey(m.year, m.month, day)
	label := fmt.Sprintf("%d", day)
	if r, ok := m.records[date]; ok {
		label = r.WeatherType.Info().Emoji
	}
	switch {
	case day == m.day:
		return selectedStyle.Render(label)
	case date == today:
		return todayStyle.Render(label)
	}
	return label
}
