package tui

import (
	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.screen {
	case ScreenOnboarding:
		content = m.viewOnboarding()
	case ScreenMain:
		content = m.viewMain()
	case ScreenDiary:
		content = m.viewDiary()
	case ScreenGuided:
		content = m.viewGuided()
	case ScreenBreathing:
		content = m.viewBreathing()
	case ScreenCalendar:
		content = m.viewCalendar()
	case ScreenTimer:
		content = m.viewTimer()
	case ScreenSettings:
		content = m.viewSettings()
	}

	parts := []string{content, ""}
	if m.status != "" {
		parts = append(parts, statusStyle.Render(m.status))
	}
	parts = append(parts, m.help.View(m))
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
