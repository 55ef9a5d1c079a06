package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m Model) updateOnboarding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Enter):
		return m.navigate(ScreenMain)
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
		return m.quit()
	}
	return m, nil
}

func (m Model) viewOnboarding() string {
	return lipgloss.JoinVertical(lipgloss.Center,
		accentStyle.Render("PA:DO 🌊"),
		"",
		titleStyle.Render("오늘 하루는 어땠나요?"),
		"",
		subtleStyle.Render("날씨로 감정을 기록하고"),
		subtleStyle.Render("파도 소리와 함께 마음을 정리해요"),
		"",
		selectedStyle.Render("시작하기 (enter)"),
	)
}
