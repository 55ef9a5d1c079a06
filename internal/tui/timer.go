package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/pado/internal/session"
)

const (
	timerDoneTitle   = "타이머 종료"
	timerDoneMessage = "설정한 시간이 지났어요."
)

func (m Model) updateTimer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.timerDone {
		if key.Matches(msg, m.keys.Enter) || key.Matches(msg, m.keys.Back) {
			m.timerDone = false
		}
		return m, nil
	}

	if key.Matches(msg, m.keys.Back) {
		return m.navigate(ScreenMain)
	}

	if m.session.Active() {
		if key.Matches(msg, m.keys.Cancel) {
			m.session.Cancel()
			m.tickID++
			m.status = "타이머를 취소했어요"
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Left):
		m.timerCursor = moveCursor(m.timerCursor, -1, len(session.TimerOptions))
	case key.Matches(msg, m.keys.Down), key.Matches(msg, m.keys.Right):
		m.timerCursor = moveCursor(m.timerCursor, 1, len(session.TimerOptions))
	case key.Matches(msg, m.keys.Enter):
		m.session.StartTimer(session.TimerOptions[m.timerCursor].Duration)
		return m, m.startTick(timerTick)
	}
	return m, nil
}

func (m Model) viewTimer() string {
	if m.timerDone {
		return sheetStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
			titleStyle.Render(timerDoneTitle),
			"",
			timerDoneMessage,
			"",
			selectedStyle.Render("확인 (enter)"),
		))
	}

	if left, ok := m.session.Remaining(); ok {
		return lipgloss.JoinVertical(lipgloss.Center,
			subtleStyle.Render("남은 시간"),
			"",
			weatherStyle.Render(session.FormatRemaining(left)),
			"",
			itemStyle.Render("타이머 취소 (c)"),
		)
	}

	lines := []string{subtleStyle.Render("설정한 시간 후에 음악이 종료됩니다"), ""}
	for i, opt := range session.TimerOptions {
		if i == m.timerCursor {
			lines = append(lines, selectedStyle.Render("› "+opt.Label))
		} else {
			lines = append(lines, itemStyle.Render("  "+opt.Label))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
