package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/pado/internal/breathing"
)

func (m Model) updateBreathing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	phase := m.exercise.Status(m.now()).Phase
	switch {
	case key.Matches(msg, m.keys.Back):
		return m.navigate(ScreenMain)
	case key.Matches(msg, m.keys.Enter):
		switch phase {
		case breathing.Ready:
			m.exercise.Start(m.now())
			m.saved = false
			return m, m.startTick(breathingTick)
		case breathing.Complete:
			return m.navigate(ScreenMain)
		}
	case key.Matches(msg, m.keys.Restart):
		if phase == breathing.Complete {
			m.exercise.Restart()
			m.saved = false
		}
	}
	return m, nil
}

// completeBreathing records the finished session once
func (m *Model) completeBreathing() {
	if m.saved {
		return
	}
	now := m.now()
	m.store.RecordBreathing(m.exercise.Elapsed(now), now)
	m.saved = true
}

func (m Model) viewBreathing() string {
	st := m.exercise.Status(m.now())

	lines := []string{
		titleStyle.Render("심호흡"),
		"",
		breathingCircle(st.Phase),
		"",
		accentStyle.Render(st.Phase.Message()),
	}

	switch st.Phase {
	case breathing.Ready:
		lines = append(lines, "", selectedStyle.Render("시작하기 (enter)"))
	case breathing.Complete:
		lines = append(lines, "",
			itemStyle.Render("다시하기 (r)")+" "+selectedStyle.Render("완료 (enter)"))
	default:
		secs := int((st.PhaseLeft + time.Second - 1) / time.Second)
		lines = append(lines,
			subtleStyle.Render(fmt.Sprintf("%d", secs)),
			"",
			subtleStyle.Render(fmt.Sprintf("%d / %d", st.Cycle+1, m.exercise.Pattern.Cycles)),
		)
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

// breathingCircle grows while breathing in and shrinks while breathing out
func breathingCircle(p breathing.Phase) string {
	size := 3
	if p == breathing.Inhale || p == breathing.Hold {
		size = 7
	}
	row := strings.Repeat("●", size)
	rows := make([]string, 0, size/2+1)
	for i := 0; i <= size/2; i++ {
		rows = append(rows, row)
	}
	return accentStyle.Render(strings.Join(rows, "\n"))
}
