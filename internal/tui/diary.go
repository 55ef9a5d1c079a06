package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/pado/internal/models"
)

func (m Model) updateDiary(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m.navigate(ScreenMain)
	case key.Matches(msg, m.keys.Save):
		m.store.SaveDiary(models.NewFreeDiary(m.editor.Value()))
		m.status = "일기를 저장했어요"
		return m.navigate(ScreenMain)
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m Model) viewDiary() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("자유롭게 적기"),
		"",
		m.editor.View(),
		"",
		selectedStyle.Render("저장하기 (ctrl+s)"),
	)
}

func (m Model) updateGuided(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m.navigate(ScreenMain)
	case key.Matches(msg, m.keys.Next), key.Matches(msg, m.keys.Save):
		m.storeAnswer()
		if m.step == len(m.answers)-1 || key.Matches(msg, m.keys.Save) {
			m.store.SaveDiary(models.NewGuidedDiary(m.answers))
			m.status = "일기를 저장했어요"
			return m.navigate(ScreenMain)
		}
		m.step++
		m.loadAnswer()
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		if m.step > 0 {
			m.storeAnswer()
			m.step--
			m.loadAnswer()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m *Model) storeAnswer() {
	m.answers[m.step].Answer = m.editor.Value()
}

func (m *Model) loadAnswer() {
	m.editor.Reset()
	m.editor.SetValue(m.answers[m.step].Answer)
}

func (m Model) viewGuided() string {
	q := models.GuidedQuestions[m.step]
	action := "다음 (tab)"
	if m.step == len(m.answers)-1 {
		action = "완료 (tab)"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		subtleStyle.Render(fmt.Sprintf("%d / %d", m.step+1, len(models.GuidedQuestions))),
		"",
		accentStyle.Render("Q."),
		titleStyle.Render(q.Question),
		subtleStyle.Width(max(m.width-8, 40)).Render(q.Description),
		"",
		m.editor.View(),
		"",
		selectedStyle.Render(action),
	)
}
