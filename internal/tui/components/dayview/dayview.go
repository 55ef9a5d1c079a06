// Package dayview shows one day's record in a scrollable viewport.
package dayview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/pado/internal/models"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)
)

type Model struct {
	viewport viewport.Model
	Record   *models.DayRecord
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.Record == nil {
		return mutedStyle.Render("기록이 없어요.")
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetRecord(r models.DayRecord) {
	m.Record = &r
	m.viewport.GotoTop()
	m.Render()
}

func (m *Model) Render() {
	if m.Record == nil {
		m.viewport.SetContent("")
		return
	}
	m.viewport.SetContent(Render(*m.Record))
}

// Render formats a record for display
func Render(r models.DayRecord) string {
	var b strings.Builder
	info := r.WeatherType.Info()
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s  %s %s", r.Date, info.Emoji, info.Korean)))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(info.Emotion))
	b.WriteString("\n\n")

	switch {
	case r.Diary == nil:
		b.WriteString(mutedStyle.Render("작성한 일기가 없어요."))
		b.WriteString("\n")
	case r.Diary.Type == models.DiaryGuided:
		for _, qa := range r.Diary.Answers {
			b.WriteString(labelStyle.Render("Q. " + qa.Question))
			b.WriteString("\n")
			if qa.Answer == "" {
				b.WriteString(mutedStyle.Render("-"))
			} else {
				b.WriteString(qa.Answer)
			}
			b.WriteString("\n\n")
		}
	default:
		b.WriteString(r.Diary.Content)
		b.WriteString("\n")
	}

	if len(r.Breathings) > 0 {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(fmt.Sprintf("심호흡 %d회", len(r.Breathings))))
		b.WriteString(fmt.Sprintf("  총 %d초\n", r.TotalBreathingSeconds()))
	}
	return b.String()
}
