// Package weatherlist is the weather picker shown in the main screen's sheet.
package weatherlist

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/pado/internal/models"
)

// PickWeatherMsg is sent when the user chooses a weather
type PickWeatherMsg struct {
	Weather models.WeatherType
}

type Item struct {
	Info models.WeatherInfo
}

func (i Item) Title() string       { return i.Info.Emoji + "  " + i.Info.Korean }
func (i Item) Description() string { return i.Info.Emotion }
func (i Item) FilterValue() string { return string(i.Info.ID) + " " + i.Info.Korean }

type KeyMap struct {
	Pick key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Pick: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "pick"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

// New lists every weather except the display-only default
func New(width, height int) Model {
	var items []list.Item
	for _, info := range models.Weathers {
		if info.ID == models.DefaultDisplayWeather {
			continue
		}
		items = append(items, Item{Info: info})
	}

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "오늘의 날씨는 어땠나요?"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false) // We handle help globally in the main model

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Pick}
	}
	return Model{list: l, keys: keys}
}

// Select moves the cursor to w, if it is listed
func (m *Model) Select(w models.WeatherType) {
	for i, item := range m.list.Items() {
		if it, ok := item.(Item); ok && it.Info.ID == w {
			m.list.Select(i)
			return
		}
	}
}

func (m Model) Selected() (models.WeatherType, bool) {
	if i, ok := m.list.SelectedItem().(Item); ok {
		return i.Info.ID, true
	}
	return "", false
}

// Filtering reports whether keys are going to the filter input
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && !m.Filtering() && key.Matches(msg, m.keys.Pick) {
		if w, ok := m.Selected(); ok {
			return m, func() tea.Msg { return PickWeatherMsg{Weather: w} }
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
