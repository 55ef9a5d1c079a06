package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/pado/internal/constants"
	"github.com/julianstephens/pado/internal/models"
)

// reminderStep is how far left/right moves the reminder time
const reminderStep = 30 * time.Minute

func (m Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmClear {
		switch {
		case key.Matches(msg, m.keys.Yes), key.Matches(msg, m.keys.Enter):
			m.store.ClearAllRecords()
			m.refreshWeather()
			m.confirmClear = false
			m.status = "기록을 초기화했어요"
		case key.Matches(msg, m.keys.No), key.Matches(msg, m.keys.Back):
			m.confirmClear = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		return m.navigate(ScreenMain)
	case key.Matches(msg, m.keys.Up):
		m.settingsCursor = moveCursor(m.settingsCursor, -1, settingCount)
	case key.Matches(msg, m.keys.Down):
		m.settingsCursor = moveCursor(m.settingsCursor, 1, settingCount)
	case key.Matches(msg, m.keys.Left):
		if m.settingsCursor == settingReminderAt {
			m.shiftReminder(-reminderStep)
		}
	case key.Matches(msg, m.keys.Right):
		if m.settingsCursor == settingReminderAt {
			m.shiftReminder(reminderStep)
		}
	case key.Matches(msg, m.keys.Enter):
		switch m.settingsCursor {
		case settingNotifications:
			enabled := !m.store.GetSettings().NotificationEnabled
			m.store.SaveSettings(models.SettingsPatch{NotificationEnabled: &enabled})
		case settingReminderAt:
			m.shiftReminder(reminderStep)
		case settingClear:
			m.confirmClear = true
		}
	case key.Matches(msg, m.keys.Help):
		m.toggleHelp()
	}
	return m, nil
}

// shiftReminder moves the reminder time, wrapping around midnight
func (m *Model) shiftReminder(d time.Duration) {
	t, err := time.Parse(constants.TimeFormat, m.store.GetSettings().ReminderAt)
	if err != nil {
		t, _ = time.Parse(constants.TimeFormat, constants.DefaultReminderAt)
	}
	minutes := (t.Hour()*60 + t.Minute() + int(d/time.Minute)) % (24 * 60)
	if minutes < 0 {
		minutes += 24 * 60
	}
	at := fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
	m.store.SaveSettings(models.SettingsPatch{ReminderAt: &at})
}

func (m Model) viewSettings() string {
	if m.confirmClear {
		return sheetStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			dangerStyle.Render("기록을 초기화할까요?"),
			"",
			"모든 일기와 심호흡 기록이 삭제되며 복구할 수 없어요.",
			"",
			"[y] 초기화  [n] 취소",
		))
	}

	settings := m.store.GetSettings()
	notifications := "꺼짐"
	if settings.NotificationEnabled {
		notifications = "켜짐"
	}
	rows := []struct{ title, detail string }{
		{"알림 " + notifications, "매일 기록을 잊지 않도록 알려드려요"},
		{"알림 시간 " + settings.ReminderAt, "←/→ 로 30분씩 바꿔요"},
		{"기록 초기화", "모든 일기와 심호흡 기록을 삭제해요"},
	}

	lines := []string{titleStyle.Render("설정"), ""}
	for i, r := range rows {
		title := itemStyle.Render("  " + r.title)
		if i == m.settingsCursor {
			title = selectedStyle.Render("› " + r.title)
		}
		lines = append(lines, title, subtleStyle.Render("    "+r.detail), "")
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
