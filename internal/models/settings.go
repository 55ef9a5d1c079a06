package models

import (
	"fmt"
	"time"

	"github.com/julianstephens/pado/internal/constants"
)

// Settings represents application-wide settings
type Settings struct {
	NotificationEnabled bool   `json:"notificationEnabled"` // whether the daily reminder fires
	ReminderAt          string `json:"reminderAt"`          // reminder time of day, e.g. "21:00"
}

// SettingsPatch is a partial update; nil fields keep their current value
type SettingsPatch struct {
	NotificationEnabled *bool
	ReminderAt          *string
}

// DefaultSettings returns the settings used when nothing is stored
func DefaultSettings() Settings {
	return Settings{
		NotificationEnabled: constants.DefaultNotificationEnabled,
		ReminderAt:          constants.DefaultReminderAt,
	}
}

// Apply returns s with the non-nil fields of p applied
func (s Settings) Apply(p SettingsPatch) Settings {
	if p.NotificationEnabled != nil {
		s.NotificationEnabled = *p.NotificationEnabled
	}
	if p.ReminderAt != nil {
		s.ReminderAt = *p.ReminderAt
	}
	return s
}

// ValidateReminderAt checks an HH:MM time of day
func ValidateReminderAt(s string) error {
	if _, err := time.Parse(constants.TimeFormat, s); err != nil || len(s) != len(constants.TimeFormat) {
		return fmt.Errorf("invalid reminder time %q: expected HH:MM", s)
	}
	return nil
}
