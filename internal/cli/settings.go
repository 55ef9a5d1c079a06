package cli

import (
	"github.com/julianstephens/pado/internal/models"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Notifications *bool   `help:"Enable or disable the daily reminder."`
	ReminderAt    *string `help:"Time of day for the reminder (HH:MM)."`
}

func (c *SettingsCmd) Run(ctx *Context) error {
	if c.List {
		settings := ctx.Store.GetSettings()
		ctx.println("Current Settings:")
		ctx.printf("  Notifications Enabled: %v\n", settings.NotificationEnabled)
		ctx.printf("  Reminder At:           %s\n", settings.ReminderAt)
		return nil
	}

	patch := models.SettingsPatch{
		NotificationEnabled: c.Notifications,
		ReminderAt:          c.ReminderAt,
	}
	if patch.ReminderAt != nil {
		if err := models.ValidateReminderAt(*patch.ReminderAt); err != nil {
			return err
		}
	}

	if patch.NotificationEnabled == nil && patch.ReminderAt == nil {
		ctx.println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}
	ctx.Store.SaveSettings(patch)
	ctx.println("Settings updated successfully.")
	return nil
}
