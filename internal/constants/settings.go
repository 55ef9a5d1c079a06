package constants

const (
	SettingNotificationEnabled = "notificationEnabled"
	SettingReminderAt          = "reminderAt"

	DefaultNotificationEnabled = true
	DefaultReminderAt          = "21:00"
	DefaultTimezone            = "Local" // Use system local timezone by default
)
