package constants

const (
	AppName            = "pado"
	DefaultKeyringUser = "backend-password"
	DefaultConfigPath  = "~/.config/pado/pado.json"
	Version            = "v0.3.0"

	// DateFormat is the record key format (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MonthFormat is the calendar prefix format (YYYY-MM)
	MonthFormat = "2006-01"

	// TimeFormat is the clock format used for the reminder time (HH:MM)
	TimeFormat = "15:04"

	// TimestampFormat matches JavaScript's Date.toISOString so stamps written by
	// either side sort and compare the same way.
	TimestampFormat = "2006-01-02T15:04:05.000Z"

	// Storage keys
	KeySettings        = "settings"
	KeyRecords         = "records"
	KeySelectedWeather = "selected_weather"

	// KeyNamespace prefixes keys on shared remote backends
	KeyNamespace = "pado:"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "pado-"
	BackupFileSuffix = ".json"

	// Reminder constants
	ReminderLockfileName = "pado-remind.lock"
	ReminderPollInterval = 60 // seconds

	// Breathing exercise pacing, in seconds
	BreathingInhaleSec = 4
	BreathingHoldSec   = 2
	BreathingExhaleSec = 4
	BreathingCycles    = 3
)
