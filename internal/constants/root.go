package constants

import "time"

const (
	AppName            = "fitcoach"
	DefaultKeyringUser = "gemini-api-key"
	DefaultConfigDir   = "~/.config/fitcoach"
	DefaultStoreFile   = "fitcoach.db"
	Version            = "v0.3.0"

	// DateFormat is the calendar-day format used for weight logs (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Record store keys
	KeyUsers      = "users"
	KeyActiveUser = "active_user"
	KeyPlanPrefix = "plan_"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "fitcoach-"

	// Log file rotation
	LogDirName    = "logs"
	LogMaxSizeMB  = 10
	LogMaxBackups = 3
	LogMaxAgeDays = 28

	// Plan generation
	DefaultGeminiModel   = "gemini-2.5-flash"
	DefaultServerPort    = "3001"
	DefaultServerStore   = "users.json"
	ServerWriteTimeout   = 2 * time.Minute
	ServerReadTimeout    = 15 * time.Second
	ServerShutdownPeriod = 10 * time.Second
)

// PlanKey returns the record store key holding the cached plan for a user.
func PlanKey(userID string) string {
	return KeyPlanPrefix + userID
}
