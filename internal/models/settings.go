package models

// Reminder interval bounds in minutes.
const (
	ReminderIntervalMin     = 5
	ReminderIntervalMax     = 120
	ReminderIntervalDefault = 20
)

// SettingsModel holds per-user preferences, one row per user.
// DeepSeekAPIKey is write-only from the API's point of view: list/read
// responses expose only a has_api_key flag or a masked form.
type SettingsModel struct {
	Base
	UserID             string `json:"user_id"             gorm:"uniqueIndex;not null"`
	ReminderInterval   int    `json:"reminder_interval"   gorm:"default:20"` // minutes, 5-120
	Theme              string `json:"theme"               gorm:"default:'system'"`
	EmailNotifications bool   `json:"email_notifications" gorm:"default:false"`
	DeepSeekAPIKey     string `json:"-"                   gorm:"column:deepseek_api_key;type:text"`
}

func (SettingsModel) TableName() string { return "settings" }
