package models

import "time"

// TaskModel is an actionable to-do item, either created manually or
// extracted from a journal entry.
//
// CompletedAt is non-nil iff Completed is true. ReminderCount only grows.
type TaskModel struct {
	Base
	UserID           string     `json:"user_id"            gorm:"index;not null"`
	JournalID        *string    `json:"journal_id"         gorm:"index"`
	Content          string     `json:"content"            gorm:"type:text;not null"`
	OriginalText     string     `json:"original_text"      gorm:"type:text"`
	Completed        bool       `json:"completed"          gorm:"default:false;index"`
	CompletedAt      *time.Time `json:"completed_at"`
	Deadline         *time.Time `json:"deadline"`
	TimeContext      string     `json:"time_context"` // today | tomorrow | this_week | ... | unspecified
	LastReminderTime *time.Time `json:"last_reminder_time"`
	ReminderCount    int        `json:"reminder_count"     gorm:"default:0"`
}

func (TaskModel) TableName() string { return "tasks" }
