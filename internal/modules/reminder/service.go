package reminder

import (
	"time"

	"gorm.io/gorm"

	"github.com/mindlog/core/internal/models"
)

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// IsDue reports whether a task is eligible for a reminder: never
// reminded, or the configured interval has elapsed since the last one.
func IsDue(t *models.TaskModel, interval time.Duration, now time.Time) bool {
	if t.Completed {
		return false
	}
	if t.LastReminderTime == nil {
		return true
	}
	return now.Sub(*t.LastReminderTime) >= interval
}

// SelectNextDue picks one task to surface. Never-reminded tasks win,
// oldest first; otherwise the task that has been waiting longest since
// its last reminder.
func SelectNextDue(tasks []models.TaskModel, interval time.Duration, now time.Time) *models.TaskModel {
	var best *models.TaskModel
	for i := range tasks {
		t := &tasks[i]
		if !IsDue(t, interval, now) {
			continue
		}
		if best == nil {
			best = t
			continue
		}
		switch {
		case t.LastReminderTime == nil && best.LastReminderTime != nil:
			best = t
		case t.LastReminderTime == nil && best.LastReminderTime == nil:
			if t.CreatedAt.Before(best.CreatedAt) {
				best = t
			}
		case t.LastReminderTime != nil && best.LastReminderTime != nil:
			if t.LastReminderTime.Before(*best.LastReminderTime) {
				best = t
			}
		}
	}
	return best
}

// reminderInterval loads the user's configured interval, clamped to
// the supported range.
func (s *Service) reminderInterval(userID string) time.Duration {
	minutes := models.ReminderIntervalDefault
	var settings models.SettingsModel
	if err := s.db.Where("user_id = ?", userID).First(&settings).Error; err == nil {
		minutes = settings.ReminderInterval
	}
	if minutes < models.ReminderIntervalMin {
		minutes = models.ReminderIntervalMin
	}
	if minutes > models.ReminderIntervalMax {
		minutes = models.ReminderIntervalMax
	}
	return time.Duration(minutes) * time.Minute
}

// NextDue returns the next task to remind the user about and records
// the reminder, or nil when nothing is due.
func (s *Service) NextDue(userID string, now time.Time) (*models.TaskModel, error) {
	var tasks []models.TaskModel
	err := s.db.Where("user_id = ? AND completed = ?", userID, false).
		Order("created_at ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}

	due := SelectNextDue(tasks, s.reminderInterval(userID), now)
	if due == nil {
		return nil, nil
	}

	due.LastReminderTime = &now
	due.ReminderCount++
	if err := s.db.Model(due).
		Select("LastReminderTime", "ReminderCount").
		Updates(*due).Error; err != nil {
		return nil, err
	}
	return due, nil
}
