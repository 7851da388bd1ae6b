package reminder

import (
	"testing"
	"time"

	"github.com/mindlog/core/internal/models"
)

const interval = 20 * time.Minute

var now = time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)

func taskRemindedAt(last time.Time) models.TaskModel {
	return models.TaskModel{LastReminderTime: &last}
}

func TestIsDue(t *testing.T) {
	t.Run("never reminded", func(t *testing.T) {
		task := models.TaskModel{}
		if !IsDue(&task, interval, now) {
			t.Error("never-reminded task should be due")
		}
	})

	t.Run("interval elapsed", func(t *testing.T) {
		task := taskRemindedAt(now.Add(-interval))
		if !IsDue(&task, interval, now) {
			t.Error("task past the interval should be due")
		}
	})

	t.Run("interval not elapsed", func(t *testing.T) {
		task := taskRemindedAt(now.Add(-interval + time.Minute))
		if IsDue(&task, interval, now) {
			t.Error("recently reminded task should not be due")
		}
	})

	t.Run("completed never due", func(t *testing.T) {
		task := models.TaskModel{Completed: true}
		if IsDue(&task, interval, now) {
			t.Error("completed task should not be due")
		}
	})
}

func TestSelectNextDuePrefersNeverReminded(t *testing.T) {
	reminded := taskRemindedAt(now.Add(-2 * interval))
	reminded.Content = "已提醒过"
	fresh := models.TaskModel{Content: "从未提醒"}

	got := SelectNextDue([]models.TaskModel{reminded, fresh}, interval, now)
	if got == nil || got.Content != "从未提醒" {
		t.Errorf("got %+v, want the never-reminded task", got)
	}
}

func TestSelectNextDueOldestNeverReminded(t *testing.T) {
	older := models.TaskModel{Content: "旧任务"}
	older.CreatedAt = now.Add(-48 * time.Hour)
	newer := models.TaskModel{Content: "新任务"}
	newer.CreatedAt = now.Add(-1 * time.Hour)

	got := SelectNextDue([]models.TaskModel{newer, older}, interval, now)
	if got == nil || got.Content != "旧任务" {
		t.Errorf("got %+v, want the oldest task", got)
	}
}

func TestSelectNextDueLongestOverdue(t *testing.T) {
	recent := taskRemindedAt(now.Add(-interval - time.Minute))
	recent.Content = "刚过期"
	stale := taskRemindedAt(now.Add(-3 * interval))
	stale.Content = "早就过期"

	got := SelectNextDue([]models.TaskModel{recent, stale}, interval, now)
	if got == nil || got.Content != "早就过期" {
		t.Errorf("got %+v, want the longest-overdue task", got)
	}
}

func TestSelectNextDueNothingDue(t *testing.T) {
	tasks := []models.TaskModel{
		taskRemindedAt(now.Add(-time.Minute)),
		{Completed: true},
	}
	if got := SelectNextDue(tasks, interval, now); got != nil {
		t.Errorf("got %+v, want nil", got)
	}
}
