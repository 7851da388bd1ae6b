package task

import (
	"testing"
	"time"

	"github.com/mindlog/core/internal/models"
)

func TestApplyCompletionChange(t *testing.T) {
	now := time.Date(2026, time.August, 31, 10, 0, 0, 0, time.UTC)
	earlier := now.Add(-time.Hour)

	t.Run("open to completed sets timestamp", func(t *testing.T) {
		task := models.TaskModel{Completed: false}
		ApplyCompletionChange(&task, true, now)
		if !task.Completed {
			t.Error("task should be completed")
		}
		if task.CompletedAt == nil || !task.CompletedAt.Equal(now) {
			t.Errorf("CompletedAt = %v, want %v", task.CompletedAt, now)
		}
	})

	t.Run("completed to open clears timestamp", func(t *testing.T) {
		task := models.TaskModel{Completed: true, CompletedAt: &earlier}
		ApplyCompletionChange(&task, false, now)
		if task.Completed {
			t.Error("task should be open")
		}
		if task.CompletedAt != nil {
			t.Errorf("CompletedAt = %v, want nil", task.CompletedAt)
		}
	})

	t.Run("repeated completion keeps original timestamp", func(t *testing.T) {
		task := models.TaskModel{Completed: true, CompletedAt: &earlier}
		ApplyCompletionChange(&task, true, now)
		if task.CompletedAt == nil || !task.CompletedAt.Equal(earlier) {
			t.Errorf("CompletedAt = %v, want unchanged %v", task.CompletedAt, earlier)
		}
	})

	t.Run("open stays open", func(t *testing.T) {
		task := models.TaskModel{Completed: false}
		ApplyCompletionChange(&task, false, now)
		if task.Completed || task.CompletedAt != nil {
			t.Errorf("task changed unexpectedly: %+v", task)
		}
	})
}
