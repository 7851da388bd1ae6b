package task

import (
	"errors"
	"time"
)

type CreateTaskDTO struct {
	Content      string     `json:"content" binding:"required"`
	JournalID    *string    `json:"journal_id"`
	OriginalText string     `json:"original_text"`
	Deadline     *time.Time `json:"deadline"`
	TimeContext  string     `json:"time_context"`
}

// UpdateTaskDTO carries partial updates; nil fields are untouched.
type UpdateTaskDTO struct {
	Content     *string    `json:"content"`
	Deadline    *time.Time `json:"deadline"`
	TimeContext *string    `json:"time_context"`
	Completed   *bool      `json:"completed"`
}

var (
	errNotFound        = errors.New("未找到待办事项")
	errNotOwner        = errors.New("未授权访问")
	errJournalNotFound = errors.New("未找到日记")
)
