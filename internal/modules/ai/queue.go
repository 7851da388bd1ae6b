package ai

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mindlog/core/internal/models"
	"github.com/mindlog/core/internal/pkg/taskqueue"
)

// TaskTypeJournalAnalysis identifies queued journal analysis work.
const TaskTypeJournalAnalysis = "ai:journal_analysis"

type journalAnalysisPayload struct {
	UserID    string `json:"user_id"`
	JournalID string `json:"journal_id"`
}

type journalAnalysisResult struct {
	JournalID    string `json:"journal_id"`
	TasksCreated int    `json:"tasks_created"`
}

// EnqueueJournalAnalysis schedules background analysis of a journal
// entry. Concurrent requests for the same entry return the same task.
func (s *Service) EnqueueJournalAnalysis(ctx context.Context, userID, journalID string) (*taskqueue.Task, error) {
	var journal models.JournalModel
	err := s.db.Where("id = ? AND user_id = ?", journalID, userID).First(&journal).Error
	if err != nil {
		return nil, err
	}

	payload := journalAnalysisPayload{UserID: userID, JournalID: journalID}
	task, err := s.queue.Enqueue(ctx, TaskTypeJournalAnalysis, payload, journalID, userID)
	if err != nil {
		return nil, err
	}
	if task.Status == taskqueue.TaskPending {
		go s.executeJournalAnalysis(task.ID)
	}
	return task, nil
}

// Queue exposes the task queue for admin listing endpoints.
func (s *Service) Queue() *taskqueue.Service { return s.queue }

func (s *Service) executeJournalAnalysis(taskID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	task, err := s.queue.GetByID(ctx, taskID)
	if err != nil || task == nil {
		return
	}
	if task.Status != taskqueue.TaskPending {
		return
	}

	var payload journalAnalysisPayload
	if err := json.Unmarshal(task.Payload, &payload); err != nil {
		_ = s.queue.UpdateStatus(ctx, taskID, taskqueue.TaskFailed, nil, "invalid payload")
		return
	}

	_ = s.queue.UpdateStatus(ctx, taskID, taskqueue.TaskRunning, nil, "")

	result, err := s.analyzeAndPersist(ctx, payload.UserID, payload.JournalID)
	if err != nil {
		s.log.Warn("journal analysis failed",
			zap.String("journal_id", payload.JournalID),
			zap.Error(err),
		)
		_ = s.queue.UpdateStatus(ctx, taskID, taskqueue.TaskFailed, nil, err.Error())
		return
	}
	_ = s.queue.UpdateStatus(ctx, taskID, taskqueue.TaskCompleted, result, "")
}

// analyzeAndPersist runs analysis and task extraction for one entry and
// writes the results back.
func (s *Service) analyzeAndPersist(ctx context.Context, userID, journalID string) (*journalAnalysisResult, error) {
	var journal models.JournalModel
	if err := s.db.Where("id = ? AND user_id = ?", journalID, userID).First(&journal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("未找到日记")
		}
		return nil, err
	}

	analysis, err := s.Analyze(ctx, userID, journal.Content)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.JournalModel{}).
		Where("id = ?", journal.ID).
		Select("Analysis", "IsAnalyzed").
		Updates(models.JournalModel{Analysis: *analysis, IsAnalyzed: true}).Error; err != nil {
		return nil, err
	}

	extracted, err := s.ExtractTasks(ctx, userID, journal.Content)
	if err != nil {
		return nil, err
	}

	created := 0
	for _, item := range extracted {
		task := models.TaskModel{
			UserID:       userID,
			JournalID:    &journal.ID,
			Content:      item.Task,
			OriginalText: item.OriginalText,
			TimeContext:  item.TimeContext,
		}
		if task.TimeContext == "" {
			task.TimeContext = TimeContextUnspecified
		}
		if err := s.db.Create(&task).Error; err != nil {
			return nil, err
		}
		created++
	}

	return &journalAnalysisResult{JournalID: journal.ID, TasksCreated: created}, nil
}
