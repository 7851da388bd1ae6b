package task

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mindlog/core/internal/models"
	"github.com/mindlog/core/internal/pkg/pagination"
	"github.com/mindlog/core/internal/pkg/response"
)

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// ApplyCompletionChange keeps Completed and CompletedAt consistent:
// CompletedAt is set exactly when the task flips to completed and
// cleared when it flips back. A no-op change leaves the timestamp as
// it was.
func ApplyCompletionChange(t *models.TaskModel, completed bool, now time.Time) {
	if t.Completed == completed {
		return
	}
	t.Completed = completed
	if completed {
		t.CompletedAt = &now
	} else {
		t.CompletedAt = nil
	}
}

func (s *Service) Create(userID string, dto *CreateTaskDTO) (*models.TaskModel, error) {
	if dto.JournalID != nil && *dto.JournalID != "" {
		var journal models.JournalModel
		err := s.db.Where("id = ?", *dto.JournalID).First(&journal).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errJournalNotFound
		}
		if err != nil {
			return nil, err
		}
		if journal.UserID != userID {
			return nil, errNotOwner
		}
	}

	timeCtx := dto.TimeContext
	if timeCtx == "" {
		timeCtx = "unspecified"
	}
	t := models.TaskModel{
		UserID:       userID,
		JournalID:    dto.JournalID,
		Content:      dto.Content,
		OriginalText: dto.OriginalText,
		Deadline:     dto.Deadline,
		TimeContext:  timeCtx,
	}
	return &t, s.db.Create(&t).Error
}

// List orders open tasks before finished ones, nearest deadline first,
// and newest first within the same deadline bucket.
func (s *Service) List(userID string, completed *bool, q pagination.Query) ([]models.TaskModel, response.Pagination, error) {
	query := s.db.Model(&models.TaskModel{}).Where("user_id = ?", userID)
	if completed != nil {
		query = query.Where("completed = ?", *completed)
	}
	query = query.Order("completed ASC").
		Order("CASE WHEN deadline IS NULL THEN 1 ELSE 0 END ASC").
		Order("deadline ASC").
		Order("created_at DESC")

	var tasks []models.TaskModel
	p, err := pagination.Paginate(query, q, &tasks)
	return tasks, p, err
}

func (s *Service) GetByID(userID, id string) (*models.TaskModel, error) {
	var t models.TaskModel
	err := s.db.Where("id = ?", id).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errNotFound
	}
	if err != nil {
		return nil, err
	}
	if t.UserID != userID {
		return nil, errNotOwner
	}
	return &t, nil
}

func (s *Service) Update(userID, id string, dto *UpdateTaskDTO) (*models.TaskModel, error) {
	t, err := s.GetByID(userID, id)
	if err != nil {
		return nil, err
	}

	if dto.Content != nil {
		t.Content = *dto.Content
	}
	if dto.Deadline != nil {
		t.Deadline = dto.Deadline
	}
	if dto.TimeContext != nil {
		t.TimeContext = *dto.TimeContext
	}
	if dto.Completed != nil {
		ApplyCompletionChange(t, *dto.Completed, time.Now())
	}

	if err := s.db.Model(t).
		Select("Content", "Deadline", "TimeContext", "Completed", "CompletedAt").
		Updates(*t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) Delete(userID, id string) error {
	t, err := s.GetByID(userID, id)
	if err != nil {
		return err
	}
	return s.db.Delete(t).Error
}

// MarkReminded records that the user was just reminded about a task.
func (s *Service) MarkReminded(userID, id string, now time.Time) (*models.TaskModel, error) {
	t, err := s.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	t.LastReminderTime = &now
	t.ReminderCount++
	if err := s.db.Model(t).
		Select("LastReminderTime", "ReminderCount").
		Updates(*t).Error; err != nil {
		return nil, err
	}
	return t, nil
}
