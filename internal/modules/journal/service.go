package journal

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mindlog/core/internal/models"
	"github.com/mindlog/core/internal/pkg/pagination"
	"github.com/mindlog/core/internal/pkg/response"
)

var (
	errNotFound  = errors.New("未找到日记")
	errNotOwner  = errors.New("未授权访问")
	errNoneToday = errors.New("今日尚未创建日记")
)

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// dayRange returns the half-open local calendar day [start, end)
// containing t.
func dayRange(t time.Time) (time.Time, time.Time) {
	year, month, day := t.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// CreateOrReplaceToday enforces one entry per user per local calendar
// day. Writing again on the same day overwrites the content and resets
// the analysis state. The second return value is true when a new row
// was created.
func (s *Service) CreateOrReplaceToday(userID, content string, now time.Time) (*models.JournalModel, bool, error) {
	start, end := dayRange(now)

	var existing models.JournalModel
	err := s.db.Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, start, end).
		First(&existing).Error
	if err == nil {
		existing.Content = content
		existing.Analysis = models.JournalAnalysis{}
		existing.IsAnalyzed = false
		if err := s.db.Model(&existing).
			Select("Content", "Analysis", "IsAnalyzed").
			Updates(existing).Error; err != nil {
			return nil, false, err
		}
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	entry := models.JournalModel{UserID: userID, Content: content}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, false, err
	}
	return &entry, true, nil
}

// List returns the user's entries, newest first.
func (s *Service) List(userID string, q pagination.Query) ([]models.JournalModel, response.Pagination, error) {
	var entries []models.JournalModel
	query := s.db.Model(&models.JournalModel{}).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	p, err := pagination.Paginate(query, q, &entries)
	return entries, p, err
}

// GetToday returns today's entry or errNoneToday.
func (s *Service) GetToday(userID string, now time.Time) (*models.JournalModel, error) {
	start, end := dayRange(now)
	var entry models.JournalModel
	err := s.db.Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, start, end).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errNoneToday
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// GetByID distinguishes a missing row (errNotFound) from someone
// else's row (errNotOwner).
func (s *Service) GetByID(userID, id string) (*models.JournalModel, error) {
	var entry models.JournalModel
	err := s.db.Where("id = ?", id).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errNotFound
	}
	if err != nil {
		return nil, err
	}
	if entry.UserID != userID {
		return nil, errNotOwner
	}
	return &entry, nil
}

// UpdateContent rewrites an entry's text and resets its analysis state.
func (s *Service) UpdateContent(userID, id, content string) (*models.JournalModel, error) {
	entry, err := s.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	entry.Content = content
	entry.Analysis = models.JournalAnalysis{}
	entry.IsAnalyzed = false
	if err := s.db.Model(entry).
		Select("Content", "Analysis", "IsAnalyzed").
		Updates(*entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// mergeAnalysis overlays non-empty incoming fields onto the stored
// analysis so a partial write never blanks earlier results.
func mergeAnalysis(old, in models.JournalAnalysis) models.JournalAnalysis {
	if in.Theme != "" {
		old.Theme = in.Theme
	}
	if in.Evaluation != "" {
		old.Evaluation = in.Evaluation
	}
	if in.ThoughtProcess != "" {
		old.ThoughtProcess = in.ThoughtProcess
	}
	if in.Sentiment != "" {
		old.Sentiment = in.Sentiment
	}
	if in.Depth != "" {
		old.Depth = in.Depth
	}
	if in.EmotionLabel != "" {
		old.EmotionLabel = in.EmotionLabel
	}
	return old
}

// SetAnalysis stores a finished analysis and marks the entry analyzed.
func (s *Service) SetAnalysis(userID, id string, analysis models.JournalAnalysis) (*models.JournalModel, error) {
	entry, err := s.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	entry.Analysis = mergeAnalysis(entry.Analysis, analysis)
	entry.IsAnalyzed = true
	if err := s.db.Model(entry).
		Select("Analysis", "IsAnalyzed").
		Updates(*entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// WeeklyStats is the plain aggregation over the trailing seven days.
// Narrative generation lives elsewhere; this never calls a provider.
type WeeklyStats struct {
	StartDate          time.Time      `json:"start_date"`
	EndDate            time.Time      `json:"end_date"`
	JournalCount       int            `json:"journal_count"`
	CompletedTaskCount int            `json:"completed_task_count"`
	Themes             []string       `json:"themes"`
	SentimentCounts    map[string]int `json:"sentiment_counts"`
}

// GetWeeklyStats aggregates the window [now-7d, now).
func (s *Service) GetWeeklyStats(userID string, now time.Time) (*WeeklyStats, error) {
	start := now.AddDate(0, 0, -7)

	var entries []models.JournalModel
	if err := s.db.Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, start, now).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}

	var completedTasks int64
	if err := s.db.Model(&models.TaskModel{}).
		Where("user_id = ? AND completed = ? AND completed_at >= ? AND completed_at < ?", userID, true, start, now).
		Count(&completedTasks).Error; err != nil {
		return nil, err
	}

	stats := &WeeklyStats{
		StartDate:          start,
		EndDate:            now,
		JournalCount:       len(entries),
		CompletedTaskCount: int(completedTasks),
		Themes:             []string{},
		SentimentCounts:    map[string]int{},
	}
	for _, e := range entries {
		if !e.IsAnalyzed {
			continue
		}
		if e.Analysis.Theme != "" {
			stats.Themes = append(stats.Themes, e.Analysis.Theme)
		}
		if e.Analysis.Sentiment != "" {
			stats.SentimentCounts[e.Analysis.Sentiment]++
		}
	}
	return stats, nil
}

// Delete removes an entry and the tasks extracted from it.
func (s *Service) Delete(userID, id string) error {
	entry, err := s.GetByID(userID, id)
	if err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("journal_id = ?", entry.ID).Delete(&models.TaskModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(entry).Error
	})
}
