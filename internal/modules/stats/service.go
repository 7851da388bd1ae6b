package stats

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/mindlog/core/internal/models"
)

var errUserNotFound = errors.New("用户不存在")

const themeStatsLimit = 10

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

type EmotionCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// EmotionPoint is one analyzed entry on the emotion timeline.
type EmotionPoint struct {
	Date  string `json:"date"`
	Label string `json:"label"`
}

type ThemeCount struct {
	Theme string `json:"theme"`
	Count int    `json:"count"`
}

type TaskTotals struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

// WeekCompletion is the task completion count for one ISO week.
type WeekCompletion struct {
	Week      string `json:"week"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
}

type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// Overview aggregates a user's full history for the statistics page.
type Overview struct {
	EmotionStats        []EmotionCount   `json:"emotion_stats"`
	EmotionTrend        []EmotionPoint   `json:"emotion_trend"`
	ThemeStats          []ThemeCount     `json:"theme_stats"`
	TaskStats           TaskTotals       `json:"task_stats"`
	TaskCompletionTrend []WeekCompletion `json:"task_completion_trend"`
	JournalCountTrend   []MonthCount     `json:"journal_count_trend"`
}

// GetOverview loads the user's journals and tasks and computes every
// aggregate in one pass each. The analysis lives in a serialized JSON
// column, so grouping happens here rather than in SQL.
func (s *Service) GetOverview(userID string) (*Overview, error) {
	var journals []models.JournalModel
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&journals).Error; err != nil {
		return nil, err
	}

	var tasks []models.TaskModel
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}

	return &Overview{
		EmotionStats:        emotionDistribution(journals),
		EmotionTrend:        emotionTrend(journals),
		ThemeStats:          themeDistribution(journals, themeStatsLimit),
		TaskStats:           taskTotals(tasks),
		TaskCompletionTrend: weeklyCompletionTrend(tasks),
		JournalCountTrend:   monthlyJournalTrend(journals),
	}, nil
}

func emotionDistribution(journals []models.JournalModel) []EmotionCount {
	counts := map[string]int{}
	for _, j := range journals {
		if !j.IsAnalyzed || j.Analysis.EmotionLabel == "" {
			continue
		}
		counts[j.Analysis.EmotionLabel]++
	}

	result := make([]EmotionCount, 0, len(counts))
	for label, count := range counts {
		result = append(result, EmotionCount{Label: label, Count: count})
	}
	sort.Slice(result, func(i, k int) bool {
		if result[i].Count != result[k].Count {
			return result[i].Count > result[k].Count
		}
		return result[i].Label < result[k].Label
	})
	return result
}

func emotionTrend(journals []models.JournalModel) []EmotionPoint {
	points := make([]EmotionPoint, 0, len(journals))
	for _, j := range journals {
		if !j.IsAnalyzed || j.Analysis.EmotionLabel == "" {
			continue
		}
		points = append(points, EmotionPoint{
			Date:  j.CreatedAt.Format("2006-01-02"),
			Label: j.Analysis.EmotionLabel,
		})
	}
	return points
}

func themeDistribution(journals []models.JournalModel, limit int) []ThemeCount {
	counts := map[string]int{}
	for _, j := range journals {
		if !j.IsAnalyzed || j.Analysis.Theme == "" {
			continue
		}
		counts[j.Analysis.Theme]++
	}

	result := make([]ThemeCount, 0, len(counts))
	for theme, count := range counts {
		result = append(result, ThemeCount{Theme: theme, Count: count})
	}
	sort.Slice(result, func(i, k int) bool {
		if result[i].Count != result[k].Count {
			return result[i].Count > result[k].Count
		}
		return result[i].Theme < result[k].Theme
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result
}

func taskTotals(tasks []models.TaskModel) TaskTotals {
	totals := TaskTotals{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			totals.Completed++
		}
	}
	return totals
}

func weekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

func weeklyCompletionTrend(tasks []models.TaskModel) []WeekCompletion {
	byWeek := map[string]*WeekCompletion{}
	for _, t := range tasks {
		key := weekKey(t.CreatedAt)
		entry, ok := byWeek[key]
		if !ok {
			entry = &WeekCompletion{Week: key}
			byWeek[key] = entry
		}
		entry.Total++
		if t.Completed {
			entry.Completed++
		}
	}

	result := make([]WeekCompletion, 0, len(byWeek))
	for _, entry := range byWeek {
		result = append(result, *entry)
	}
	sort.Slice(result, func(i, k int) bool { return result[i].Week < result[k].Week })
	return result
}

func monthlyJournalTrend(journals []models.JournalModel) []MonthCount {
	counts := map[string]int{}
	for _, j := range journals {
		counts[j.CreatedAt.Format("2006-01")]++
	}

	result := make([]MonthCount, 0, len(counts))
	for month, count := range counts {
		result = append(result, MonthCount{Month: month, Count: count})
	}
	sort.Slice(result, func(i, k int) bool { return result[i].Month < result[k].Month })
	return result
}

type exportUser struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created"`
}

// ExportData is the complete snapshot of a user's stored content.
type ExportData struct {
	User            exportUser                  `json:"user"`
	Journals        []models.JournalModel       `json:"journals"`
	Tasks           []models.TaskModel          `json:"tasks"`
	WeeklySummaries []models.WeeklySummaryModel `json:"weekly_summaries"`
	ExportDate      time.Time                   `json:"export_date"`
}

// Export collects everything the user owns, newest first per table.
func (s *Service) Export(userID string, now time.Time) (*ExportData, error) {
	var u models.UserModel
	if err := s.db.First(&u, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errUserNotFound
		}
		return nil, err
	}

	data := &ExportData{
		User: exportUser{
			ID:        u.ID,
			Username:  u.Username,
			Email:     u.Email,
			CreatedAt: u.CreatedAt,
		},
		ExportDate: now,
	}

	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&data.Journals).Error; err != nil {
		return nil, err
	}
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&data.Tasks).Error; err != nil {
		return nil, err
	}
	if err := s.db.Where("user_id = ?", userID).
		Order("week_start_date DESC").
		Find(&data.WeeklySummaries).Error; err != nil {
		return nil, err
	}
	return data, nil
}
