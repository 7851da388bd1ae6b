package ai

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mindlog/core/internal/models"
)

const topThemeCount = 5

// weekBounds returns the Monday 00:00 start and the exclusive end of
// the week containing t, in t's location.
func weekBounds(t time.Time) (time.Time, time.Time) {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	year, month, day := t.AddDate(0, 0, -(weekday - 1)).Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 7)
}

// aggregateEmotions counts journals per emotion label, ordered by count
// descending, label ascending for ties.
func aggregateEmotions(journals []models.JournalModel) []models.EmotionStat {
	counts := make(map[string]int)
	for _, j := range journals {
		if !j.IsAnalyzed {
			continue
		}
		label := j.Analysis.EmotionLabel
		if label == "" {
			label = "未知"
		}
		counts[label]++
	}

	stats := make([]models.EmotionStat, 0, len(counts))
	for label, count := range counts {
		stats = append(stats, models.EmotionStat{EmotionLabel: label, Count: count})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].EmotionLabel < stats[j].EmotionLabel
	})
	return stats
}

// topThemes returns up to n distinct analysis themes, most frequent
// first, joined with "、".
func topThemes(journals []models.JournalModel, n int) string {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, j := range journals {
		theme := j.Analysis.Theme
		if !j.IsAnalyzed || theme == "" {
			continue
		}
		if _, ok := counts[theme]; !ok {
			order = append(order, theme)
		}
		counts[theme]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > n {
		order = order[:n]
	}

	result := ""
	for i, theme := range order {
		if i > 0 {
			result += "、"
		}
		result += theme
	}
	return result
}

// completionRate computes the completed fraction of tasks, 0 when no
// tasks exist.
func completionRate(tasks []models.TaskModel) float64 {
	if len(tasks) == 0 {
		return 0
	}
	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}
	return float64(completed) / float64(len(tasks))
}

// GenerateCurrentWeeklyReport builds the narrative report for the week
// containing now, without touching the summary cache.
func (s *Service) GenerateCurrentWeeklyReport(ctx context.Context, userID string, now time.Time) (*WeeklyReport, error) {
	weekStart, weekEnd := weekBounds(now)

	var journals []models.JournalModel
	if err := s.db.Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, weekStart, weekEnd).
		Order("created_at ASC").
		Find(&journals).Error; err != nil {
		return nil, err
	}

	var completed []models.TaskModel
	if err := s.db.Where("user_id = ? AND completed = ? AND completed_at >= ? AND completed_at < ?",
		userID, true, weekStart, weekEnd).
		Find(&completed).Error; err != nil {
		return nil, err
	}

	return s.GenerateWeeklyReport(ctx, userID, journals, completed)
}

// GetOrCreateWeeklySummary returns the cached summary for the week
// containing now, generating and storing it on first request.
func (s *Service) GetOrCreateWeeklySummary(ctx context.Context, userID string, now time.Time) (*models.WeeklySummaryModel, error) {
	weekStart, weekEnd := weekBounds(now)

	var cached models.WeeklySummaryModel
	err := s.db.Where("user_id = ? AND week_start_date = ?", userID, weekStart).First(&cached).Error
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var journals []models.JournalModel
	if err := s.db.Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, weekStart, weekEnd).
		Order("created_at ASC").
		Find(&journals).Error; err != nil {
		return nil, err
	}

	var tasks []models.TaskModel
	if err := s.db.Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, weekStart, weekEnd).
		Find(&tasks).Error; err != nil {
		return nil, err
	}

	summary := models.WeeklySummaryModel{
		UserID:             userID,
		WeekStartDate:      weekStart,
		WeekEndDate:        weekEnd.Add(-time.Second),
		EmotionStats:       aggregateEmotions(journals),
		ThemeSummary:       topThemes(journals, topThemeCount),
		TaskCompletionRate: completionRate(tasks),
	}

	// Narrative generation is best effort. The stats are stored even
	// when no API key exists or the provider call fails.
	completed := make([]models.TaskModel, 0, len(tasks))
	for _, t := range tasks {
		if t.Completed {
			completed = append(completed, t)
		}
	}
	if report, err := s.GenerateWeeklyReport(ctx, userID, journals, completed); err == nil {
		summary.GeneratedContent = report.WeekOverview
	} else if !errors.Is(err, ErrAPIKeyMissing) {
		s.log.Warn("weekly narrative generation failed", zap.Error(err))
	}

	if err := s.db.Create(&summary).Error; err != nil {
		// A concurrent request may have inserted the same week.
		var existing models.WeeklySummaryModel
		if lookupErr := s.db.Where("user_id = ? AND week_start_date = ?", userID, weekStart).
			First(&existing).Error; lookupErr == nil {
			return &existing, nil
		}
		return nil, err
	}
	return &summary, nil
}
