package ai

import (
	"testing"
	"time"

	"github.com/mindlog/core/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 30, 0, 0, time.UTC)
}

func TestWeekBounds(t *testing.T) {
	// 2026-08-26 is a Wednesday.
	start, end := weekBounds(date(2026, time.August, 26))
	if start.Weekday() != time.Monday {
		t.Errorf("week start weekday = %v, want Monday", start.Weekday())
	}
	if !start.Equal(time.Date(2026, time.August, 24, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("week start = %v", start)
	}
	if !end.Equal(time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("week end = %v", end)
	}
}

func TestWeekBoundsSunday(t *testing.T) {
	// Sunday belongs to the week that started the previous Monday.
	start, _ := weekBounds(date(2026, time.August, 30))
	if !start.Equal(time.Date(2026, time.August, 24, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("week start = %v, want Monday 08-24", start)
	}
}

func TestWeekBoundsMondayMidnight(t *testing.T) {
	monday := time.Date(2026, time.August, 24, 0, 0, 0, 0, time.UTC)
	start, _ := weekBounds(monday)
	if !start.Equal(monday) {
		t.Errorf("week start = %v, want the same Monday", start)
	}
}

func analyzedJournal(label, theme string) models.JournalModel {
	return models.JournalModel{
		IsAnalyzed: true,
		Analysis:   models.JournalAnalysis{EmotionLabel: label, Theme: theme},
	}
}

func TestAggregateEmotions(t *testing.T) {
	journals := []models.JournalModel{
		analyzedJournal("愉快", "运动"),
		analyzedJournal("愉快", "工作"),
		analyzedJournal("焦虑", "工作"),
		{IsAnalyzed: false},
	}

	stats := aggregateEmotions(journals)
	if len(stats) != 2 {
		t.Fatalf("got %d stats, want 2 (unanalyzed entries excluded)", len(stats))
	}
	if stats[0].EmotionLabel != "愉快" || stats[0].Count != 2 {
		t.Errorf("first stat = %+v", stats[0])
	}
	if stats[1].EmotionLabel != "焦虑" || stats[1].Count != 1 {
		t.Errorf("second stat = %+v", stats[1])
	}
}

func TestAggregateEmotionsMissingLabel(t *testing.T) {
	stats := aggregateEmotions([]models.JournalModel{
		{IsAnalyzed: true, Analysis: models.JournalAnalysis{}},
	})
	if len(stats) != 1 || stats[0].EmotionLabel != "未知" {
		t.Errorf("stats = %+v, want single 未知 bucket", stats)
	}
}

func TestTopThemes(t *testing.T) {
	journals := []models.JournalModel{
		analyzedJournal("", "工作"),
		analyzedJournal("", "工作"),
		analyzedJournal("", "运动"),
		analyzedJournal("", "阅读"),
		analyzedJournal("", "阅读"),
		analyzedJournal("", "阅读"),
	}
	got := topThemes(journals, 2)
	if got != "阅读、工作" {
		t.Errorf("topThemes = %q, want 阅读、工作", got)
	}
}

func TestTopThemesEmpty(t *testing.T) {
	if got := topThemes(nil, 5); got != "" {
		t.Errorf("topThemes(nil) = %q, want empty", got)
	}
}

func TestCompletionRate(t *testing.T) {
	if got := completionRate(nil); got != 0 {
		t.Errorf("completionRate(nil) = %v, want 0", got)
	}

	tasks := []models.TaskModel{
		{Completed: true},
		{Completed: true},
		{Completed: false},
		{Completed: false},
	}
	if got := completionRate(tasks); got != 0.5 {
		t.Errorf("completionRate = %v, want 0.5", got)
	}
}
