package stats

import (
	"testing"
	"time"

	"github.com/mindlog/core/internal/models"
)

func analyzedJournal(created time.Time, theme, emotion string) models.JournalModel {
	j := models.JournalModel{
		IsAnalyzed: true,
		Analysis:   models.JournalAnalysis{Theme: theme, EmotionLabel: emotion},
	}
	j.CreatedAt = created
	return j
}

func TestEmotionDistribution(t *testing.T) {
	day := time.Date(2026, time.August, 1, 12, 0, 0, 0, time.UTC)
	journals := []models.JournalModel{
		analyzedJournal(day, "工作", "开心"),
		analyzedJournal(day.AddDate(0, 0, 1), "生活", "开心"),
		analyzedJournal(day.AddDate(0, 0, 2), "工作", "疲惫"),
		{}, // unanalyzed, not counted
	}
	journals[3].CreatedAt = day.AddDate(0, 0, 3)

	got := emotionDistribution(journals)
	want := []EmotionCount{{Label: "开心", Count: 2}, {Label: "疲惫", Count: 1}}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("bucket %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestEmotionDistributionTiesBreakByLabel(t *testing.T) {
	day := time.Date(2026, time.August, 1, 12, 0, 0, 0, time.UTC)
	journals := []models.JournalModel{
		analyzedJournal(day, "", "平静"),
		analyzedJournal(day, "", "开心"),
	}
	got := emotionDistribution(journals)
	if len(got) != 2 || got[0].Label != "开心" {
		t.Errorf("equal counts should order by label, got %v", got)
	}
}

func TestEmotionTrendKeepsOrderAndSkipsUnanalyzed(t *testing.T) {
	day := time.Date(2026, time.August, 1, 12, 0, 0, 0, time.UTC)
	journals := []models.JournalModel{
		analyzedJournal(day, "", "开心"),
		{},
		analyzedJournal(day.AddDate(0, 0, 2), "", "疲惫"),
	}
	journals[1].CreatedAt = day.AddDate(0, 0, 1)

	got := emotionTrend(journals)
	if len(got) != 2 {
		t.Fatalf("got %v, want 2 points", got)
	}
	if got[0] != (EmotionPoint{Date: "2026-08-01", Label: "开心"}) {
		t.Errorf("first point = %v", got[0])
	}
	if got[1] != (EmotionPoint{Date: "2026-08-03", Label: "疲惫"}) {
		t.Errorf("second point = %v", got[1])
	}
}

func TestThemeDistributionLimit(t *testing.T) {
	day := time.Date(2026, time.August, 1, 12, 0, 0, 0, time.UTC)
	var journals []models.JournalModel
	journals = append(journals,
		analyzedJournal(day, "工作", ""),
		analyzedJournal(day, "工作", ""),
		analyzedJournal(day, "阅读", ""),
		analyzedJournal(day, "运动", ""),
	)

	got := themeDistribution(journals, 2)
	if len(got) != 2 {
		t.Fatalf("got %v, want 2 themes", got)
	}
	if got[0] != (ThemeCount{Theme: "工作", Count: 2}) {
		t.Errorf("top theme = %v", got[0])
	}
}

func TestTaskTotals(t *testing.T) {
	tasks := []models.TaskModel{
		{Completed: true},
		{Completed: false},
		{Completed: true},
	}
	got := taskTotals(tasks)
	if got.Total != 3 || got.Completed != 2 {
		t.Errorf("totals = %+v", got)
	}
}

func TestWeeklyCompletionTrend(t *testing.T) {
	monday := time.Date(2026, time.August, 3, 9, 0, 0, 0, time.UTC)
	tasks := []models.TaskModel{
		{Completed: true},
		{Completed: false},
		{Completed: true},
	}
	tasks[0].CreatedAt = monday
	tasks[1].CreatedAt = monday.AddDate(0, 0, 2)
	tasks[2].CreatedAt = monday.AddDate(0, 0, 7) // next week

	got := weeklyCompletionTrend(tasks)
	if len(got) != 2 {
		t.Fatalf("got %v, want 2 weeks", got)
	}
	if got[0].Total != 2 || got[0].Completed != 1 {
		t.Errorf("first week = %+v", got[0])
	}
	if got[1].Total != 1 || got[1].Completed != 1 {
		t.Errorf("second week = %+v", got[1])
	}
	if !(got[0].Week < got[1].Week) {
		t.Errorf("weeks out of order: %q then %q", got[0].Week, got[1].Week)
	}
}

func TestMonthlyJournalTrend(t *testing.T) {
	journals := make([]models.JournalModel, 3)
	journals[0].CreatedAt = time.Date(2026, time.July, 30, 8, 0, 0, 0, time.UTC)
	journals[1].CreatedAt = time.Date(2026, time.August, 1, 8, 0, 0, 0, time.UTC)
	journals[2].CreatedAt = time.Date(2026, time.August, 15, 8, 0, 0, 0, time.UTC)

	got := monthlyJournalTrend(journals)
	want := []MonthCount{{Month: "2026-07", Count: 1}, {Month: "2026-08", Count: 2}}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("month %d = %v, want %v", i, got[i], want[i])
		}
	}
}
