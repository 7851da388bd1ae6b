package journal

import (
	"testing"
	"time"

	"github.com/mindlog/core/internal/models"
)

func TestDayRange(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		t.Fatal(err)
	}

	at := time.Date(2026, time.August, 31, 23, 59, 59, 0, loc)
	start, end := dayRange(at)

	wantStart := time.Date(2026, time.August, 31, 0, 0, 0, 0, loc)
	wantEnd := time.Date(2026, time.September, 1, 0, 0, 0, 0, loc)
	if !start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", start, wantStart)
	}
	if !end.Equal(wantEnd) {
		t.Errorf("end = %v, want %v", end, wantEnd)
	}
}

func TestDayRangeMidnightBoundary(t *testing.T) {
	midnight := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	start, end := dayRange(midnight)
	if !start.Equal(midnight) {
		t.Errorf("midnight should start its own day, got %v", start)
	}
	if !end.Equal(midnight.AddDate(0, 0, 1)) {
		t.Errorf("end = %v", end)
	}

	// One nanosecond earlier still belongs to the previous day.
	prev, _ := dayRange(midnight.Add(-time.Nanosecond))
	if !prev.Equal(midnight.AddDate(0, 0, -1)) {
		t.Errorf("previous day start = %v", prev)
	}
}

func TestMergeAnalysisKeepsOldValues(t *testing.T) {
	old := models.JournalAnalysis{
		Theme:        "工作",
		Evaluation:   "旧评价",
		Sentiment:    models.SentimentPositive,
		Depth:        models.DepthDeep,
		EmotionLabel: "开心",
	}
	in := models.JournalAnalysis{
		Evaluation: "新评价",
		Sentiment:  models.SentimentNegative,
	}

	got := mergeAnalysis(old, in)
	if got.Evaluation != "新评价" || got.Sentiment != models.SentimentNegative {
		t.Errorf("incoming fields not applied: %+v", got)
	}
	if got.Theme != "工作" || got.Depth != models.DepthDeep || got.EmotionLabel != "开心" {
		t.Errorf("empty incoming fields should keep old values: %+v", got)
	}
}

func TestMergeAnalysisOntoEmpty(t *testing.T) {
	in := models.JournalAnalysis{Theme: "生活", Sentiment: models.SentimentNeutral}
	got := mergeAnalysis(models.JournalAnalysis{}, in)
	if got != in {
		t.Errorf("merge onto empty should equal input, got %+v", got)
	}
}
