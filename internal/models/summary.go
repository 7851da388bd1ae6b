package models

import "time"

// EmotionStat is one bucket of the weekly emotion histogram.
type EmotionStat struct {
	EmotionLabel string `json:"emotion_label"`
	Count        int    `json:"count"`
}

// WeeklySummaryModel caches one generated summary per user per week.
// Re-requesting within the same week returns the stored row instead of
// regenerating.
type WeeklySummaryModel struct {
	Base
	UserID             string        `json:"user_id"              gorm:"index:idx_summaries_user_week,unique;not null"`
	WeekStartDate      time.Time     `json:"week_start_date"      gorm:"index:idx_summaries_user_week,unique;not null"`
	WeekEndDate        time.Time     `json:"week_end_date"        gorm:"not null"`
	EmotionStats       []EmotionStat `json:"emotion_stats"        gorm:"type:longtext;serializer:json"`
	ThemeSummary       string        `json:"theme_summary"        gorm:"type:text"`
	TaskCompletionRate float64       `json:"task_completion_rate"`
	GeneratedContent   string        `json:"generated_content"    gorm:"type:longtext"`
}

func (WeeklySummaryModel) TableName() string { return "weekly_summaries" }
