package models

// Sentiment classification values produced by analysis.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// Depth classification values produced by analysis.
const (
	DepthShallow  = "shallow"
	DepthModerate = "moderate"
	DepthDeep     = "deep"
)

// JournalAnalysis is the AI-derived annotation embedded in a journal entry.
// All fields may be empty when the entry has not been analyzed, or hold
// placeholder text when the provider response could only be partially decoded.
type JournalAnalysis struct {
	Theme          string `json:"theme"`
	Evaluation     string `json:"evaluation"`
	ThoughtProcess string `json:"thought_process"`
	Sentiment      string `json:"sentiment"` // positive | neutral | negative | ""
	Depth          string `json:"depth"`     // shallow | moderate | deep | ""
	EmotionLabel   string `json:"emotion_label"`
}

// JournalModel is one user-authored entry. The service layer enforces at
// most one entry per user per local calendar day: a second write on the same
// day overwrites the existing row.
type JournalModel struct {
	Base
	UserID     string          `json:"user_id"     gorm:"index;not null"`
	Content    string          `json:"content"     gorm:"type:longtext"`
	Analysis   JournalAnalysis `json:"ai_analysis" gorm:"type:longtext;serializer:json"`
	IsAnalyzed bool            `json:"is_analyzed" gorm:"default:false"`
}

func (JournalModel) TableName() string { return "journals" }
