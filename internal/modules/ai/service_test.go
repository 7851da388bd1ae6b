package ai

import (
	"testing"

	"github.com/mindlog/core/internal/models"
)

func TestDecodeAnalysisJSON(t *testing.T) {
	raw := `{
  "theme": "坚持锻炼",
  "evaluation": "内容积极向上",
  "thoughtProcess": "从用词判断",
  "sentiment": "positive",
  "depth": "deep"
}`
	got := decodeAnalysis(raw)
	if got.Theme != "坚持锻炼" {
		t.Errorf("theme = %q", got.Theme)
	}
	if got.Sentiment != models.SentimentPositive {
		t.Errorf("sentiment = %q", got.Sentiment)
	}
	if got.Depth != models.DepthDeep {
		t.Errorf("depth = %q", got.Depth)
	}
	if got.EmotionLabel != "未知" {
		t.Errorf("emotion label = %q, want placeholder", got.EmotionLabel)
	}
}

func TestDecodeAnalysisAlternateFieldNames(t *testing.T) {
	raw := `{"emotion_label":"愉快","theme":"晨跑","analysis":"状态良好","thinking_process":"基于描述"}`
	got := decodeAnalysis(raw)
	if got.EmotionLabel != "愉快" {
		t.Errorf("emotion label = %q", got.EmotionLabel)
	}
	if got.Evaluation != "状态良好" {
		t.Errorf("evaluation = %q", got.Evaluation)
	}
	if got.ThoughtProcess != "基于描述" {
		t.Errorf("thought process = %q", got.ThoughtProcess)
	}
}

func TestDecodeAnalysisLabeledFallback(t *testing.T) {
	raw := `情绪标签: 焦虑
主题归纳: 工作压力
深度分析: 近期任务过多导致紧张。
思考过程: 文中多次提到截止日期。`
	got := decodeAnalysis(raw)
	if got.EmotionLabel != "焦虑" {
		t.Errorf("emotion label = %q", got.EmotionLabel)
	}
	if got.Theme != "工作压力" {
		t.Errorf("theme = %q", got.Theme)
	}
	if got.Evaluation == "未能生成分析" {
		t.Error("expected evaluation to be scraped from labeled text")
	}
	if got.ThoughtProcess == "未提供思考过程" {
		t.Error("expected thought process to be scraped from labeled text")
	}
}

func TestDecodeAnalysisPlaceholders(t *testing.T) {
	got := decodeAnalysis("完全无法识别的输出")
	if got.EmotionLabel != "未知" {
		t.Errorf("emotion label = %q", got.EmotionLabel)
	}
	if got.Theme != "未能识别主题" {
		t.Errorf("theme = %q", got.Theme)
	}
	if got.Evaluation != "未能生成分析" {
		t.Errorf("evaluation = %q", got.Evaluation)
	}
	if got.ThoughtProcess != "未提供思考过程" {
		t.Errorf("thought process = %q", got.ThoughtProcess)
	}
	if got.Sentiment != models.SentimentNeutral {
		t.Errorf("sentiment = %q, want neutral default", got.Sentiment)
	}
}

func TestNormalizeSentiment(t *testing.T) {
	cases := map[string]string{
		"positive":  models.SentimentPositive,
		"POSITIVE":  models.SentimentPositive,
		" negative": models.SentimentNegative,
		"neutral":   models.SentimentNeutral,
		"别的":        models.SentimentNeutral,
		"":          models.SentimentNeutral,
	}
	for in, want := range cases {
		if got := normalizeSentiment(in); got != want {
			t.Errorf("normalizeSentiment(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeDepth(t *testing.T) {
	cases := map[string]string{
		"shallow": models.DepthShallow,
		"deep":    models.DepthDeep,
		"DEEP":    models.DepthDeep,
		"别的":      models.DepthModerate,
		"":        models.DepthModerate,
	}
	for in, want := range cases {
		if got := normalizeDepth(in); got != want {
			t.Errorf("normalizeDepth(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDecodeExtractedTasks(t *testing.T) {
	raw := `[{"task":"跑步","originalText":"今天要去跑步"},{"task":"","originalText":"跳过"},{"task":"写周报","originalText":"本周要写周报"}]`
	got := decodeExtractedTasks(raw)
	if len(got) != 2 {
		t.Fatalf("got %d tasks, want 2", len(got))
	}
	if got[0].Task != "跑步" || got[0].TimeContext != "today" {
		t.Errorf("first task = %+v", got[0])
	}
	if got[1].TimeContext != "this_week" {
		t.Errorf("second task time context = %q", got[1].TimeContext)
	}
}
