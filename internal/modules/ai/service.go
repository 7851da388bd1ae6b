package ai

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mindlog/core/internal/config"
	"github.com/mindlog/core/internal/models"
	"github.com/mindlog/core/internal/pkg/logger"
	"github.com/mindlog/core/internal/pkg/taskqueue"
)

// ErrAPIKeyMissing is returned when neither the user settings nor the
// server config provide a DeepSeek API key.
var ErrAPIKeyMissing = errors.New("未设置DeepSeek API密钥")

// WeeklyReport is the narrative part of a weekly summary.
type WeeklyReport struct {
	WeekOverview      string `json:"weekOverview"`
	ThemeAnalysis     string `json:"themeAnalysis"`
	MoodTrend         string `json:"moodTrend"`
	Achievements      string `json:"achievements"`
	GrowthSuggestions string `json:"growthSuggestions"`
}

// Service talks to the DeepSeek chat endpoint and owns the regex
// fallback used when no key is configured or the model output is
// unusable.
type Service struct {
	db    *gorm.DB
	cfg   *config.AppConfig
	queue *taskqueue.Service
	log   *zap.Logger
}

func NewService(db *gorm.DB, cfg *config.AppConfig, queue *taskqueue.Service) *Service {
	return &Service{
		db:    db,
		cfg:   cfg,
		queue: queue,
		log:   logger.Named("ai"),
	}
}

// resolveAPIKey prefers the per-user key stored in settings and falls
// back to the server-level key.
func (s *Service) resolveAPIKey(userID string) (string, error) {
	var settings models.SettingsModel
	err := s.db.Where("user_id = ?", userID).First(&settings).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}
	if key := strings.TrimSpace(settings.DeepSeekAPIKey); key != "" {
		return key, nil
	}
	if key := strings.TrimSpace(s.cfg.DeepSeek.APIKey); key != "" {
		return key, nil
	}
	return "", ErrAPIKeyMissing
}

// HasAPIKey reports whether AI calls can be made for this user.
func (s *Service) HasAPIKey(userID string) bool {
	_, err := s.resolveAPIKey(userID)
	return err == nil
}

// Analyze runs the journal analysis prompt and decodes the result.
func (s *Service) Analyze(ctx context.Context, userID, content string) (*models.JournalAnalysis, error) {
	if strings.TrimSpace(content) == "" {
		return nil, errors.New("日记内容不能为空")
	}
	apiKey, err := s.resolveAPIKey(userID)
	if err != nil {
		return nil, err
	}
	client, err := newChatClient(apiKey, s.cfg.DeepSeek.BaseURL)
	if err != nil {
		return nil, err
	}

	raw, err := callChat(ctx, client, s.cfg.DeepSeek.Model, chatRequest{
		SystemPrompt: analyzeSystemPrompt,
		Prompt:       buildAnalyzePrompt(content),
		Temperature:  0.7,
		MaxTokens:    1000,
	})
	if err != nil {
		return nil, err
	}
	return decodeAnalysis(raw), nil
}

// ExtractTasks asks the model for actionable items, falling back to
// regex extraction when no key is available or the model finds nothing.
func (s *Service) ExtractTasks(ctx context.Context, userID, content string) ([]ExtractedTask, error) {
	apiKey, err := s.resolveAPIKey(userID)
	if err != nil {
		if errors.Is(err, ErrAPIKeyMissing) {
			return ExtractTasksWithRegex(content), nil
		}
		return nil, err
	}

	client, err := newChatClient(apiKey, s.cfg.DeepSeek.BaseURL)
	if err != nil {
		return ExtractTasksWithRegex(content), nil
	}

	raw, err := callChat(ctx, client, s.cfg.DeepSeek.Model, chatRequest{
		SystemPrompt: extractSystemPrompt,
		Prompt:       buildExtractTasksPrompt(content),
		Temperature:  0.3,
		MaxTokens:    500,
	})
	if err != nil {
		s.log.Warn("task extraction via AI failed, using regex fallback", zap.Error(err))
		return ExtractTasksWithRegex(content), nil
	}

	tasks := decodeExtractedTasks(raw)
	if len(tasks) == 0 {
		return ExtractTasksWithRegex(content), nil
	}
	return tasks, nil
}

// GenerateWeeklyReport produces the narrative summary for a week of
// journals and completed tasks.
func (s *Service) GenerateWeeklyReport(ctx context.Context, userID string, journals []models.JournalModel, completed []models.TaskModel) (*WeeklyReport, error) {
	apiKey, err := s.resolveAPIKey(userID)
	if err != nil {
		return nil, err
	}
	client, err := newChatClient(apiKey, s.cfg.DeepSeek.BaseURL)
	if err != nil {
		return nil, err
	}

	digests := make([]weeklyJournalDigest, 0, len(journals))
	for _, j := range journals {
		d := weeklyJournalDigest{
			Date:      j.CreatedAt.Format("2006-01-02"),
			Content:   j.Content,
			Theme:     "无主题",
			Sentiment: "未分析",
		}
		if j.Analysis.Theme != "" {
			d.Theme = j.Analysis.Theme
		}
		if j.Analysis.Sentiment != "" {
			d.Sentiment = j.Analysis.Sentiment
		}
		digests = append(digests, d)
	}

	taskDigests := make([]weeklyTaskDigest, 0, len(completed))
	for _, t := range completed {
		d := weeklyTaskDigest{Content: t.Content}
		if t.CompletedAt != nil {
			d.CompletedAt = t.CompletedAt.Format("2006-01-02")
		}
		taskDigests = append(taskDigests, d)
	}

	raw, err := callChat(ctx, client, s.cfg.DeepSeek.Model, chatRequest{
		SystemPrompt: weeklySystemPrompt,
		Prompt:       buildWeeklyReportPrompt(digests, taskDigests),
		Temperature:  0.7,
		MaxTokens:    1000,
	})
	if err != nil {
		return nil, err
	}

	var report WeeklyReport
	if err := unmarshalAIJSON(raw, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// decodeAnalysis decodes the model output, first as the requested JSON
// shape, then by scraping labeled sections from free text.
func decodeAnalysis(raw string) *models.JournalAnalysis {
	var decoded struct {
		Theme           string `json:"theme"`
		Evaluation      string `json:"evaluation"`
		ThoughtProcess  string `json:"thoughtProcess"`
		Sentiment       string `json:"sentiment"`
		Depth           string `json:"depth"`
		EmotionLabel    string `json:"emotion_label"`
		Analysis        string `json:"analysis"`
		ThinkingProcess string `json:"thinking_process"`
	}
	if err := unmarshalAIJSON(raw, &decoded); err == nil {
		result := &models.JournalAnalysis{
			Theme:          strings.TrimSpace(decoded.Theme),
			Evaluation:     strings.TrimSpace(decoded.Evaluation),
			ThoughtProcess: strings.TrimSpace(decoded.ThoughtProcess),
			Sentiment:      normalizeSentiment(decoded.Sentiment),
			Depth:          normalizeDepth(decoded.Depth),
			EmotionLabel:   strings.TrimSpace(decoded.EmotionLabel),
		}
		if result.Evaluation == "" {
			result.Evaluation = strings.TrimSpace(decoded.Analysis)
		}
		if result.ThoughtProcess == "" {
			result.ThoughtProcess = strings.TrimSpace(decoded.ThinkingProcess)
		}
		if result.Theme != "" || result.Evaluation != "" || result.ThoughtProcess != "" {
			fillAnalysisPlaceholders(result)
			return result
		}
	}
	return parseLabeledAnalysis(raw)
}

var (
	emotionLabelRe   = regexp.MustCompile(`(?m)情绪标签[：:]\s*(.+)$`)
	themeLabelRe     = regexp.MustCompile(`(?m)主题归纳[：:]\s*(.+)$`)
	analysisLabelRe  = regexp.MustCompile(`(?s)深度分析[：:]\s*(.+?)(?:思考过程|$)`)
	thoughtsLabelRe  = regexp.MustCompile(`(?s)思考过程[：:]\s*(.+)$`)
	sentimentLabelRe = regexp.MustCompile(`positive|negative|neutral`)
)

// parseLabeledAnalysis scrapes "情绪标签: ..." style sections out of a
// free-text reply that ignored the JSON format instruction.
func parseLabeledAnalysis(raw string) *models.JournalAnalysis {
	result := &models.JournalAnalysis{}
	if m := emotionLabelRe.FindStringSubmatch(raw); m != nil {
		result.EmotionLabel = strings.TrimSpace(m[1])
	}
	if m := themeLabelRe.FindStringSubmatch(raw); m != nil {
		result.Theme = strings.TrimSpace(m[1])
	}
	if m := analysisLabelRe.FindStringSubmatch(raw); m != nil {
		result.Evaluation = strings.TrimSpace(m[1])
	}
	if m := thoughtsLabelRe.FindStringSubmatch(raw); m != nil {
		result.ThoughtProcess = strings.TrimSpace(m[1])
	}
	result.Sentiment = normalizeSentiment(sentimentLabelRe.FindString(raw))
	fillAnalysisPlaceholders(result)
	return result
}

func fillAnalysisPlaceholders(a *models.JournalAnalysis) {
	if a.EmotionLabel == "" {
		a.EmotionLabel = "未知"
	}
	if a.Theme == "" {
		a.Theme = "未能识别主题"
	}
	if a.Evaluation == "" {
		a.Evaluation = "未能生成分析"
	}
	if a.ThoughtProcess == "" {
		a.ThoughtProcess = "未提供思考过程"
	}
}

func normalizeSentiment(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case models.SentimentPositive:
		return models.SentimentPositive
	case models.SentimentNegative:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

func normalizeDepth(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case models.DepthShallow:
		return models.DepthShallow
	case models.DepthDeep:
		return models.DepthDeep
	default:
		return models.DepthModerate
	}
}

// decodeExtractedTasks decodes a JSON array of {task, originalText}.
func decodeExtractedTasks(raw string) []ExtractedTask {
	var decoded []struct {
		Task         string `json:"task"`
		OriginalText string `json:"originalText"`
		TimeContext  string `json:"timeContext"`
	}
	if err := unmarshalAIJSON(raw, &decoded); err != nil {
		return nil
	}

	tasks := make([]ExtractedTask, 0, len(decoded))
	for _, item := range decoded {
		task := strings.TrimSpace(item.Task)
		if task == "" {
			continue
		}
		timeCtx := strings.TrimSpace(item.TimeContext)
		if timeCtx == "" {
			timeCtx = DetectTimeContext(item.OriginalText)
		}
		tasks = append(tasks, ExtractedTask{
			Task:         task,
			OriginalText: strings.TrimSpace(item.OriginalText),
			TimeContext:  timeCtx,
		})
	}
	return tasks
}
