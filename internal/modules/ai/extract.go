package ai

import (
	"regexp"
	"strings"
)

// ExtractedTask is one actionable item identified in journal text.
type ExtractedTask struct {
	Task         string `json:"task"`
	OriginalText string `json:"originalText"`
	TimeContext  string `json:"timeContext"`
}

// Clause-terminated capture keeps each task inside a single sentence.
var taskPatterns = []*regexp.Regexp{
	regexp.MustCompile(`今天(?:我)?要(?:去)?(.+?)(?:。|，|；|！|\n|$)`),
	regexp.MustCompile(`计划(?:今天|明天|周[一二三四五六日末]|下周|本周|这周|下个月|本月|这个月)?(?:要)?(?:去)?(.+?)(?:。|，|；|！|\n|$)`),
	regexp.MustCompile(`打算(?:今天|明天|周[一二三四五六日末]|下周|本周|这周|下个月|本月|这个月)?(?:要)?(?:去)?(.+?)(?:。|，|；|！|\n|$)`),
	regexp.MustCompile(`准备(?:今天|明天|周[一二三四五六日末]|下周|本周|这周|下个月|本月|这个月)?(?:要)?(?:去)?(.+?)(?:。|，|；|！|\n|$)`),
	regexp.MustCompile(`需要(?:今天|明天|周[一二三四五六日末]|下周|本周|这周|下个月|本月|这个月)?(?:要)?(?:去)?(.+?)(?:。|，|；|！|\n|$)`),
	regexp.MustCompile(`应该(?:今天|明天|周[一二三四五六日末]|下周|本周|这周|下个月|本月|这个月)?(?:要)?(?:去)?(.+?)(?:。|，|；|！|\n|$)`),
	regexp.MustCompile(`得(?:今天|明天|周[一二三四五六日末]|下周|本周|这周|下个月|本月|这个月)?(?:要)?(?:去)?(.+?)(?:。|，|；|！|\n|$)`),
	regexp.MustCompile(`明天(?:我)?要(?:去)?(.+?)(?:。|，|；|！|\n|$)`),
	regexp.MustCompile(`这周(?:我)?要(?:去)?(.+?)(?:。|，|；|！|\n|$)`),
	// Bare intent without a schedule prefix. Ordered last so the
	// prefixed forms above claim the clause first and keep its
	// time context; the dedup in ExtractTasksWithRegex absorbs the
	// overlapping match.
	regexp.MustCompile(`我要(?:去)?(.+?)(?:。|，|；|！|\n|$)`),
}

var timePatterns = []struct {
	pattern *regexp.Regexp
	value   string
}{
	{regexp.MustCompile(`今天`), "today"},
	{regexp.MustCompile(`明天`), "tomorrow"},
	{regexp.MustCompile(`后天`), "day_after_tomorrow"},
	{regexp.MustCompile(`周一|星期一|礼拜一`), "monday"},
	{regexp.MustCompile(`周二|星期二|礼拜二`), "tuesday"},
	{regexp.MustCompile(`周三|星期三|礼拜三`), "wednesday"},
	{regexp.MustCompile(`周四|星期四|礼拜四`), "thursday"},
	{regexp.MustCompile(`周五|星期五|礼拜五`), "friday"},
	{regexp.MustCompile(`周六|星期六|礼拜六`), "saturday"},
	{regexp.MustCompile(`周日|周天|星期日|星期天|礼拜日|礼拜天`), "sunday"},
	{regexp.MustCompile(`下周|下星期|下礼拜`), "next_week"},
	{regexp.MustCompile(`本周|这周|这星期|这礼拜`), "this_week"},
	{regexp.MustCompile(`下个月|下月`), "next_month"},
	{regexp.MustCompile(`本月|这个月`), "this_month"},
}

// TimeContextUnspecified marks tasks with no recognizable schedule hint.
const TimeContextUnspecified = "unspecified"

// DetectTimeContext returns the schedule hint contained in a matched
// clause. Earlier entries in the table win.
func DetectTimeContext(clause string) string {
	for _, tp := range timePatterns {
		if tp.pattern.MatchString(clause) {
			return tp.value
		}
	}
	return TimeContextUnspecified
}

// ExtractTasksWithRegex scans journal text for intent phrases and
// returns the identified tasks in pattern order. Identical task texts
// matched by more than one pattern are reported once.
func ExtractTasksWithRegex(content string) []ExtractedTask {
	if strings.TrimSpace(content) == "" {
		return nil
	}

	var tasks []ExtractedTask
	seen := make(map[string]struct{})

	for _, pattern := range taskPatterns {
		for _, match := range pattern.FindAllStringSubmatch(content, -1) {
			description := strings.TrimSpace(match[1])
			if description == "" {
				continue
			}
			if _, ok := seen[description]; ok {
				continue
			}
			seen[description] = struct{}{}

			tasks = append(tasks, ExtractedTask{
				Task:         description,
				OriginalText: strings.TrimSpace(match[0]),
				TimeContext:  DetectTimeContext(match[0]),
			})
		}
	}
	return tasks
}
