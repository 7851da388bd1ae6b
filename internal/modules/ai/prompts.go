package ai

import (
	"encoding/json"
	"fmt"
)

const (
	analyzeSystemPrompt = "你是一个专业的日记分析助手，擅长分析文本内容并提供深入见解。"
	extractSystemPrompt = "你是一个专业的任务提取助手，擅长从文本中识别和提取待办事项。"
	weeklySystemPrompt  = "你是一个专业的个人发展顾问，擅长分析日记内容并提供有价值的成长建议。"
)

func buildAnalyzePrompt(content string) string {
	return fmt.Sprintf(`请分析以下日记内容，并提供以下信息：
1. 主题归纳：提炼句子的重点和主旨（简洁明了，不超过30字）
2. 内容评价：对内容的情感色彩、积极性、深刻度等方面的评价（100-200字）
3. 思考过程：详细说明你是如何分析到这些评价点的（300-500字）
4. 情感分类：将内容情感分为"positive"（积极正向）、"neutral"（中性平和）或"negative"（消极负面）之一
5. 深度分类：将内容深度分为"shallow"（浅层思考）、"moderate"（中等深度）或"deep"（深度思考）之一

日记内容：
%s

请按以下JSON格式返回结果（不要包含其他内容）：
{
  "theme": "主题归纳结果",
  "evaluation": "内容评价结果",
  "thoughtProcess": "思考过程结果",
  "sentiment": "情感分类结果",
  "depth": "深度分类结果"
}`, content)
}

func buildExtractTasksPrompt(content string) string {
	return fmt.Sprintf(`请从以下日记内容中提取所有待办事项或计划做的事情。
- 识别所有包含"我要做..."、"计划做..."、"需要完成..."、"打算..."等表达意图的句子
- 只提取明确的行动项，忽略模糊的想法
- 每个待办事项应该是具体、可操作的
- 返回一个JSON数组，每个元素包含待办事项内容和原始文本

日记内容：
%s

请按以下JSON格式返回结果（不要包含其他内容）：
[
  {
    "task": "待办事项1",
    "originalText": "原始文本1"
  },
  {
    "task": "待办事项2",
    "originalText": "原始文本2"
  }
]

如果没有找到待办事项，请返回空数组 []`, content)
}

// weeklyJournalDigest is the per-entry shape embedded into the weekly
// report prompt.
type weeklyJournalDigest struct {
	Date      string `json:"date"`
	Content   string `json:"content"`
	Theme     string `json:"theme"`
	Sentiment string `json:"sentiment"`
}

type weeklyTaskDigest struct {
	Content     string `json:"content"`
	CompletedAt string `json:"completedAt"`
}

func buildWeeklyReportPrompt(journals []weeklyJournalDigest, tasks []weeklyTaskDigest) string {
	journalJSON, _ := json.MarshalIndent(journals, "", "  ")
	taskJSON, _ := json.MarshalIndent(tasks, "", "  ")

	return fmt.Sprintf(`请根据以下一周的日记和已完成的任务，生成一份周报总结。
包括以下内容：
1. 本周概述：对一周整体情况的简要总结（100-150字）
2. 主题分析：分析一周日记中出现的主要主题和关注点（150-200字）
3. 情绪趋势：分析一周的情绪变化趋势（100-150字）
4. 成就回顾：总结已完成的任务和取得的成就（100-150字）
5. 成长建议：基于日记内容，提供3-5条有针对性的成长建议（200-300字）

本周日记：
%s

已完成任务：
%s

请按以下JSON格式返回结果（不要包含其他内容）：
{
  "weekOverview": "本周概述内容",
  "themeAnalysis": "主题分析内容",
  "moodTrend": "情绪趋势内容",
  "achievements": "成就回顾内容",
  "growthSuggestions": "成长建议内容"
}`, journalJSON, taskJSON)
}
