package ai

import "testing"

func TestExtractTasksWithRegex(t *testing.T) {
	content := "今天我要去跑步。下午计划写周报，晚上得去买菜。明天要交报告！"

	tasks := ExtractTasksWithRegex(content)
	if len(tasks) == 0 {
		t.Fatal("expected tasks to be extracted")
	}

	byTask := make(map[string]ExtractedTask, len(tasks))
	for _, task := range tasks {
		byTask[task.Task] = task
	}

	run, ok := byTask["跑步"]
	if !ok {
		t.Fatalf("expected 跑步 in %v", tasks)
	}
	if run.TimeContext != "today" {
		t.Errorf("跑步 time context = %q, want today", run.TimeContext)
	}

	report, ok := byTask["交报告"]
	if !ok {
		t.Fatalf("expected 交报告 in %v", tasks)
	}
	if report.TimeContext != "tomorrow" {
		t.Errorf("交报告 time context = %q, want tomorrow", report.TimeContext)
	}

	if _, ok := byTask["买菜"]; !ok {
		t.Errorf("expected 买菜 in %v", tasks)
	}
}

func TestExtractTasksWithRegexBareIntent(t *testing.T) {
	tasks := ExtractTasksWithRegex("我要去跑步。")
	if len(tasks) != 1 {
		t.Fatalf("got %v, want exactly one task", tasks)
	}
	if tasks[0].Task != "跑步" {
		t.Errorf("task = %q, want 跑步", tasks[0].Task)
	}
	if tasks[0].TimeContext != TimeContextUnspecified {
		t.Errorf("time context = %q, want %q", tasks[0].TimeContext, TimeContextUnspecified)
	}
}

func TestExtractTasksWithRegexPrefixedFormWins(t *testing.T) {
	// The 今天 form claims the clause before the bare 我要 form, so
	// the task keeps its time context and appears once.
	tasks := ExtractTasksWithRegex("今天我要去跑步。")
	count := 0
	for _, task := range tasks {
		if task.Task == "跑步" {
			count++
			if task.TimeContext != "today" {
				t.Errorf("time context = %q, want today", task.TimeContext)
			}
		}
	}
	if count != 1 {
		t.Errorf("跑步 extracted %d times, want 1", count)
	}
}

func TestExtractTasksWithRegexDeterministic(t *testing.T) {
	content := "今天要整理桌面。计划读一章书。"

	first := ExtractTasksWithRegex(content)
	second := ExtractTasksWithRegex(content)

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("result %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestExtractTasksWithRegexDedupes(t *testing.T) {
	// 需要 and 得 clauses producing the same description collapse to one.
	content := "需要去洗车。我得去洗车。"

	tasks := ExtractTasksWithRegex(content)
	count := 0
	for _, task := range tasks {
		if task.Task == "洗车" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("洗车 extracted %d times, want 1", count)
	}
}

func TestExtractTasksWithRegexEmpty(t *testing.T) {
	if tasks := ExtractTasksWithRegex(""); len(tasks) != 0 {
		t.Errorf("empty content produced %v", tasks)
	}
	if tasks := ExtractTasksWithRegex("今天天气很好，心情不错。"); len(tasks) != 0 {
		t.Errorf("non-intent content produced %v", tasks)
	}
}

func TestDetectTimeContext(t *testing.T) {
	cases := []struct {
		clause string
		want   string
	}{
		{"今天要去健身", "today"},
		{"明天交作业", "tomorrow"},
		{"后天出发", "day_after_tomorrow"},
		{"周三开会", "wednesday"},
		{"星期五聚餐", "friday"},
		{"礼拜天休息", "sunday"},
		{"下周出差", "next_week"},
		{"这周完成方案", "this_week"},
		{"下个月搬家", "next_month"},
		{"本月结算", "this_month"},
		{"去超市买东西", "unspecified"},
	}
	for _, tc := range cases {
		if got := DetectTimeContext(tc.clause); got != tc.want {
			t.Errorf("DetectTimeContext(%q) = %q, want %q", tc.clause, got, tc.want)
		}
	}
}

func TestDetectTimeContextPrecedence(t *testing.T) {
	// 今天 appears earlier in the table than 下周.
	if got := DetectTimeContext("今天确定下周的安排"); got != "today" {
		t.Errorf("got %q, want today", got)
	}
}
