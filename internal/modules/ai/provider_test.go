package ai

import "testing"

func TestUnmarshalAIJSON(t *testing.T) {
	type payload struct {
		Theme string `json:"theme"`
	}

	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", `{"theme":"工作"}`, "工作"},
		{"fenced", "```json\n{\"theme\":\"生活\"}\n```", "生活"},
		{"fence no lang", "```\n{\"theme\":\"学习\"}\n```", "学习"},
		{"prose wrapped", "好的，结果如下：{\"theme\":\"健康\"} 希望有帮助。", "健康"},
	}
	for _, tc := range cases {
		var out payload
		if err := unmarshalAIJSON(tc.raw, &out); err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
			continue
		}
		if out.Theme != tc.want {
			t.Errorf("%s: theme = %q, want %q", tc.name, out.Theme, tc.want)
		}
	}
}

func TestUnmarshalAIJSONArray(t *testing.T) {
	var out []struct {
		Task string `json:"task"`
	}
	raw := "以下是提取结果：\n```json\n[{\"task\":\"跑步\"},{\"task\":\"买菜\"}]\n```"
	if err := unmarshalAIJSON(raw, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 || out[0].Task != "跑步" || out[1].Task != "买菜" {
		t.Errorf("unexpected result: %+v", out)
	}
}

func TestUnmarshalAIJSONInvalid(t *testing.T) {
	var out map[string]interface{}
	if err := unmarshalAIJSON("这不是JSON", &out); err == nil {
		t.Error("expected error for non-JSON input")
	}
}
