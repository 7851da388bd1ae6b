package settings

import "testing"

func TestMaskAPIKey(t *testing.T) {
	cases := map[string]string{
		"sk-abcdefghijxyz": "sk-ab****xyz",
		"sk-12345678":      "****",
		"short":            "****",
	}
	for in, want := range cases {
		if got := maskAPIKey(in); got != want {
			t.Errorf("maskAPIKey(%q) = %q, want %q", in, got, want)
		}
	}
}
