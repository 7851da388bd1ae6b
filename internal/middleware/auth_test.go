package middleware

import "testing"

func TestNormalizeToken(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"abc", "abc"},
		{"Bearer abc", "abc"},
		{"bearer abc", "abc"},
		{"BEARER   abc ", "abc"},
		{" Bearer abc", "abc"},
	}
	for _, tc := range cases {
		if got := NormalizeToken(tc.in); got != tc.want {
			t.Errorf("NormalizeToken(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
