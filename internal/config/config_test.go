package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 3001 {
		t.Errorf("port = %d", cfg.Port)
	}
	if !cfg.IsDev() {
		t.Error("default env should be development")
	}
	if cfg.DeepSeek.BaseURL != "https://api.deepseek.com/v1" {
		t.Errorf("deepseek base url = %q", cfg.DeepSeek.BaseURL)
	}
	if cfg.DeepSeek.Model != "deepseek-chat" {
		t.Errorf("deepseek model = %q", cfg.DeepSeek.Model)
	}
	if cfg.DSN == "" {
		t.Error("expected DSN to be built from database defaults")
	}
	if cfg.RedisURL == "" {
		t.Error("expected redis URL to be built from defaults")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
port: 8080
env: production
jwt_secret: s3cret
database:
  host: db.internal
  port: 3306
  user: mindlog
  password: pw
  name: mindlog
redis:
  host: cache.internal
  port: 6380
  db: 2
deepseek:
  base_url: https://proxy.example.com
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("port = %d", cfg.Port)
	}
	if cfg.IsDev() {
		t.Error("env should be production")
	}
	if cfg.JWTSecret != "s3cret" {
		t.Errorf("jwt secret = %q", cfg.JWTSecret)
	}
	if got := cfg.DSN; got != "mindlog:pw@tcp(db.internal:3306)/mindlog?charset=utf8mb4&loc=Local&parseTime=True" {
		t.Errorf("dsn = %q", got)
	}
	if cfg.RedisURL != "redis://cache.internal:6380/2" {
		t.Errorf("redis url = %q", cfg.RedisURL)
	}
	if cfg.DeepSeek.BaseURL != "https://proxy.example.com/v1" {
		t.Errorf("deepseek base url = %q", cfg.DeepSeek.BaseURL)
	}
}

func TestLoadRejectsBadPort(t *testing.T) {
	path := writeConfig(t, "port: 99999\n")
	if _, err := Load(path); err == nil {
		t.Error("expected error for out-of-range port")
	}
}

func TestLoadRejectsBadEnv(t *testing.T) {
	path := writeConfig(t, "env: staging\n")
	if _, err := Load(path); err == nil {
		t.Error("expected error for unknown env")
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, "prot: 8080\n")
	if _, err := Load(path); err == nil {
		t.Error("expected error for unknown top-level key")
	}
}

func TestNormalizeBaseURL(t *testing.T) {
	cases := map[string]string{
		"":                               "https://api.deepseek.com/v1",
		"https://api.deepseek.com":       "https://api.deepseek.com/v1",
		"https://api.deepseek.com/":      "https://api.deepseek.com/v1",
		"https://api.deepseek.com/v1":    "https://api.deepseek.com/v1",
		"https://api.deepseek.com/v1///": "https://api.deepseek.com/v1",
	}
	for in, want := range cases {
		if got := NormalizeBaseURL(in); got != want {
			t.Errorf("NormalizeBaseURL(%q) = %q, want %q", in, got, want)
		}
	}
}
