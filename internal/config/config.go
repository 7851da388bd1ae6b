package config

import (
	"bytes"
	"fmt"
	"net"
	neturl "net/url"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort       = 3001
	defaultEnv        = "development"
	defaultDBHost     = "127.0.0.1"
	defaultDBPort     = 3306
	defaultDBUser     = "root"
	defaultDBPassword = "password"
	defaultDBName     = "mindlog"
	defaultDBCharset  = "utf8mb4"
	defaultDBLoc      = "Local"
	defaultRedisHost  = "localhost"
	defaultRedisPort  = 6379
	defaultRedisDB    = 0

	defaultDeepSeekBaseURL = "https://api.deepseek.com/v1"
	defaultDeepSeekModel   = "deepseek-chat"
)

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int                   `yaml:"port"`
	DSN            string                `yaml:"dsn"` // MySQL DSN, built from Database when empty
	RedisURL       string                `yaml:"redis_url"`
	Database       DatabaseRuntimeConfig `yaml:"database"`
	Redis          RedisRuntimeConfig    `yaml:"redis"`
	Env            string                `yaml:"env"` // "development" | "production"
	AllowedOrigins []string              `yaml:"allowed_origins"`
	JWTSecret      string                `yaml:"jwt_secret"`
	Timezone       string                `yaml:"timezone"`
	DeepSeek       DeepSeekRuntimeConfig `yaml:"deepseek"`
}

type DatabaseRuntimeConfig struct {
	DSN      string            `yaml:"dsn"`
	Host     string            `yaml:"host"`
	Port     int               `yaml:"port"`
	User     string            `yaml:"user"`
	Password string            `yaml:"password"`
	Name     string            `yaml:"name"`
	Charset  string            `yaml:"charset"`
	Loc      string            `yaml:"loc"`
	Params   map[string]string `yaml:"params"`
}

type RedisRuntimeConfig struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	TLS      bool   `yaml:"tls"`
}

// DeepSeekRuntimeConfig holds the server-level fallback for the AI
// provider. A per-user API key stored in settings takes precedence.
type DeepSeekRuntimeConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port: defaultPort,
		Env:  defaultEnv,
		Database: DatabaseRuntimeConfig{
			Host:     defaultDBHost,
			Port:     defaultDBPort,
			User:     defaultDBUser,
			Password: defaultDBPassword,
			Name:     defaultDBName,
			Charset:  defaultDBCharset,
			Loc:      defaultDBLoc,
		},
		Redis: RedisRuntimeConfig{
			Host: defaultRedisHost,
			Port: defaultRedisPort,
			DB:   defaultRedisDB,
		},
		DeepSeek: DeepSeekRuntimeConfig{
			BaseURL: defaultDeepSeekBaseURL,
			Model:   defaultDeepSeekModel,
		},
	}
}

// Load reads and validates the YAML config at path. Environment
// variables override file values for secrets.
func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	cfg := defaultAppConfig()

	content, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config file %q: %w", path, err)
		}
		// Missing file is fine, run on defaults plus env overrides.
	} else {
		decoder := yaml.NewDecoder(bytes.NewReader(content))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse config file %q: %w", path, err)
		}
	}

	applyEnvOverrides(&cfg)

	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d in %q, expected 1-65535", cfg.Port, path)
	}
	if cfg.Env != "development" && cfg.Env != "production" {
		return nil, fmt.Errorf("invalid env %q in %q, expected development or production", cfg.Env, path)
	}

	if strings.TrimSpace(cfg.DSN) == "" {
		cfg.DSN = buildMySQLDSN(cfg.Database)
	}
	if strings.TrimSpace(cfg.RedisURL) == "" {
		cfg.RedisURL = buildRedisURL(cfg.Redis)
	}
	cfg.DeepSeek.BaseURL = NormalizeBaseURL(cfg.DeepSeek.BaseURL)
	if strings.TrimSpace(cfg.DeepSeek.Model) == "" {
		cfg.DeepSeek.Model = defaultDeepSeekModel
	}

	return &cfg, nil
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := os.Getenv("MINDLOG_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := os.Getenv("MINDLOG_DSN"); v != "" {
		cfg.DSN = v
	}
	if v := os.Getenv("MINDLOG_REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}
	if v := os.Getenv("MINDLOG_JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("DEEPSEEK_API_KEY"); v != "" {
		cfg.DeepSeek.APIKey = v
	}
	if v := os.Getenv("MINDLOG_ENV"); v != "" {
		cfg.Env = v
	}
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool { return c.Env != "production" }

func buildMySQLDSN(db DatabaseRuntimeConfig) string {
	if strings.TrimSpace(db.DSN) != "" {
		return db.DSN
	}

	charset := db.Charset
	if charset == "" {
		charset = defaultDBCharset
	}
	loc := db.Loc
	if loc == "" {
		loc = defaultDBLoc
	}

	params := neturl.Values{}
	params.Set("charset", charset)
	params.Set("parseTime", "True")
	params.Set("loc", loc)
	for k, v := range db.Params {
		params.Set(k, v)
	}

	addr := net.JoinHostPort(db.Host, strconv.Itoa(db.Port))
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?%s", db.User, db.Password, addr, db.Name, params.Encode())
}

func buildRedisURL(r RedisRuntimeConfig) string {
	scheme := "redis"
	if r.TLS {
		scheme = "rediss"
	}
	u := neturl.URL{
		Scheme: scheme,
		Host:   net.JoinHostPort(r.Host, strconv.Itoa(r.Port)),
		Path:   "/" + strconv.Itoa(r.DB),
	}
	if r.Username != "" || r.Password != "" {
		u.User = neturl.UserPassword(r.Username, r.Password)
	}
	return u.String()
}

// NormalizeBaseURL ensures an OpenAI-compatible base URL ends with /v1.
func NormalizeBaseURL(raw string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(raw), "/")
	if trimmed == "" {
		return defaultDeepSeekBaseURL
	}
	if strings.HasSuffix(trimmed, "/v1") {
		return trimmed
	}
	return trimmed + "/v1"
}
