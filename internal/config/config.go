package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

type Config struct {
	Server  ServerConfig
	Logger  LoggerConfig
	LLM     LLMConfig
	Charts  ChartsConfig
	Session SessionConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type LoggerConfig struct {
	Level  string
	Format string
}

// LLMConfig selects the language model backend. Model and BaseURL fall back
// to per-provider defaults when unset.
type LLMConfig struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
	Timeout  time.Duration
}

// ChartsConfig controls where rendered charts are written and served from.
// A zero Retention keeps charts forever.
type ChartsConfig struct {
	Dir           string
	TempDir       string
	Route         string
	Retention     time.Duration
	SweepInterval time.Duration
}

type SessionConfig struct {
	CookieName     string
	TTL            time.Duration
	MaxUploadBytes int64
	PreviewLines   int
}

var defaultModels = map[string]string{
	ProviderGemini: "gemini-2.0-flash",
	ProviderOpenAI: "gpt-4o-mini",
	ProviderOllama: "llama3",
}

var defaultBaseURLs = map[string]string{
	ProviderGemini: "https://generativelanguage.googleapis.com/v1beta",
	ProviderOllama: "http://localhost:11434",
}

func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOGGER_FORMAT", "json")
	v.SetDefault("LLM_PROVIDER", ProviderGemini)
	v.SetDefault("LLM_API_KEY", "")
	v.SetDefault("LLM_MODEL", "")
	v.SetDefault("LLM_BASE_URL", "")
	v.SetDefault("LLM_TIMEOUT", "60s")
	v.SetDefault("CHARTS_DIR", "static/charts")
	v.SetDefault("CHARTS_TEMP_DIR", "")
	v.SetDefault("CHARTS_ROUTE", "/charts")
	v.SetDefault("CHARTS_RETENTION", "0s")
	v.SetDefault("CHARTS_SWEEP_INTERVAL", "10m")
	v.SetDefault("SESSION_COOKIE", "csv_session")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("UPLOAD_MAX_BYTES", 10<<20)
	v.SetDefault("PREVIEW_LINES", 5)

	// Env
	v.AutomaticEnv()

	provider := strings.ToLower(strings.TrimSpace(v.GetString("LLM_PROVIDER")))

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("SERVER_HOST"),
			Port: v.GetInt("SERVER_PORT"),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOGGER_LEVEL"),
			Format: v.GetString("LOGGER_FORMAT"),
		},
		LLM: LLMConfig{
			Provider: provider,
			APIKey:   v.GetString("LLM_API_KEY"),
			Model:    v.GetString("LLM_MODEL"),
			BaseURL:  strings.TrimRight(v.GetString("LLM_BASE_URL"), "/"),
			Timeout:  duration(v, "LLM_TIMEOUT", 60*time.Second),
		},
		Charts: ChartsConfig{
			Dir:           v.GetString("CHARTS_DIR"),
			TempDir:       v.GetString("CHARTS_TEMP_DIR"),
			Route:         v.GetString("CHARTS_ROUTE"),
			Retention:     duration(v, "CHARTS_RETENTION", 0),
			SweepInterval: duration(v, "CHARTS_SWEEP_INTERVAL", 10*time.Minute),
		},
		Session: SessionConfig{
			CookieName:     v.GetString("SESSION_COOKIE"),
			TTL:            duration(v, "SESSION_TTL", 24*time.Hour),
			MaxUploadBytes: v.GetInt64("UPLOAD_MAX_BYTES"),
			PreviewLines:   v.GetInt("PREVIEW_LINES"),
		},
	}

	if cfg.LLM.Model == "" {
		cfg.LLM.Model = defaultModels[provider]
	}
	if cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = defaultBaseURLs[provider]
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if _, ok := defaultModels[c.LLM.Provider]; !ok {
		return fmt.Errorf("unsupported LLM_PROVIDER %q", c.LLM.Provider)
	}
	if c.LLM.Provider != ProviderOllama && c.LLM.APIKey == "" {
		return fmt.Errorf("LLM_API_KEY is required for provider %s", c.LLM.Provider)
	}
	if c.Charts.Dir == "" {
		return fmt.Errorf("CHARTS_DIR must not be empty")
	}
	if !strings.HasPrefix(c.Charts.Route, "/") {
		return fmt.Errorf("CHARTS_ROUTE must start with /")
	}
	if c.Charts.Retention > 0 && c.Charts.SweepInterval <= 0 {
		return fmt.Errorf("CHARTS_SWEEP_INTERVAL must be positive when retention is enabled")
	}
	if c.Session.MaxUploadBytes <= 0 {
		return fmt.Errorf("UPLOAD_MAX_BYTES must be positive")
	}
	if c.Session.PreviewLines <= 0 {
		return fmt.Errorf("PREVIEW_LINES must be positive")
	}
	return nil
}

func duration(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		return fallback
	}
	return d
}
