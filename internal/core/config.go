package core

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Port     int    `yaml:"port"`
	LogLevel string `yaml:"log_level"` // debug, info, warn, error
	Env      string `yaml:"env"`       // development or production

	LLM struct {
		APIKey        string `yaml:"api_key"`
		BaseURL       string `yaml:"base_url"`
		SchemaModel   string `yaml:"schema_model"`
		ReminderModel string `yaml:"reminder_model"`
		TimeoutSec    int    `yaml:"timeout_seconds"`
	} `yaml:"llm"`

	Google struct {
		ClientID     string `yaml:"client_id"`
		ClientSecret string `yaml:"client_secret"`
		TimeoutSec   int    `yaml:"timeout_seconds"`
	} `yaml:"google"`

	DefaultTimezone string `yaml:"default_timezone"`
}

// LoadConfig loads configuration from an optional YAML file pointed to by
// FORMFORGE_CONFIG, then applies environment-variable overrides.
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	if path := os.Getenv("FORMFORGE_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnv(cfg)

	if cfg.Port == 0 {
		cfg.Port = 3000
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if os.Getenv("DEBUG") == "1" {
		cfg.LogLevel = "debug"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.DefaultTimezone == "" {
		cfg.DefaultTimezone = "Asia/Kolkata"
	}

	return cfg, nil
}

// Validate checks that a production posture has the credentials it needs.
// Serving degraded traffic silently is worse than refusing to start.
func (c *Config) Validate() error {
	if c.Env != "production" {
		return nil
	}
	if c.LLM.APIKey == "" {
		return fmt.Errorf("LLM_API_KEY is required in production")
	}
	if c.Google.ClientID == "" || c.Google.ClientSecret == "" {
		return fmt.Errorf("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET are required in production")
	}
	return nil
}

// LLMTimeout returns the configured generation-call timeout.
func (c *Config) LLMTimeout() time.Duration {
	if c.LLM.TimeoutSec > 0 {
		return time.Duration(c.LLM.TimeoutSec) * time.Second
	}
	return 30 * time.Second
}

// GoogleTimeout returns the configured collaborator-call timeout.
func (c *Config) GoogleTimeout() time.Duration {
	if c.Google.TimeoutSec > 0 {
		return time.Duration(c.Google.TimeoutSec) * time.Second
	}
	return 30 * time.Second
}

func applyEnv(cfg *Config) {
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.Env, "APP_ENV")
	setString(&cfg.LLM.APIKey, "LLM_API_KEY")
	setString(&cfg.LLM.BaseURL, "LLM_BASE_URL")
	setString(&cfg.LLM.SchemaModel, "LLM_SCHEMA_MODEL")
	setString(&cfg.LLM.ReminderModel, "LLM_REMINDER_MODEL")
	setString(&cfg.Google.ClientID, "GOOGLE_CLIENT_ID")
	setString(&cfg.Google.ClientSecret, "GOOGLE_CLIENT_SECRET")
	setString(&cfg.DefaultTimezone, "DEFAULT_TIMEZONE")

	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
