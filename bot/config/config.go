package config

import (
	"fmt"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"pokerbot/bot/policy"
)

// Config holds all bot configuration.
type Config struct {
	BotName     string `env:"BOT_NAME" env-default:"discard-bot"`
	Seed        int64  `env:"BOT_SEED" env-default:"0" env-description:"0 picks a fresh seed per run"`
	Variant     string `env:"POLICY_VARIANT" env-default:"faithful"`
	DatabaseURL string `env:"DATABASE_URL"`
	HTTPAddr    string `env:"HTTP_ADDR" env-default:":8080"`
	LogLevel    string `env:"LOG_LEVEL" env-default:"info"`
	LogFormat   string `env:"LOG_FORMAT" env-default:"json"`
}

// Load reads .env files (if present) into the process environment and then
// the environment into a Config.
func Load(files ...string) (*Config, error) {
	_ = godotenv.Load(files...)
	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.BotName) == "" {
		return fmt.Errorf("BOT_NAME is required")
	}
	if _, err := policy.ParseVariant(c.Variant); err != nil {
		return err
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.LogFormat)
	}
	return nil
}

func (c *Config) PolicyVariant() policy.Variant {
	v, _ := policy.ParseVariant(c.Variant)
	return v
}

func (c *Config) Level() zerolog.Level {
	l, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return zerolog.InfoLevel
	}
	return l
}

// Usage renders the supported environment variables.
func Usage() string {
	s, err := cleanenv.GetDescription(&Config{}, nil)
	if err != nil {
		return ""
	}
	return s
}
