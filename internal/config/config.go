package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	BotToken     string  `envconfig:"TELEGRAM_BOT_TOKEN"`
	OpenAIAPIKey string  `envconfig:"OPENAI_API_KEY"`
	OpenAIModel  string  `envconfig:"OPENAI_MODEL" default:"gpt-3.5-turbo"`
	Temperature  float64 `envconfig:"TEMPERATURE" default:"0.7"`
	ImageSize    string  `envconfig:"IMAGE_SIZE" default:"512x512"`
	SystemPrompt string  `envconfig:"SYSTEM_PROMPT"` // overrides the localized default
	BotLanguage  string  `envconfig:"BOT_LANGUAGE" default:"en"`
	DBPath       string  `envconfig:"DB_PATH" default:"./data/birthdays.db"`
	NotifyAt     string  `envconfig:"NOTIFY_AT" default:"09:00"` // HH:MM local time
	LogLevel     string  `envconfig:"LOG_LEVEL" default:"info"`  // debug|info|warn|error
	HTTPAddr     string  `envconfig:"HTTP_ADDR" default:":8080"` // healthz
}

// Load reads environment variables into Config and reports every missing
// required credential in a single diagnostic.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}

	var missing []string
	if cfg.BotToken == "" {
		missing = append(missing, "TELEGRAM_BOT_TOKEN")
	}
	if cfg.OpenAIAPIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if len(missing) > 0 {
		return cfg, fmt.Errorf("missing required environment values: %s", strings.Join(missing, ", "))
	}
	return cfg, nil
}
