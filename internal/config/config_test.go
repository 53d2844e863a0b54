package config

import (
	"strings"
	"testing"
)

func TestLoad_ReportsAllMissingCredentials(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("OPENAI_API_KEY", "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing credentials")
	}
	for _, name := range []string{"TELEGRAM_BOT_TOKEN", "OPENAI_API_KEY"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("diagnostic should list %s: %v", name, err)
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "tok")
	t.Setenv("OPENAI_API_KEY", "key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.OpenAIModel != "gpt-3.5-turbo" {
		t.Errorf("model default: %s", cfg.OpenAIModel)
	}
	if cfg.NotifyAt != "09:00" {
		t.Errorf("notify-at default: %s", cfg.NotifyAt)
	}
	if cfg.BotLanguage != "en" {
		t.Errorf("language default: %s", cfg.BotLanguage)
	}
	if cfg.Temperature != 0.7 {
		t.Errorf("temperature default: %v", cfg.Temperature)
	}
}
