package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"DATABASE_URL", "LISTEN_ADDR", "CHECK_INTERVAL_MINUTES", "TELEGRAM_TOKEN", "TELEGRAM_CHAT_ID", "AI_PROVIDER"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.DatabaseURL != "task_reminder.db" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.ListenAddr != ":3000" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr)
	}
	if cfg.CheckInterval != time.Minute {
		t.Errorf("CheckInterval = %v", cfg.CheckInterval)
	}
	if cfg.AI.Provider != ProviderGemini {
		t.Errorf("AI.Provider = %q", cfg.AI.Provider)
	}
}

func TestLoad_TelegramRequiresChatID(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "")

	if _, err := Load(); err == nil {
		t.Error("Load() accepted a token without a chat id")
	}

	t.Setenv("TELEGRAM_CHAT_ID", "42")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.TelegramChatID != 42 {
		t.Errorf("TelegramChatID = %d", cfg.TelegramChatID)
	}
}

func TestLoad_AIProviderSelection(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "")
	t.Setenv("AI_PROVIDER", "anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "key")
	t.Setenv("ANTHROPIC_MODEL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.AI.Provider != ProviderAnthropic {
		t.Errorf("AI.Provider = %q", cfg.AI.Provider)
	}
	if cfg.AI.Model != "claude-3-haiku-20240307" {
		t.Errorf("AI.Model = %q", cfg.AI.Model)
	}
}

func TestParseMinutes(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Duration
	}{
		{"", 0},
		{"5", 5 * time.Minute},
		{"0", 0},
		{"-2", 0},
		{"abc", 0},
	}
	for _, tt := range tests {
		if got := parseMinutes(tt.raw); got != tt.want {
			t.Errorf("parseMinutes(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
