package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// AIProvider selects which LLM backend generates vocabulary entries.
type AIProvider string

const (
	ProviderGemini    AIProvider = "gemini"
	ProviderOpenAI    AIProvider = "openai"
	ProviderAnthropic AIProvider = "anthropic"
)

// AIConfig holds credentials for the selected provider.
type AIConfig struct {
	Provider AIProvider
	APIKey   string
	Model    string
}

// Config keeps runtime settings for the server.
type Config struct {
	DatabaseURL    string
	ListenAddr     string
	CheckInterval  time.Duration
	TelegramToken  string
	TelegramChatID int64
	AI             AIConfig
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		ListenAddr:    strings.TrimSpace(os.Getenv("LISTEN_ADDR")),
		CheckInterval: parseMinutes(strings.TrimSpace(os.Getenv("CHECK_INTERVAL_MINUTES"))),
		TelegramToken: strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
		AI:            loadAI(),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "task_reminder.db"
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":3000"
	}
	if cfg.CheckInterval == 0 {
		cfg.CheckInterval = time.Minute
	}

	if raw := strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID")); raw != "" {
		chatID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("TELEGRAM_CHAT_ID must be an integer: %w", err)
		}
		cfg.TelegramChatID = chatID
	}

	if cfg.TelegramToken != "" && cfg.TelegramChatID == 0 {
		return cfg, fmt.Errorf("TELEGRAM_CHAT_ID is required when TELEGRAM_TOKEN is set")
	}

	return cfg, nil
}

func loadAI() AIConfig {
	provider := AIProvider(strings.TrimSpace(os.Getenv("AI_PROVIDER")))
	if provider == "" {
		provider = ProviderGemini
	}

	switch provider {
	case ProviderOpenAI:
		return AIConfig{
			Provider: provider,
			APIKey:   os.Getenv("OPENAI_API_KEY"),
			Model:    envOr("OPENAI_MODEL", "gpt-4o-mini"),
		}
	case ProviderAnthropic:
		return AIConfig{
			Provider: provider,
			APIKey:   os.Getenv("ANTHROPIC_API_KEY"),
			Model:    envOr("ANTHROPIC_MODEL", "claude-3-haiku-20240307"),
		}
	default:
		return AIConfig{
			Provider: ProviderGemini,
			APIKey:   os.Getenv("GEMINI_API_KEY"),
			Model:    envOr("GEMINI_MODEL", "gemini-1.5-flash"),
		}
	}
}

func envOr(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func parseMinutes(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes <= 0 {
		return 0
	}
	return time.Duration(minutes) * time.Minute
}
