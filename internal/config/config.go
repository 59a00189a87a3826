// Package config loads process configuration from the environment and holds
// the tuning constants shared by the report pipeline.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// insecureSessionSecret is only acceptable for local development.
const insecureSessionSecret = "dev-insecure-session-secret-change-me"

type Config struct {
	Env      string
	HTTPAddr string

	DatabaseURL string

	RedisAddr     string
	RedisPassword string

	// GoogleCredentials is either a JSON document or a path to one.
	GoogleCredentials string
	EvidenceBucket    string
	EvidenceCDNDomain string
	SpreadsheetID     string
	SheetRange        string

	SessionSecret         string
	InsecureSessionSecret bool

	ArtifactDir string

	TelegramBotToken string
	TelegramChatID   int64

	SubmitRatePerMinute int
	SubmitRateBurst     int
}

// LoadDotEnv reads a .env file when present. A missing file is not an error.
func LoadDotEnv(paths ...string) error {
	err := godotenv.Load(paths...)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Load builds the configuration from the environment. Every missing required
// variable is reported in a single error.
func Load() (*Config, error) {
	cfg := &Config{
		Env:                 envOr("APP_ENV", "development"),
		HTTPAddr:            envOr("HTTP_ADDR", ":8080"),
		DatabaseURL:         strings.TrimSpace(os.Getenv("DATABASE_URL")),
		RedisAddr:           envOr("REDIS_ADDR", "localhost:6379"),
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),
		GoogleCredentials:   googleCredentials(),
		EvidenceBucket:      strings.TrimSpace(os.Getenv("EVIDENCE_BUCKET")),
		EvidenceCDNDomain:   strings.TrimSpace(os.Getenv("EVIDENCE_CDN_DOMAIN")),
		SpreadsheetID:       strings.TrimSpace(os.Getenv("SPREADSHEET_ID")),
		SheetRange:          envOr("SHEET_RANGE", "Sheet1!A1"),
		SessionSecret:       strings.TrimSpace(os.Getenv("SESSION_SECRET")),
		ArtifactDir:         envOr("ARTIFACT_DIR", "./artifacts"),
		TelegramBotToken:    strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")),
		SubmitRatePerMinute: envInt("SUBMIT_RATE_PER_MIN", 30),
		SubmitRateBurst:     envInt("SUBMIT_RATE_BURST", 10),
	}

	var missing []string
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if cfg.GoogleCredentials == "" {
		missing = append(missing, "GOOGLE_APPLICATION_CREDENTIALS_JSON or GOOGLE_APPLICATION_CREDENTIALS")
	}
	if cfg.EvidenceBucket == "" {
		missing = append(missing, "EVIDENCE_BUCKET")
	}
	if cfg.SpreadsheetID == "" {
		missing = append(missing, "SPREADSHEET_ID")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	if cfg.SessionSecret == "" {
		cfg.SessionSecret = insecureSessionSecret
		cfg.InsecureSessionSecret = true
	}

	if raw := strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID")); raw != "" {
		chatID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID=%q: %w", raw, err)
		}
		cfg.TelegramChatID = chatID
	}

	return cfg, nil
}

// TelegramEnabled reports whether the desk notification hook can run.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramBotToken != "" && c.TelegramChatID != 0
}

func (c *Config) IsProduction() bool {
	switch strings.ToLower(c.Env) {
	case "prod", "production":
		return true
	default:
		return false
	}
}

func googleCredentials() string {
	if v := strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_JSON")); v != "" {
		return v
	}
	return strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
}

func envOr(name, def string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return def
}

func envInt(name string, def int) int {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}
