package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	SlackBotToken       string
	SlackAppToken       string
	FreeTalkChannel     string // display name of the free-talk channel
	AttendanceChannel   string // display name of the attendance-report channel
	AttendanceChannelID string // channel ID for the reminder job; empty disables it
	CronSpecReminder    string
	LogLevel            string
	Environment         string
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}

	cfg.SlackBotToken = os.Getenv("SLACK_BOT_TOKEN")
	if cfg.SlackBotToken == "" {
		return nil, fmt.Errorf("SLACK_BOT_TOKEN is not set")
	}

	cfg.SlackAppToken = os.Getenv("SLACK_APP_TOKEN")
	if cfg.SlackAppToken == "" {
		return nil, fmt.Errorf("SLACK_APP_TOKEN is not set")
	}
	if !strings.HasPrefix(cfg.SlackAppToken, "xapp-") {
		return nil, fmt.Errorf("SLACK_APP_TOKEN must be an app-level token (xapp-...)")
	}

	cfg.FreeTalkChannel = os.Getenv("FREE_TALK_CHANNEL")
	if cfg.FreeTalkChannel == "" {
		cfg.FreeTalkChannel = "フリートーク"
	}

	cfg.AttendanceChannel = os.Getenv("ATTENDANCE_CHANNEL")
	if cfg.AttendanceChannel == "" {
		cfg.AttendanceChannel = "勤怠連絡"
	}

	// Optional: the reminder job needs a channel ID to post to, since posting
	// (unlike routing) cannot go through a display-name lookup.
	cfg.AttendanceChannelID = os.Getenv("ATTENDANCE_CHANNEL_ID")

	cfg.CronSpecReminder = os.Getenv("CRON_SPEC_REMINDER")
	if cfg.CronSpecReminder == "" {
		cfg.CronSpecReminder = "0 9 * * 1-5" // Default: 9 AM on weekdays
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info" // Default log level
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	return cfg, nil
}
