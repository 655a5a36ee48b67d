package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ClientConfig configures the terminal client and its reminder scan.
type ClientConfig struct {
	APIURL        string
	HTTPTimeout   time.Duration
	ScanInterval  time.Duration
	ReminderLead  time.Duration
	ReminderGrace time.Duration
	LogLevel      string
	Quiet         bool

	// Reminders are also sent to Telegram when both are set.
	TelegramBotToken string
	TelegramChatID   int64
}

// LoadClient reads the client configuration. Nothing is required.
func LoadClient() *ClientConfig {
	_ = godotenv.Load()

	apiURL := strings.TrimRight(os.Getenv("TODO_API_URL"), "/")
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "warn"
	}

	var chatID int64
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			chatID = n
		}
	}

	return &ClientConfig{
		APIURL:        apiURL,
		HTTPTimeout:   envSeconds("HTTP_TIMEOUT_SECONDS", 10*time.Second),
		ScanInterval:  envSeconds("REMINDER_INTERVAL_SECONDS", time.Minute),
		ReminderLead:  envSeconds("REMINDER_LEAD_SECONDS", 0),
		ReminderGrace: envSeconds("REMINDER_GRACE_SECONDS", time.Minute),
		LogLevel:      logLevel,

		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:   chatID,
	}
}
