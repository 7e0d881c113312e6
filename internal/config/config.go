package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	ServerPort  string
	DatabaseURL string
	LogLevel    string

	// Optional external text provider.
	AIEndpoint    string
	AIEnabled     bool
	AITimeout     time.Duration
	AIMinReplyLen int
	// Messages at least this long are considered worth an external call.
	AIMessageLenThreshold int

	// Conversation limits.
	RateLimitWindow  time.Duration
	RateLimitMax     int
	HistoryWindow    int
	ContextWindow    int
	MaxResponseChars int

	// Heuristic thresholds kept configurable rather than hard-coded.
	BehindScheduleRatio float64
	AlertScanInterval   time.Duration
}

func Load() *Config {
	return &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", "./finance-clarity.db"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		AIEndpoint:            getEnv("AI_ENDPOINT", ""),
		AIEnabled:             getEnvBool("AI_ENABLED", false),
		AITimeout:             getEnvDuration("AI_TIMEOUT", 10*time.Second),
		AIMinReplyLen:         getEnvInt("AI_MIN_REPLY_LEN", 20),
		AIMessageLenThreshold: getEnvInt("AI_MESSAGE_LEN_THRESHOLD", 60),

		RateLimitWindow:  getEnvDuration("RATE_LIMIT_WINDOW", 60*time.Second),
		RateLimitMax:     getEnvInt("RATE_LIMIT_MAX", 10),
		HistoryWindow:    getEnvInt("HISTORY_WINDOW", 20),
		ContextWindow:    getEnvInt("CONTEXT_WINDOW", 5),
		MaxResponseChars: getEnvInt("MAX_RESPONSE_CHARS", 1500),

		BehindScheduleRatio: getEnvFloat("BEHIND_SCHEDULE_RATIO", 0.8),
		AlertScanInterval:   getEnvDuration("ALERT_SCAN_INTERVAL", 5*time.Minute),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
