package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Report weighting. A report whose combined reason weight reaches
// FlagThreshold is flagged for immediate moderator attention.
const (
	ReportFlagThreshold = 50
)

// ReportWeights maps report reason categories to their severity weight.
var ReportWeights = map[string]int{
	"spam":           5,
	"off_topic":      5,
	"harassment":     50,
	"hate_speech":    50,
	"threats":        250,
	"self_harm_risk": 250,
}

// Config carries process-level settings, resolved from the environment
// after an optional .env file.
type Config struct {
	Port          string
	DatabaseDSN   string
	RedisAddr     string
	RedisPassword string
	JWTSecret     string

	TelegramBotToken  string
	TelegramAdminChat int64

	LocalesPath string
	DefaultLang string
}

// Load reads configuration from the environment. Missing values fall back
// to local-development defaults; the server entrypoint checks JWTSecret.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded, using environment as-is")
	}

	adminChat, _ := strconv.ParseInt(os.Getenv("TELEGRAM_ADMIN_CHAT_ID"), 10, 64)

	return &Config{
		Port:              envOr("PORT", "8080"),
		DatabaseDSN:       envOr("DATABASE_DSN", "host=localhost user=studyzen password=studyzen dbname=studyzen port=5432 sslmode=disable"),
		RedisAddr:         envOr("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		TelegramBotToken:  os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramAdminChat: adminChat,
		LocalesPath:       envOr("LOCALES_PATH", "locales"),
		DefaultLang:       envOr("DEFAULT_LANG", "en"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
