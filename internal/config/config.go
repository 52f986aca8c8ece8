// Package config builds the process configuration once at startup.
// Components receive it explicitly; there is no ambient global lookup.
package config

import (
	"os"
	"strconv"
)

// Database holds connection settings for the PostgreSQL store
type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// Config is the full application configuration
type Config struct {
	ProjectName string
	Port        string
	GinMode     string

	DB Database

	// Security
	SecretKey        string
	TokenExpiryHours int

	// Pagination
	DefaultPageSize int
	MaxPageSize     int

	// Search
	MaxSearchResults     int
	SearchMinQueryLength int

	// Trending
	TrendingArticlesLimit int

	// Chat bot
	TelegramBotToken string
}

// Load reads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		ProjectName: getEnv("PROJECT_NAME", "NewsGuard API"),
		Port:        getEnv("PORT", "8080"),
		GinMode:     getEnv("GIN_MODE", ""),
		DB: Database{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "newsguard"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		SecretKey:             getEnv("SECRET_KEY", "your-secret-key-change-this-in-production"),
		TokenExpiryHours:      getEnvInt("TOKEN_EXPIRY_HOURS", 24),
		DefaultPageSize:       getEnvInt("DEFAULT_PAGE_SIZE", 10),
		MaxPageSize:           getEnvInt("MAX_PAGE_SIZE", 100),
		MaxSearchResults:      getEnvInt("MAX_SEARCH_RESULTS", 100),
		SearchMinQueryLength:  getEnvInt("SEARCH_MIN_QUERY_LENGTH", 2),
		TrendingArticlesLimit: getEnvInt("TRENDING_ARTICLES_LIMIT", 10),
		TelegramBotToken:      getEnv("TELEGRAM_BOT_TOKEN", ""),
	}
}

// getEnv returns environment variable value or default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable value or default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
