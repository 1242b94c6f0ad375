package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	ServerPort string
	BotToken   string
	APIBaseURL string
	Database   DatabaseConfig
	GigaChat   GigaChatConfig
	Yandex     YandexConfig

	// HTTPTimeout bounds outbound provider calls, TokenTimeout bounds
	// token-exchange requests.
	HTTPTimeout  time.Duration
	TokenTimeout time.Duration
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// GigaChatConfig holds GigaChat API credentials
type GigaChatConfig struct {
	AuthKey string
	Scope   string
}

// YandexConfig holds Yandex Cloud credentials
type YandexConfig struct {
	OAuthToken string
	FolderID   string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		BotToken:   os.Getenv("BOT_TOKEN"),
		APIBaseURL: getEnv("API_BASE_URL", "http://localhost:8080"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "vocabler"),
			User:     getEnv("DB_USER", "vocabler"),
			Password: os.Getenv("DB_PASSWORD"),
		},
		GigaChat: GigaChatConfig{
			AuthKey: os.Getenv("GIGACHAT_AUTH_KEY"),
			Scope:   getEnv("GIGACHAT_SCOPE", "GIGACHAT_API_PERS"),
		},
		Yandex: YandexConfig{
			OAuthToken: os.Getenv("YANDEX_OAUTH_TOKEN"),
			FolderID:   os.Getenv("YANDEX_FOLDER_ID"),
		},
		HTTPTimeout:  getDurationEnv("HTTP_TIMEOUT_SECONDS", 30*time.Second),
		TokenTimeout: getDurationEnv("TOKEN_TIMEOUT_SECONDS", 10*time.Second),
	}

	// Validate required fields
	if cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	if cfg.GigaChat.AuthKey == "" {
		return nil, fmt.Errorf("GIGACHAT_AUTH_KEY is required")
	}
	if cfg.Yandex.OAuthToken == "" {
		return nil, fmt.Errorf("YANDEX_OAUTH_TOKEN is required")
	}
	if cfg.Yandex.FolderID == "" {
		return nil, fmt.Errorf("YANDEX_FOLDER_ID is required")
	}

	return cfg, nil
}

// LoadBot reads the bot-side configuration; it does not require
// database or provider credentials.
func LoadBot() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		BotToken:   os.Getenv("BOT_TOKEN"),
		APIBaseURL: getEnv("API_BASE_URL", "http://localhost:8080"),
	}

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}

	return cfg, nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}
