package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Session    SessionConfig
	Ticketing  TicketingConfig
	Email      EmailConfig
	Newsletter NewsletterConfig
}

type ServerConfig struct {
	Port    string
	Host    string
	Env     string
	BaseURL string // public origin used for return/cancel URLs
}

type SessionConfig struct {
	Secret string
}

type TicketingConfig struct {
	APIKey   string
	SalesKey string
	BaseURL  string
	Language string
	Currency string
}

type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	FromEmail    string
	FromName     string
}

type NewsletterConfig struct {
	APIToken string
	DomainID string
	BaseURL  string
}

func Load() (*Config, error) {
	// Load .env files if they exist (try .env.local first, then .env)
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	config := &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			Host:    getEnv("HOST", "localhost"),
			Env:     getEnv("ENV", "development"),
			BaseURL: getEnv("BASE_URL", "http://localhost:8080"),
		},
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", "your-secret-key-change-in-production"),
		},
		Ticketing: TicketingConfig{
			APIKey:   getEnv("ETICKETS_API_KEY", ""),
			SalesKey: getEnv("ETICKETS_SALES_KEY", ""),
			BaseURL:  getEnv("ETICKETS_API_URL", "https://etickets.infomaniak.com/api/shop"),
			Language: getEnv("ETICKETS_LANGUAGE", "fr_FR"),
			Currency: getEnv("ETICKETS_CURRENCY", "1"), // CHF
		},
		Email: EmailConfig{
			SMTPHost:     getEnv("SMTP_HOST", "mail.infomaniak.com"),
			SMTPPort:     getEnvAsInt("SMTP_PORT", 587),
			SMTPUser:     getEnv("SMTP_USER", ""),
			SMTPPassword: getEnv("SMTP_PASSWORD", ""),
			FromEmail:    getEnv("SMTP_FROM", "info@estherhouse.ch"),
			FromName:     getEnv("SMTP_FROM_NAME", "Esther House"),
		},
		Newsletter: NewsletterConfig{
			APIToken: getEnv("NEWSLETTER_API_TOKEN", ""),
			DomainID: getEnv("NEWSLETTER_DOMAIN_ID", "29187"),
			BaseURL:  getEnv("NEWSLETTER_API_URL", "https://api.infomaniak.com"),
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
