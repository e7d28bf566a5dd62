package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all runtime settings, built from environment variables.
// Timeouts live here rather than as ambient globals so tests can vary
// them deterministically.
type Config struct {
	Host           string
	Port           string
	DatabaseURL    string
	AllowedOrigins string

	// Scraping
	StaticTimeout time.Duration // static HTTP fetch timeout
	BodyWait      time.Duration // browser wait for the body element
	SettleDelay   time.Duration // extra delay for client-side rendering
	CheckInterval time.Duration // how often the scheduler re-checks prices

	// Email
	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string

	// API
	RateLimit float64 // requests per second per client
}

// Load builds the configuration from the environment.
func Load() *Config {
	return &Config{
		Host:           getEnv("HOST", "0.0.0.0"),
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		StaticTimeout: getEnvDuration("STATIC_FETCH_TIMEOUT", 10*time.Second),
		BodyWait:      getEnvDuration("BROWSER_BODY_WAIT", 15*time.Second),
		SettleDelay:   getEnvDuration("BROWSER_SETTLE_DELAY", 3*time.Second),
		CheckInterval: getEnvDuration("CHECK_INTERVAL", time.Hour),

		SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUser:     os.Getenv("GMAIL_USER"),
		SMTPPassword: os.Getenv("GMAIL_PASSWORD"),

		RateLimit: getEnvFloat("API_RATE_LIMIT", 5),
	}
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
