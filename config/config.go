package config

import (
	"os"
	"time"
)

type Config struct {
	DatabaseURL   string
	JWTSecret     string
	JWTExpiration time.Duration
	ServerPort    string

	// SMTP settings for the notification dispatcher.
	SMTPAddr string
	SMTPFrom string
	// PayrollEmail is the service-wide default payroll contact, used when
	// neither the submission nor the tenant carries an address.
	PayrollEmail string
}

func Load() *Config {
	return &Config{
		DatabaseURL:   getEnv("DATABASE_URL", "postgresql://postgres@localhost:5432/worklog"),
		JWTSecret:     getEnv("JWT_SECRET", "your-super-secret-key-change-in-production"),
		JWTExpiration: 24 * time.Hour,
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		SMTPAddr:      getEnv("SMTP_ADDR", "localhost:25"),
		SMTPFrom:      getEnv("SMTP_FROM", "noreply@worklog.local"),
		PayrollEmail:  getEnv("PAYROLL_EMAIL", "payroll@worklog.local"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
