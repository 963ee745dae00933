package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port     string
	DBConn   string
	LogLevel string

	// JWTSecret signs session and verification tokens. Mandatory: startup
	// fails without it, there is no built-in default.
	JWTSecret string

	// PublicURL is the externally reachable base URL, used in verification
	// links and feed item links.
	PublicURL  string
	CORSOrigin string
	UploadDir  string

	// SMTP settings for the verification mailer. Email verification is
	// active only when host, sender and PublicURL are all set.
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string

	// GoogleClientID enables Google login when set.
	GoogleClientID string

	// UnverifiedTTL is how long an unverified account survives before the
	// janitor deletes it.
	UnverifiedTTL time.Duration
}

// NewConfig loads configuration from environment variables. A .env file in
// the working directory is loaded first when present.
func NewConfig() (*Config, error) {
	if _, err := os.Stat(".env"); !os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	cfg := &Config{
		Port:           getEnv("PORT", "4000"),
		DBConn:         getEnv("DB_CONN", ""),
		LogLevel:       getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		PublicURL:      getEnv("PUBLIC_URL", ""),
		CORSOrigin:     getEnv("CORS_ORIGIN", ""),
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		SMTPHost:       getEnv("SMTP_HOST", ""),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SenderEmail:    getEnv("SENDER_EMAIL", ""),
		GoogleClientID: getEnv("GOOGLE_CLIENT_ID", ""),
	}

	ttl, err := time.ParseDuration(getEnv("UNVERIFIED_TTL", "168h"))
	if err != nil {
		return nil, fmt.Errorf("invalid UNVERIFIED_TTL: %w", err)
	}
	cfg.UnverifiedTTL = ttl

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

// EmailVerificationEnabled reports whether registration should send
// verification emails.
func (c *Config) EmailVerificationEnabled() bool {
	return c.SMTPHost != "" && c.SenderEmail != "" && c.PublicURL != ""
}

// GoogleLoginEnabled reports whether the /google-login route is active.
func (c *Config) GoogleLoginEnabled() bool {
	return c.GoogleClientID != ""
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
