package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort     string
	AllowedOrigin  string
	LogLevel       string
	DatabaseType   string
	DatabasePath   string
	DatabaseURL    string
	MigrationsPath string

	// Token signing. Access and refresh tokens use separate secrets so a
	// leaked access secret cannot mint refresh tokens.
	AccessSecret    string
	RefreshSecret   string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	BcryptCost int

	// Login/register rate limiting
	RateLimitAttempts int
	RateLimitWindow   time.Duration

	// OAuth sign-in
	GoogleClientID       string
	GoogleClientSecret   string
	FacebookClientID     string
	FacebookClientSecret string
	OAuthRedirectBaseURL string

	// Welcome email via SES; disabled when FromEmail is empty
	AWSRegion    string
	SESFromEmail string
	SESFromName  string
}

// Load reads configuration from the environment, with an optional .env file
// for local development. The JWT secrets are the only required settings.
func Load() (*Config, error) {
	// Missing .env is fine in production where real env vars are set
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:     getEnv("PORT", "8080"),
		AllowedOrigin:  getEnv("ALLOWED_ORIGIN", "*"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		DatabaseType:   getEnv("DATABASE_TYPE", "sqlite"),
		DatabasePath:   getEnv("DB_PATH", "./chorepoints.db"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),

		AccessSecret:    os.Getenv("JWT_ACCESS_SECRET"),
		RefreshSecret:   os.Getenv("JWT_REFRESH_SECRET"),
		AccessTokenTTL:  getEnvDuration("JWT_ACCESS_EXPIRE_TIME", 1*time.Hour),
		RefreshTokenTTL: getEnvDuration("JWT_REFRESH_EXPIRE_TIME", 30*24*time.Hour),

		BcryptCost: getEnvInt("HASH_POWER", 10),

		RateLimitAttempts: getEnvInt("RATE_LIMIT_ATTEMPTS", 10),
		RateLimitWindow:   getEnvDuration("RATE_LIMIT_WINDOW", 1*time.Minute),

		GoogleClientID:       os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret:   os.Getenv("GOOGLE_CLIENT_SECRET"),
		FacebookClientID:     os.Getenv("FACEBOOK_CLIENT_ID"),
		FacebookClientSecret: os.Getenv("FACEBOOK_CLIENT_SECRET"),
		OAuthRedirectBaseURL: getEnv("OAUTH_REDIRECT_BASE_URL", "http://localhost:8080"),

		AWSRegion:    getEnv("AWS_REGION", "eu-west-1"),
		SESFromEmail: os.Getenv("SES_FROM_EMAIL"),
		SESFromName:  getEnv("SES_FROM_NAME", "ChorePoints"),
	}

	if cfg.AccessSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET environment variable is required")
	}
	if cfg.RefreshSecret == "" {
		return nil, fmt.Errorf("JWT_REFRESH_SECRET environment variable is required")
	}

	return cfg, nil
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvDuration reads a duration ("15m", "720h") or returns a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
