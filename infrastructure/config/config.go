package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string

	JWTSecret       string
	SessionTokenTTL time.Duration
	ResetTicketTTL  time.Duration

	ServerHost  string
	ServerPort  string
	Environment string
	FrontendURL string

	CORSEnabled          bool
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool

	RevocationBackend string // memory | redis
	RevocationPrune   time.Duration
	RedisURL          string

	RateLimitEnabled bool
	RateLimitLogin   int
	RateLimitWindow  time.Duration

	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	MailFrom string

	PaymentSecretKey     string
	PaymentWebhookSecret string
	PaymentBaseURL       string

	BlobBackend string // local | s3
	UploadDir   string
	S3Region    string
	S3Bucket    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string

	LogLevel  string
	LogFormat string

	MetricsEnabled bool
}

var (
	ErrMissingDatabaseURL       = errors.New("DATABASE_URL is required")
	ErrMissingJWTSecret         = errors.New("JWT_SECRET is required")
	ErrInvalidTokenTTL          = errors.New("invalid token TTL format")
	ErrInvalidRevocationBackend = errors.New("REVOCATION_BACKEND must be memory or redis")
	ErrInvalidBlobBackend       = errors.New("BLOB_BACKEND must be local or s3")
)

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		ServerHost:  getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
		ServerPort:  getEnvOrDefault("SERVER_PORT", "3001"),
		Environment: getEnvOrDefault("ENV", "development"),
		FrontendURL: getEnvOrDefault("FRONTEND_URL", "http://localhost:3000"),

		CORSEnabled:          getEnvOrDefaultBool("CORS_ENABLED", true),
		CORSAllowCredentials: getEnvOrDefaultBool("CORS_ALLOW_CREDENTIALS", true),
		CORSAllowedOrigins:   splitAndTrim(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "")),

		RevocationBackend: getEnvOrDefault("REVOCATION_BACKEND", "memory"),
		RevocationPrune:   getEnvOrDefaultDuration("REVOCATION_PRUNE_INTERVAL", 5*time.Minute),
		RedisURL:          getEnvOrDefault("REDIS_URL", "redis://localhost:6379/0"),

		RateLimitEnabled: getEnvOrDefaultBool("RATE_LIMIT_ENABLED", false),
		RateLimitLogin:   getEnvOrDefaultInt("RATE_LIMIT_LOGIN_ATTEMPTS", 10),
		RateLimitWindow:  getEnvOrDefaultDuration("RATE_LIMIT_WINDOW", 15*time.Minute),

		SMTPHost: os.Getenv("SMTP_HOST"),
		SMTPPort: getEnvOrDefault("SMTP_PORT", "587"),
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASS"),
		MailFrom: getEnvOrDefault("MAIL_FROM", "no-reply@shopcore.local"),

		PaymentSecretKey:     os.Getenv("PAYMENT_SECRET_KEY"),
		PaymentWebhookSecret: os.Getenv("PAYMENT_WEBHOOK_SECRET"),
		PaymentBaseURL:       getEnvOrDefault("PAYMENT_BASE_URL", "https://api.stripe.com"),

		BlobBackend: getEnvOrDefault("BLOB_BACKEND", "local"),
		UploadDir:   getEnvOrDefault("UPLOAD_DIR", "uploads"),
		S3Region:    getEnvOrDefault("S3_REGION", "us-east-1"),
		S3Bucket:    os.Getenv("S3_BUCKET"),
		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "json"),

		MetricsEnabled: getEnvOrDefaultBool("METRICS_ENABLED", true),
	}

	if cfg.DatabaseURL == "" {
		return nil, ErrMissingDatabaseURL
	}
	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}

	sessionTTL, err := parseSecondsTTL(getEnvOrDefault("SESSION_TOKEN_TTL", "3600"))
	if err != nil {
		return nil, ErrInvalidTokenTTL
	}
	cfg.SessionTokenTTL = sessionTTL

	resetTTL, err := parseSecondsTTL(getEnvOrDefault("RESET_TICKET_TTL", "3600"))
	if err != nil {
		return nil, ErrInvalidTokenTTL
	}
	cfg.ResetTicketTTL = resetTTL

	if cfg.RevocationBackend != "memory" && cfg.RevocationBackend != "redis" {
		return nil, ErrInvalidRevocationBackend
	}
	if cfg.BlobBackend != "local" && cfg.BlobBackend != "s3" {
		return nil, ErrInvalidBlobBackend
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvOrDefaultBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}

func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}

func getEnvOrDefaultDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		// numeric values are seconds, otherwise Go duration syntax
		if n, err := strconv.Atoi(value); err == nil {
			return time.Duration(n) * time.Second
		}
		d, err := time.ParseDuration(value)
		if err != nil {
			return defaultValue
		}
		return d
	}
	return defaultValue
}

func parseSecondsTTL(value string) (time.Duration, error) {
	seconds, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return time.Duration(seconds) * time.Second, nil
}

func splitAndTrim(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			res = append(res, trimmed)
		}
	}
	return res
}
