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
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	OpenAI   OpenAIConfig
	Quota    QuotaConfig
	Premium  PremiumFeatures
	Session  SessionConfig
	Logging  LoggingConfig
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	FrontendURL     string
	Environment     string
	MaxAudioBytes   int64
}

// DatabaseConfig contains database configuration
type DatabaseConfig struct {
	Path string
}

// AuthConfig contains authentication configuration
type AuthConfig struct {
	JWTSecret          string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
	BCryptCost         int
}

// OpenAIConfig contains the speech provider configuration
type OpenAIConfig struct {
	APIKey             string
	TranscriptionModel string
	CompletionModel    string
	SpeechModel        string
	RequestTimeout     time.Duration
}

// QuotaConfig contains per-tier token limits
type QuotaConfig struct {
	FreeDaily      int64
	FreeMonthly    int64
	PremiumDaily   int64
	PremiumMonthly int64
}

// PremiumFeatures gates tier-dependent pipeline behavior
type PremiumFeatures struct {
	AutoLanguageDetection bool
	BackTranslation       bool
}

// SessionConfig contains voice session settings
type SessionConfig struct {
	TTL           time.Duration
	SweepSchedule string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string // json or console
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore errors as it's optional)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:5173"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			MaxAudioBytes:   getEnvAsInt64("MAX_AUDIO_BYTES", 50<<20),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./voxlate.db"),
		},
		Auth: AuthConfig{
			JWTSecret:          getEnv("JWT_SECRET", ""),
			AccessTokenExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshTokenExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
			BCryptCost:         getEnvAsInt("BCRYPT_COST", 12),
		},
		OpenAI: OpenAIConfig{
			APIKey:             getEnv("OPENAI_API_KEY", ""),
			TranscriptionModel: getEnv("OPENAI_TRANSCRIPTION_MODEL", "whisper-1"),
			CompletionModel:    getEnv("OPENAI_COMPLETION_MODEL", "gpt-3.5-turbo"),
			SpeechModel:        getEnv("OPENAI_SPEECH_MODEL", "tts-1"),
			RequestTimeout:     getEnvAsDuration("OPENAI_REQUEST_TIMEOUT", 60*time.Second),
		},
		Quota: QuotaConfig{
			FreeDaily:      getEnvAsInt64("FREE_TIER_DAILY_TOKENS", 10000),
			FreeMonthly:    getEnvAsInt64("FREE_TIER_MONTHLY_TOKENS", 100000),
			PremiumDaily:   getEnvAsInt64("PREMIUM_TIER_DAILY_TOKENS", 100000),
			PremiumMonthly: getEnvAsInt64("PREMIUM_TIER_MONTHLY_TOKENS", 1000000),
		},
		Premium: PremiumFeatures{
			AutoLanguageDetection: getEnvAsBool("PREMIUM_AUTO_DETECTION", true),
			BackTranslation:       getEnvAsBool("PREMIUM_BACK_TRANSLATION", true),
		},
		Session: SessionConfig{
			TTL:           getEnvAsDuration("VOICE_SESSION_TTL", 5*time.Minute),
			SweepSchedule: getEnv("VOICE_SESSION_SWEEP_SCHEDULE", "*/10 * * * *"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be set")
	}

	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY must be set")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Quota.FreeDaily <= 0 || c.Quota.FreeMonthly <= 0 ||
		c.Quota.PremiumDaily <= 0 || c.Quota.PremiumMonthly <= 0 {
		return fmt.Errorf("token limits must be positive")
	}

	if c.Session.TTL <= 0 {
		return fmt.Errorf("voice session TTL must be positive")
	}

	return nil
}

// Limits returns the daily and monthly token ceilings for a tier.
func (q QuotaConfig) Limits(premium bool) (daily, monthly int64) {
	if premium {
		return q.PremiumDaily, q.PremiumMonthly
	}
	return q.FreeDaily, q.FreeMonthly
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
