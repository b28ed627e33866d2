package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr              string
	Environment       string
	DataDir           string
	PaystubDir        string
	PolicyFile        string
	BucketMode        string
	DataEncryptionKey string
	MaxBodyBytes      int64
	LogLevel          string
	MetricsEnabled    bool
	ShutdownTimeout   time.Duration
}

func Load() Config {
	dataDir := getEnv("DATA_DIR", "data")
	return Config{
		Addr:              getEnv("APP_ADDR", "127.0.0.1:8080"),
		Environment:       getEnv("APP_ENV", "development"),
		DataDir:           dataDir,
		PaystubDir:        getEnv("PAYSTUB_DIR", dataDir+"/paystubs"),
		PolicyFile:        getEnv("PAYROLL_POLICY_FILE", ""),
		BucketMode:        getEnv("PAYROLL_BUCKET_MODE", ""),
		DataEncryptionKey: getEnv("DATA_ENCRYPTION_KEY", ""),
		MaxBodyBytes:      int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		MetricsEnabled:    getEnvBool("METRICS_ENABLED", true),
		ShutdownTimeout:   getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

// SlogLevel maps LOG_LEVEL onto a slog level; unknown values mean info.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("DATA_DIR is required")
	}
	if strings.TrimSpace(c.PaystubDir) == "" {
		return fmt.Errorf("PAYSTUB_DIR is required")
	}
	switch c.BucketMode {
	case "", "category", "allowlist":
	default:
		return fmt.Errorf("PAYROLL_BUCKET_MODE must be category or allowlist")
	}
	if c.Environment == "production" && strings.TrimSpace(c.DataEncryptionKey) == "" {
		return fmt.Errorf("DATA_ENCRYPTION_KEY must be set in production for encryption at rest")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}
