package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Host               string
	Port               string
	APIKey             string
	BaseURL            string
	PrimaryModel       string
	FallbackModel      string
	MaxTokens          int
	Temperature        float64
	RequestTimeout     time.Duration
	ModelCallTimeout   time.Duration
	StreamTimeout      time.Duration
	MaxRequestBodySize int64
	LogDir             string
	LogLevel           string
	GroupWorkers       int
}

func (c *Config) ServerAddress() string {
	// Trim any whitespace from host and port
	host := strings.TrimSpace(c.Host)
	port := strings.TrimSpace(c.Port)
	return net.JoinHostPort(host, port)
}

func LoadFromEnv() (*Config, error) {
	// A missing .env file is fine; env vars may come from the environment itself
	_ = godotenv.Load()

	cfg := &Config{
		Host:               getEnvOrDefault("HOST", "0.0.0.0"),
		Port:               getEnvOrDefault("PORT", "3000"),
		APIKey:             os.Getenv("CLAUDE_API_KEY"),
		BaseURL:            getEnvOrDefault("CLAUDE_BASE_URL", "https://api.anthropic.com"),
		PrimaryModel:       getEnvOrDefault("PRIMARY_MODEL", "claude-sonnet-4-20250514"),
		FallbackModel:      getEnvOrDefault("FALLBACK_MODEL", "claude-3-5-sonnet-20241022"),
		MaxTokens:          int(parseIntOrDefault("MAX_TOKENS", 4000)),
		Temperature:        parseFloatOrDefault("TEMPERATURE", 0.3),
		RequestTimeout:     parseDurationOrDefault("REQUEST_TIMEOUT", 30*time.Second),
		ModelCallTimeout:   parseDurationOrDefault("MODEL_CALL_TIMEOUT", 120*time.Second),
		StreamTimeout:      parseDurationOrDefault("STREAM_TIMEOUT", 10*time.Minute),
		MaxRequestBodySize: parseIntOrDefault("MAX_REQUEST_BODY_SIZE", 10*1024*1024), // 10MB
		LogDir:             getEnvOrDefault("LOG_DIR", "logs"),
		LogLevel:           getEnvOrDefault("LOG_LEVEL", "info"),
		GroupWorkers:       int(parseIntOrDefault("GROUP_WORKERS", 3)),
	}

	// Validate port is numeric and in range
	p, err := strconv.Atoi(strings.TrimSpace(cfg.Port))
	if err != nil || p < 1 || p > 65535 {
		return nil, fmt.Errorf("invalid PORT: %q", cfg.Port)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("CLAUDE_API_KEY must be set")
	}
	if cfg.MaxRequestBodySize <= 0 {
		return nil, fmt.Errorf("MAX_REQUEST_BODY_SIZE must be > 0 (got %d)", cfg.MaxRequestBodySize)
	}
	if cfg.MaxTokens <= 0 {
		return nil, fmt.Errorf("MAX_TOKENS must be > 0 (got %d)", cfg.MaxTokens)
	}
	if cfg.RequestTimeout <= 0 || cfg.ModelCallTimeout <= 0 || cfg.StreamTimeout <= 0 {
		return nil, fmt.Errorf("timeouts must be > 0 (got request=%s, model=%s, stream=%s)",
			cfg.RequestTimeout, cfg.ModelCallTimeout, cfg.StreamTimeout)
	}
	if cfg.GroupWorkers <= 0 {
		return nil, fmt.Errorf("GROUP_WORKERS must be > 0 (got %d)", cfg.GroupWorkers)
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
