package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the storefront process configuration.
type Config struct {
	ServiceName string
	Environment string
	LogLevel    string
	HTTPPort    string

	GatewayBaseURL string
	GatewayTimeout time.Duration

	RedisAddr     string // empty disables Redis; client state stays in memory
	RedisPassword string
	RedisDB       int

	KafkaBrokers []string // empty disables event publishing

	PollInterval        time.Duration
	MaxPollAttempts     int
	PaymentSuccessDelay time.Duration
}

// Load reads the configuration from the environment, with an optional .env
// file for local development.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServiceName: getEnv("OTEL_SERVICE_NAME", "storefront"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		HTTPPort:    getEnv("HTTP_PORT", "8084"),

		GatewayBaseURL: getEnv("API_GATEWAY_URL", "http://localhost:8000"),
		GatewayTimeout: getDuration("API_GATEWAY_TIMEOUT", 10*time.Second),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getInt("REDIS_DB", 0),

		KafkaBrokers: getList("KAFKA_BROKERS"),

		PollInterval:        getDuration("PAYMENT_POLL_INTERVAL", 3*time.Second),
		MaxPollAttempts:     getInt("PAYMENT_POLL_MAX_ATTEMPTS", 20),
		PaymentSuccessDelay: getDuration("PAYMENT_SUCCESS_DELAY", 2*time.Second),
	}
}

// IsDevelopment reports whether the process runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if raw := os.Getenv(key); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil {
			return value
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if raw := os.Getenv(key); raw != "" {
		if value, err := time.ParseDuration(raw); err == nil {
			return value
		}
	}
	return defaultValue
}

func getList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	list := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	return list
}
