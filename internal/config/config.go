package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port           string
	MongoDBURI     string
	JWTSecret      string
	RedisAddr      string
	AllowedOrigins string
	Environment    string
	LogLevel       string

	AuthRateLimit    RateLimitConfig
	BookingRateLimit RateLimitConfig
}

// RateLimitConfig describes one token bucket: capacity, refill rate and how
// long idle buckets live in Redis.
type RateLimitConfig struct {
	Enabled        bool
	Prefix         string
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:           getEnvWithDefault("PORT", "8080"),
		MongoDBURI:     os.Getenv("MONGODB_URI"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		AllowedOrigins: getEnvWithDefault("ALLOWED_ORIGINS", "http://localhost:3000"),
		Environment:    getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:       getEnvWithDefault("LOG_LEVEL", "info"),
	}

	rateLimitEnabled := getEnvBool("RATE_LIMIT_ENABLED", false)
	cfg.AuthRateLimit = RateLimitConfig{
		Enabled:        rateLimitEnabled,
		Prefix:         "rl:auth",
		Capacity:       getEnvInt("AUTH_RATE_LIMIT_MAX", 5),
		RefillTokens:   getEnvInt("AUTH_RATE_LIMIT_MAX", 5),
		RefillInterval: getEnvDuration("AUTH_RATE_LIMIT_WINDOW", 15*time.Minute),
		TTL:            time.Hour,
	}
	cfg.BookingRateLimit = RateLimitConfig{
		Enabled:        rateLimitEnabled,
		Prefix:         "rl:booking",
		Capacity:       getEnvInt("BOOKING_RATE_LIMIT_MAX", 20),
		RefillTokens:   getEnvInt("BOOKING_RATE_LIMIT_MAX", 20),
		RefillInterval: getEnvDuration("BOOKING_RATE_LIMIT_WINDOW", 15*time.Minute),
		TTL:            time.Hour,
	}

	// Validate required fields
	if cfg.MongoDBURI == "" {
		return nil, fmt.Errorf("MONGODB_URI is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if rateLimitEnabled && cfg.RedisAddr == "" {
		return nil, fmt.Errorf("REDIS_ADDR is required when rate limiting is enabled")
	}

	return cfg, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
