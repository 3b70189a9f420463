package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const devSecret = "dev-secret-change-me"

type Config struct {
	Port     string
	GinMode  string
	LogLevel string

	DBDriver string
	DBSource string

	JWTSecret string
	JWTTTL    time.Duration

	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int
	AuthRatePerMinute  int

	ShutdownTimeout time.Duration
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	ttl, err := time.ParseDuration(getEnv("JWT_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("JWT_TTL: %w", err)
	}
	rps, err := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "50"), 64)
	if err != nil {
		return nil, fmt.Errorf("RATE_LIMIT_RPS: %w", err)
	}
	burst, err := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "100"))
	if err != nil {
		return nil, fmt.Errorf("RATE_LIMIT_BURST: %w", err)
	}
	authRate, err := strconv.Atoi(getEnv("AUTH_RATE_LIMIT_PER_MINUTE", "5"))
	if err != nil {
		return nil, fmt.Errorf("AUTH_RATE_LIMIT_PER_MINUTE: %w", err)
	}
	shutdown, err := time.ParseDuration(getEnv("SHUTDOWN_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
	}

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		GinMode:            getEnv("GIN_MODE", "debug"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		DBDriver:           strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBSource:           getEnv("DB_SOURCE", "restaurant.db"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		JWTTTL:             ttl,
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		RateLimitRPS:       rps,
		RateLimitBurst:     burst,
		AuthRatePerMinute:  authRate,
		ShutdownTimeout:    shutdown,
	}
	if cfg.JWTSecret == "" && cfg.GinMode != "release" {
		cfg.JWTSecret = devSecret
	}
	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case "sqlite", "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.DBSource == "" {
		return errors.New("DB_SOURCE is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required in release mode")
	}
	if c.JWTTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 || c.AuthRatePerMinute <= 0 {
		return errors.New("rate limits must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
