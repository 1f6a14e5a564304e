package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultJWTSecret is only acceptable outside production.
const DefaultJWTSecret = "change-me"

// Config holds application level configuration loaded from environment variables.
type Config struct {
	AppEnv         string
	ServerPort     string
	DatabaseURL    string
	RedisAddr      string
	RedisDB        int
	RedisPass      string
	JWTSecret      string
	AccessTokenTTL time.Duration
	LogLevel       string
	SwaggerHost    string
	ResetDB        bool
}

// Load builds Config from environment with sensible defaults.
// A .env file in the working directory is honoured when present; real
// environment variables always win over it.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		DatabaseURL:    getEnv("DATABASE_URL", "sqlite:///tmp/notes.db"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		RedisPass:      os.Getenv("REDIS_PASSWORD"),
		JWTSecret:      getEnv("JWT_SECRET", DefaultJWTSecret),
		AccessTokenTTL: getEnvDuration("JWT_ACCESS_TTL", time.Hour),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		SwaggerHost:    os.Getenv("SWAGGER_HOST"),
		ResetDB:        getEnvBool("RESET_DB", false),
	}
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Validate rejects configurations that must never reach production.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.AccessTokenTTL <= 0 {
		return errors.New("JWT_ACCESS_TTL must be positive")
	}
	if c.IsProduction() && (c.JWTSecret == "" || c.JWTSecret == DefaultJWTSecret) {
		return errors.New("JWT_SECRET must be set in production")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
