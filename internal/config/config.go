package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration (identity directory)
	Database DatabaseConfig

	// JWT configuration
	JWT JWTConfig

	// Internal API configuration (event ingress from the CRUD API)
	Internal InternalConfig

	// Rate limiting configuration
	RateLimit RateLimitConfig

	// WebSocket configuration
	WebSocket WebSocketConfig

	// Logging configuration
	Logging LoggingConfig

	// Application metadata
	App AppConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret          string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// InternalConfig holds the shared-secret auth for the internal events API
type InternalConfig struct {
	Token string
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond float64
	BurstSize         int
}

// WebSocketConfig holds WebSocket configuration
type WebSocketConfig struct {
	AllowedOrigins  []string
	ReadBufferSize  int
	WriteBufferSize int
	PingInterval    time.Duration
	PongWait        time.Duration
	MaxConnections  int
	MaxJobRooms     int
	SendBufferSize  int
	QueueSize       int
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// AppConfig holds application metadata
type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnvOrDefault("SERVER_PORT", ":8090"),
			ReadTimeout:     getDurationOrDefault("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationOrDefault("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:     getDurationOrDefault("SERVER_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getDurationOrDefault("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    getIntOrDefault("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getIntOrDefault("DB_MAX_IDLE_CONNS", 2),
			ConnMaxLifetime: getDurationOrDefault("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			ConnMaxIdleTime: getDurationOrDefault("DB_CONN_MAX_IDLE_TIME", 5*time.Minute),
		},
		JWT: JWTConfig{
			Secret:          os.Getenv("JWT_SECRET"),
			AccessTokenTTL:  getDurationOrDefault("JWT_ACCESS_TOKEN_TTL", 15*time.Minute),
			RefreshTokenTTL: getDurationOrDefault("JWT_REFRESH_TOKEN_TTL", 7*24*time.Hour),
		},
		Internal: InternalConfig{
			Token: os.Getenv("INTERNAL_API_TOKEN"),
		},
		RateLimit: RateLimitConfig{
			Enabled:           getBoolOrDefault("RATE_LIMIT_ENABLED", true),
			RequestsPerSecond: getFloatOrDefault("RATE_LIMIT_RPS", 25),
			BurstSize:         getIntOrDefault("RATE_LIMIT_BURST", 50),
		},
		WebSocket: WebSocketConfig{
			AllowedOrigins:  getStringSliceOrDefault("WS_ALLOWED_ORIGINS", []string{}),
			ReadBufferSize:  getIntOrDefault("WS_READ_BUFFER_SIZE", 1024),
			WriteBufferSize: getIntOrDefault("WS_WRITE_BUFFER_SIZE", 1024),
			PingInterval:    getDurationOrDefault("WS_PING_INTERVAL", 54*time.Second),
			PongWait:        getDurationOrDefault("WS_PONG_WAIT", 60*time.Second),
			MaxConnections:  getIntOrDefault("WS_MAX_CONNECTIONS", 8192),
			MaxJobRooms:     getIntOrDefault("WS_MAX_JOB_ROOMS", 128),
			SendBufferSize:  getIntOrDefault("WS_SEND_BUFFER_SIZE", 64),
			QueueSize:       getIntOrDefault("WS_DISPATCH_QUEUE_SIZE", 256),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "json"),
		},
		App: AppConfig{
			Name:        getEnvOrDefault("APP_NAME", "jobwire"),
			Version:     getEnvOrDefault("APP_VERSION", "dev"),
			Environment: getEnvOrDefault("APP_ENV", "development"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	var errs []string

	// Required fields
	if c.Database.URL == "" {
		errs = append(errs, "DATABASE_URL is required")
	}

	if c.JWT.Secret == "" {
		errs = append(errs, "JWT_SECRET is required")
	}

	if c.Internal.Token == "" {
		errs = append(errs, "INTERNAL_API_TOKEN is required")
	}

	// Security validations
	if c.App.Environment == "production" {
		if len(c.JWT.Secret) < 32 {
			errs = append(errs, "JWT_SECRET must be at least 32 characters in production")
		}

		if len(c.WebSocket.AllowedOrigins) == 0 {
			errs = append(errs, "WS_ALLOWED_ORIGINS must be set in production")
		}
	}

	// Logical validations
	if c.WebSocket.PingInterval >= c.WebSocket.PongWait {
		errs = append(errs, "WS_PING_INTERVAL must be less than WS_PONG_WAIT")
	}

	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		errs = append(errs, "DB_MAX_IDLE_CONNS cannot be greater than DB_MAX_OPEN_CONNS")
	}

	if len(errs) > 0 {
		return errors.New("configuration errors:\n  - " + strings.Join(errs, "\n  - "))
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Helper functions

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getStringSliceOrDefault(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		result := make([]string, 0, len(parts))
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}

// String returns a redacted string representation of the config (safe for logging)
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Server: %s, DB: %s, JWT: [REDACTED], Internal: [REDACTED], RateLimit: %v, Environment: %s}",
		c.Server.Port,
		redactURL(c.Database.URL),
		c.RateLimit.Enabled,
		c.App.Environment,
	)
}

// redactURL redacts sensitive parts of a database URL
func redactURL(url string) string {
	if url == "" {
		return ""
	}
	if idx := strings.Index(url, "@"); idx > 0 {
		return "[REDACTED]" + url[idx:]
	}
	return "[REDACTED]"
}
