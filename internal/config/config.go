package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store backends
const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Chat     ChatConfig
	Booking  BookingConfig
	Redis    RedisConfig
	Database DatabaseConfig
	Settings SettingsConfig
	Logging  LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string
	Environment     string
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

// ChatConfig holds the assistant timing and send limits
type ChatConfig struct {
	Latency        time.Duration
	RevealInterval time.Duration
	RateLimit      float64 // messages per second per client
	RateBurst      int
}

// BookingConfig holds booking wizard session configuration
type BookingConfig struct {
	Store      string // memory or redis
	SessionTTL time.Duration
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	AuditEnabled    bool
}

// SettingsConfig holds settings persistence configuration
type SettingsConfig struct {
	Store        string // memory or postgres
	DeviceLocale string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string // json or console
}

// Load reads configuration from an optional .env file, environment variables and defaults
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()

	// Set default values
	setDefaults(v)

	// Read from environment variables
	v.AutomaticEnv()

	// Bind specific environment variables
	bindEnvVars(v)

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.shutdowntimeout", 30*time.Second)
	v.SetDefault("server.allowedorigins", []string{"*"})

	// Chat defaults
	v.SetDefault("chat.latency", 1500*time.Millisecond)
	v.SetDefault("chat.revealinterval", 20*time.Millisecond)
	v.SetDefault("chat.ratelimit", 1.0)
	v.SetDefault("chat.rateburst", 3)

	// Booking defaults
	v.SetDefault("booking.store", StoreMemory)
	v.SetDefault("booking.sessionttl", 10*time.Minute)

	// Redis defaults
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)

	// Database defaults
	v.SetDefault("database.maxopenconns", 25)
	v.SetDefault("database.connmaxlifetime", 5*time.Minute)
	v.SetDefault("database.auditenabled", false)

	// Settings defaults
	v.SetDefault("settings.store", StoreMemory)
	v.SetDefault("settings.devicelocale", "en-US")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// bindEnvVars binds environment variables to config keys
func bindEnvVars(v *viper.Viper) {
	// Server
	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.environment", "ENV", "ENVIRONMENT")
	v.BindEnv("server.shutdowntimeout", "SHUTDOWN_TIMEOUT")
	v.BindEnv("server.allowedorigins", "ALLOWED_ORIGINS")

	// Chat
	v.BindEnv("chat.latency", "CHAT_LATENCY")
	v.BindEnv("chat.revealinterval", "CHAT_REVEAL_INTERVAL")
	v.BindEnv("chat.ratelimit", "CHAT_RATE_LIMIT")
	v.BindEnv("chat.rateburst", "CHAT_RATE_BURST")

	// Booking
	v.BindEnv("booking.store", "BOOKING_STORE")
	v.BindEnv("booking.sessionttl", "BOOKING_SESSION_TTL")

	// Redis
	v.BindEnv("redis.addr", "REDIS_ADDR")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("redis.db", "REDIS_DB")

	// Database
	v.BindEnv("database.url", "DATABASE_URL")
	v.BindEnv("database.auditenabled", "AUDIT_DB_ENABLED")

	// Settings
	v.BindEnv("settings.store", "SETTINGS_STORE")
	v.BindEnv("settings.devicelocale", "DEVICE_LOCALE")

	// Logging
	v.BindEnv("logging.level", "LOG_LEVEL")
	v.BindEnv("logging.format", "LOG_FORMAT")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Booking.Store {
	case StoreMemory:
	case StoreRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis.addr is required when booking.store is redis")
		}
	default:
		return fmt.Errorf("booking.store must be %q or %q, got %q", StoreMemory, StoreRedis, c.Booking.Store)
	}

	switch c.Settings.Store {
	case StoreMemory, StorePostgres:
	default:
		return fmt.Errorf("settings.store must be %q or %q, got %q", StoreMemory, StorePostgres, c.Settings.Store)
	}

	if c.NeedsDatabase() && c.Database.URL == "" {
		return fmt.Errorf("database.url is required when settings.store is postgres or audit is enabled")
	}

	if c.Chat.Latency < 0 || c.Chat.RevealInterval < 0 {
		return fmt.Errorf("chat durations must not be negative")
	}

	if c.Chat.RateLimit <= 0 || c.Chat.RateBurst <= 0 {
		return fmt.Errorf("chat.ratelimit and chat.rateburst must be positive")
	}

	return nil
}

// NeedsDatabase reports whether any component is configured to use PostgreSQL
func (c *Config) NeedsDatabase() bool {
	return c.Settings.Store == StorePostgres || c.Database.AuditEnabled
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
