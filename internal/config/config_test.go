package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 1500*time.Millisecond, cfg.Chat.Latency)
	assert.Equal(t, 20*time.Millisecond, cfg.Chat.RevealInterval)
	assert.Equal(t, StoreMemory, cfg.Booking.Store)
	assert.Equal(t, 10*time.Minute, cfg.Booking.SessionTTL)
	assert.Equal(t, StoreMemory, cfg.Settings.Store)
	assert.False(t, cfg.NeedsDatabase())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("CHAT_LATENCY", "250ms")
	t.Setenv("BOOKING_STORE", "redis")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("SETTINGS_STORE", "postgres")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/app")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 250*time.Millisecond, cfg.Chat.Latency)
	assert.Equal(t, StoreRedis, cfg.Booking.Store)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.True(t, cfg.NeedsDatabase())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Chat:     ChatConfig{Latency: time.Second, RevealInterval: time.Millisecond, RateLimit: 1, RateBurst: 1},
			Booking:  BookingConfig{Store: StoreMemory},
			Settings: SettingsConfig{Store: StoreMemory},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "unknown booking store",
			mutate:  func(c *Config) { c.Booking.Store = "mongo" },
			wantErr: "booking.store",
		},
		{
			name:    "redis without address",
			mutate:  func(c *Config) { c.Booking.Store = StoreRedis },
			wantErr: "redis.addr is required",
		},
		{
			name:    "postgres settings without url",
			mutate:  func(c *Config) { c.Settings.Store = StorePostgres },
			wantErr: "database.url is required",
		},
		{
			name:    "audit without url",
			mutate:  func(c *Config) { c.Database.AuditEnabled = true },
			wantErr: "database.url is required",
		},
		{
			name:    "unknown settings store",
			mutate:  func(c *Config) { c.Settings.Store = "file" },
			wantErr: "settings.store",
		},
		{
			name:    "negative latency",
			mutate:  func(c *Config) { c.Chat.Latency = -time.Second },
			wantErr: "must not be negative",
		},
		{
			name:    "zero rate limit",
			mutate:  func(c *Config) { c.Chat.RateLimit = 0 },
			wantErr: "must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
