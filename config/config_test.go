package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"HOST", "PORT", "LOG_LEVEL", "LOG_FORMAT", "DATABASE_URL", "MIGRATIONS_DIR",
		"REDIS_ADDR", "SCORE_CACHE_TTL", "RATE_LIMIT_CAPACITY", "RATE_LIMIT_REFILL",
		"DEFAULT_CREDIT_AMOUNT", "DEFAULT_BASE_AMOUNT", "ALLOWED_ORIGINS", "SHUTDOWN_TIMEOUT",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, time.Minute, cfg.ScoreCacheTTL)
	assert.Equal(t, int64(10_000_000), cfg.DefaultCreditAmount)
	assert.Equal(t, int64(10_000_000), cfg.DefaultBaseAmount)
	assert.Equal(t, []string{"*"}, cfg.Origins())
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SCORE_CACHE_TTL", "30s")
	t.Setenv("DEFAULT_BASE_AMOUNT", "5000000")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, ,https://b.example.com")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.ScoreCacheTTL)
	assert.Equal(t, int64(5_000_000), cfg.DefaultBaseAmount)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Origins())
}

func TestValidate(t *testing.T) {
	valid := Config{
		Port:                8080,
		RateLimitCapacity:   10,
		RateLimitRefill:     time.Minute,
		DefaultCreditAmount: 1,
		DefaultBaseAmount:   1,
	}
	require.NoError(t, valid.Validate())

	tests := map[string]func(*Config){
		"port out of range":  func(c *Config) { c.Port = 70000 },
		"zero capacity":      func(c *Config) { c.RateLimitCapacity = 0 },
		"zero refill":        func(c *Config) { c.RateLimitRefill = 0 },
		"zero base amount":   func(c *Config) { c.DefaultBaseAmount = 0 },
		"negative credit":    func(c *Config) { c.DefaultCreditAmount = -1 },
		"negative cache ttl": func(c *Config) { c.ScoreCacheTTL = -time.Second },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			c := valid
			mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
