package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

// Config is read from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
type Config struct {
	Host     string `env:"HOST,default=0.0.0.0"`
	Port     int    `env:"PORT,default=8080"`
	LogLevel string `env:"LOG_LEVEL,default=info"`
	// text or json
	LogFormat string `env:"LOG_FORMAT,default=text"`

	// Empty keeps clients in memory.
	DatabaseURL   string `env:"DATABASE_URL"`
	MigrationsDir string `env:"MIGRATIONS_DIR,default=file://migrations"`

	// Empty keeps cached scores in process memory.
	RedisAddr     string        `env:"REDIS_ADDR"`
	ScoreCacheTTL time.Duration `env:"SCORE_CACHE_TTL,default=1m"`

	RateLimitCapacity int           `env:"RATE_LIMIT_CAPACITY,default=60"`
	RateLimitRefill   time.Duration `env:"RATE_LIMIT_REFILL,default=1m"`

	DefaultCreditAmount int64 `env:"DEFAULT_CREDIT_AMOUNT,default=10000000"`
	DefaultBaseAmount   int64 `env:"DEFAULT_BASE_AMOUNT,default=10000000"`

	// Comma separated. "*" allows any origin.
	AllowedOrigins string `env:"ALLOWED_ORIGINS,default=*"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
}

// Load reads the configuration and checks it.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Port <= 0 || c.Port > 65535:
		return fmt.Errorf("config error: PORT %d out of range", c.Port)
	case c.RateLimitCapacity <= 0:
		return fmt.Errorf("config error: RATE_LIMIT_CAPACITY must be positive")
	case c.RateLimitRefill <= 0:
		return fmt.Errorf("config error: RATE_LIMIT_REFILL must be positive")
	case c.DefaultCreditAmount <= 0 || c.DefaultBaseAmount <= 0:
		return fmt.Errorf("config error: default credit and base amounts must be positive")
	case c.ScoreCacheTTL < 0:
		return fmt.Errorf("config error: SCORE_CACHE_TTL must not be negative")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Origins splits AllowedOrigins, dropping blanks.
func (c Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
