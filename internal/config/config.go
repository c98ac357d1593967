// Package config loads server configuration from the environment.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// Config is the server configuration, populated from BLACKJACKD_*
// environment variables
type Config struct {
	Host string `env:"BLACKJACKD_HOST" envDefault:""`
	Port int    `env:"BLACKJACKD_PORT" envDefault:"8080"`

	// StorageType selects the storage backend ("memory" or "redis")
	StorageType string `env:"BLACKJACKD_STORAGE" envDefault:"memory"`

	RedisURL          string        `env:"BLACKJACKD_REDIS_URL" envDefault:"redis://localhost:6379"`
	RedisPoolSize     int           `env:"BLACKJACKD_REDIS_POOL_SIZE" envDefault:"10"`
	RedisMinIdleConns int           `env:"BLACKJACKD_REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	SessionTTL        time.Duration `env:"BLACKJACKD_SESSION_TTL" envDefault:"0"`

	// SweepInterval is how often stale sessions are reclaimed;
	// zero disables the sweeper
	SweepInterval time.Duration `env:"BLACKJACKD_SWEEP_INTERVAL" envDefault:"30s"`

	LogLevel string `env:"BLACKJACKD_LOG_LEVEL" envDefault:"info"`
}

// Load parses the configuration from the environment
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
