package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/cardhouse/blackjackd/internal/dependencies/clock"
	"github.com/cardhouse/blackjackd/internal/services/session"
	"github.com/cardhouse/blackjackd/internal/storage"
	"github.com/cardhouse/blackjackd/internal/storage/memory"
	redisstorage "github.com/cardhouse/blackjackd/internal/storage/redis"
	"github.com/cardhouse/blackjackd/internal/storage/safe"
	"github.com/cardhouse/blackjackd/internal/ws"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage, already decorated with the outcome calling convention
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Services
	Sessions   *session.Service
	Hub        *ws.Hub
	Dispatcher *ws.Dispatcher
	Endpoint   *ws.Endpoint
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	var store storage.Storage
	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	return newWithDependencies(store, clock.New(), logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, logger *slog.Logger) *App {
	wrapped := safe.Wrap(store)
	sessions := session.New(wrapped, clk, logger)
	hub := ws.NewHub()
	dispatcher := ws.NewDispatcher(ws.NewHandlers(sessions), logger)
	endpoint := ws.NewEndpoint(sessions, hub, dispatcher, logger)

	return &App{
		Storage:    wrapped,
		Clock:      clk,
		Sessions:   sessions,
		Hub:        hub,
		Dispatcher: dispatcher,
		Endpoint:   endpoint,
	}
}
