// Package sweeper reclaims sessions whose connections are gone. The
// transport layer knows which connections are live; everything the store
// remembers beyond that set is stale and gets purged.
package sweeper

import (
	"context"
	"log/slog"
	"time"

	"github.com/cardhouse/blackjackd/internal/services/session"
)

// LivenessSource reports the connection identifiers that are currently
// attached to the transport layer
type LivenessSource interface {
	LiveConnections() []string
}

// Sweeper periodically removes sessions for dead connections
type Sweeper struct {
	sessions *session.Service
	live     LivenessSource
	interval time.Duration
	logger   *slog.Logger
}

// New creates a new Sweeper
func New(sessions *session.Service, live LivenessSource, interval time.Duration, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		sessions: sessions,
		live:     live,
		interval: interval,
		logger:   logger,
	}
}

// Run sweeps on the configured interval until the context is canceled
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Sweep(ctx); err != nil {
				s.logger.Error("sweep failed", slog.String("error", err.Error()))
			}
		}
	}
}

// Sweep removes every stored session whose connection is not live,
// returning how many sessions were purged
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	stored, err := s.sessions.ListConnections(ctx)
	if err != nil {
		return 0, err
	}

	live := make(map[string]struct{})
	for _, conn := range s.live.LiveConnections() {
		live[conn] = struct{}{}
	}

	stale := make([]string, 0)
	for _, conn := range stored {
		if _, ok := live[conn]; !ok {
			stale = append(stale, conn)
		}
	}

	if len(stale) == 0 {
		return 0, nil
	}
	return s.sessions.PurgeConnections(ctx, stale)
}
