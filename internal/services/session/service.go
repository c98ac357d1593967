// Package session implements the game-aware operations over player
// sessions. Every composed operation re-reads prerequisite state before
// mutating; the read and the write are two separate store calls, so a
// concurrent writer to the same record between them wins silently
// (last-writer-wins). That race is accepted here; a stricter variant
// would need a conditional update keyed on a version field.
package session

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/cardhouse/blackjackd/internal/dependencies/clock"
	"github.com/cardhouse/blackjackd/internal/model"
	"github.com/cardhouse/blackjackd/internal/services/scoring"
	"github.com/cardhouse/blackjackd/internal/storage"
)

// Service exposes the session operations. All access to the persistent
// backend goes through the storage adapter; callers never hold a raw
// store handle.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new session service
func New(store storage.Storage, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		clock:   clk,
		logger:  logger,
	}
}

// Connect creates a fresh session bound to the given connection. Any prior
// session for the same connection is superseded by the adapter, keeping
// the one-session-per-connection invariant.
func (s *Service) Connect(ctx context.Context, connectionID string) (*model.PlayerSession, error) {
	now := s.clock.Now()
	sess := &model.PlayerSession{
		ID:           model.SessionID(uuid.NewString()),
		ConnectionID: connectionID,
		Cards:        []model.Card{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.storage.Create(ctx, sess)
	if err != nil {
		return nil, err
	}

	s.logger.Info("session created",
		slog.String("session_id", string(created.ID)),
		slog.String("connection_id", connectionID),
	)
	return created, nil
}

// Disconnect removes the session bound to the given connection
func (s *Service) Disconnect(ctx context.Context, connectionID string) error {
	removed, err := s.storage.Delete(ctx, storage.ByConnection(connectionID))
	if err != nil {
		return err
	}
	if removed > 0 {
		s.logger.Info("session removed", slog.String("connection_id", connectionID))
	}
	return nil
}

// ListConnections enumerates all live sessions' connection identifiers
func (s *Service) ListConnections(ctx context.Context) ([]string, error) {
	return s.storage.ListConnections(ctx)
}

// PurgeConnections bulk-deletes sessions for connections the transport
// layer has determined are dead, returning how many were removed
func (s *Service) PurgeConnections(ctx context.Context, ids []string) (int, error) {
	removed, err := s.storage.PurgeConnections(ctx, ids)
	if err != nil {
		return removed, err
	}
	if removed > 0 {
		s.logger.Info("stale sessions purged", slog.Int("removed", removed))
	}
	return removed, nil
}

// GetMeta returns the public projection of the matching session
func (s *Service) GetMeta(ctx context.Context, f storage.Filter) (*model.SessionMeta, error) {
	return s.storage.GetMeta(ctx, f)
}

// GetConnectionID returns the matching session's connection identifier
func (s *Service) GetConnectionID(ctx context.Context, f storage.Filter) (string, error) {
	return s.storage.GetConnectionID(ctx, f)
}

// GetCards returns the matching session's hand, minus the hidden first
// card unless all is set
func (s *Service) GetCards(ctx context.Context, f storage.Filter, all bool) ([]model.Card, error) {
	return s.storage.GetCards(ctx, f, all)
}

// JoinGame binds the session to a game table
func (s *Service) JoinGame(ctx context.Context, connectionID string, game model.GameID) (*model.SessionMeta, error) {
	meta, err := s.storage.GetMeta(ctx, storage.ByConnection(connectionID))
	if err != nil {
		return nil, err
	}

	updated, err := s.storage.Update(ctx, storage.ByID(meta.ID), storage.Patch{Game: &game})
	if err != nil {
		return nil, err
	}
	return updated.Meta(), nil
}

// SetCards replaces the session's hand wholesale and returns the
// refreshed metadata. Fails with model.ErrInvalidUser when no session
// exists for the connection.
func (s *Service) SetCards(ctx context.Context, connectionID string, cards []model.Card) (*model.SessionMeta, error) {
	meta, err := s.storage.GetMeta(ctx, storage.ByConnection(connectionID))
	if err != nil {
		return nil, err
	}

	if _, err := s.storage.Update(ctx, storage.ByID(meta.ID), storage.Patch{Cards: &cards}); err != nil {
		return nil, err
	}

	return s.storage.GetMeta(ctx, storage.ByConnection(connectionID))
}

// AddCards appends cards to the end of the stored hand and returns the
// resulting hand ordered {new cards, then prior cards}. The inverted
// return order is a quirk the callers rely on; the stored order stays
// chronological. A missing session yields model.ErrInvalidUser before any
// mutation, regardless of the underlying cause.
func (s *Service) AddCards(ctx context.Context, connectionID string, cards []model.Card) ([]model.Card, error) {
	if _, err := s.storage.GetMeta(ctx, storage.ByConnection(connectionID)); err != nil {
		return nil, model.ErrInvalidUser
	}

	prior, err := s.storage.GetCards(ctx, storage.ByConnection(connectionID), true)
	if err != nil {
		return nil, model.ErrInvalidUser
	}

	merged := make([]model.Card, 0, len(prior)+len(cards))
	merged = append(merged, prior...)
	merged = append(merged, cards...)

	if _, err := s.storage.Update(ctx, storage.ByConnection(connectionID), storage.Patch{Cards: &merged}); err != nil {
		return nil, err
	}

	result := make([]model.Card, 0, len(cards)+len(prior))
	result = append(result, cards...)
	result = append(result, prior...)
	return result, nil
}

// SetReadyState sets the player-declared readiness and returns the
// refreshed metadata
func (s *Service) SetReadyState(ctx context.Context, connectionID string, ready bool) (*model.SessionMeta, error) {
	meta, err := s.storage.GetMeta(ctx, storage.ByConnection(connectionID))
	if err != nil {
		return nil, err
	}

	updated, err := s.storage.Update(ctx, storage.ByID(meta.ID), storage.Patch{Ready: &ready})
	if err != nil {
		return nil, err
	}
	return updated.Meta(), nil
}

// SetStandState sets the stand flag on the session matching an arbitrary
// filter. The metadata is re-read after the write so the caller observes
// the committed value rather than the adapter's update response.
func (s *Service) SetStandState(ctx context.Context, f storage.Filter, stand bool) (*model.SessionMeta, error) {
	if _, err := s.storage.GetMeta(ctx, f); err != nil {
		return nil, err
	}

	if _, err := s.storage.Update(ctx, f, storage.Patch{Stand: &stand}); err != nil {
		return nil, err
	}

	return s.storage.GetMeta(ctx, f)
}

// CardSums scores the matching session's full hand and returns both
// running totals
func (s *Service) CardSums(ctx context.Context, f storage.Filter) (first, second int, err error) {
	cards, err := s.storage.GetCards(ctx, f, true)
	if err != nil {
		return 0, 0, err
	}
	first, second = scoring.Sums(cards)
	return first, second, nil
}
