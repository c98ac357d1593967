package storage

import (
	"context"

	"github.com/cardhouse/blackjackd/internal/model"
)

// Filter selects a session record. The first non-zero field wins, checked
// in order: ID, ConnectionID, Game. A Game filter may match several
// sessions; operations that take a Filter act on the first match.
type Filter struct {
	ID           model.SessionID
	ConnectionID string
	Game         model.GameID
}

// IsZero reports whether the filter matches nothing in particular
func (f Filter) IsZero() bool {
	return f.ID == "" && f.ConnectionID == "" && f.Game == ""
}

// Matches reports whether the session satisfies the filter
func (f Filter) Matches(s *model.PlayerSession) bool {
	switch {
	case f.ID != "":
		return s.ID == f.ID
	case f.ConnectionID != "":
		return s.ConnectionID == f.ConnectionID
	case f.Game != "":
		return s.Game == f.Game
	default:
		return false
	}
}

// ByID filters by persistent session identity
func ByID(id model.SessionID) Filter { return Filter{ID: id} }

// ByConnection filters by live connection identifier
func ByConnection(connectionID string) Filter { return Filter{ConnectionID: connectionID} }

// ByGame filters by joined game reference
func ByGame(game model.GameID) Filter { return Filter{Game: game} }

// Patch is a partial update to a session record. Nil fields are left
// untouched; UpdatedAt is always stamped by the adapter.
type Patch struct {
	ConnectionID *string
	Game         *model.GameID
	Cards        *[]model.Card
	Ready        *bool
	Stand        *bool
}

// Apply copies the patch's set fields onto the session
func (p Patch) Apply(s *model.PlayerSession) {
	if p.ConnectionID != nil {
		s.ConnectionID = *p.ConnectionID
	}
	if p.Game != nil {
		s.Game = *p.Game
	}
	if p.Cards != nil {
		cards := make([]model.Card, len(*p.Cards))
		copy(cards, *p.Cards)
		s.Cards = cards
	}
	if p.Ready != nil {
		s.Ready = *p.Ready
	}
	if p.Stand != nil {
		s.Stand = *p.Stand
	}
}

// Storage is the session store adapter: filter-based CRUD primitives over
// PlayerSession records plus the projected reads the game layer composes
// on. The store guarantees atomicity only for a single record's single
// operation; composed read-then-write sequences race last-writer-wins.
type Storage interface {
	// ListConnections enumerates all live sessions' connection identifiers
	ListConnections(ctx context.Context) ([]string, error)

	// PurgeConnections bulk-deletes sessions whose connection identifier is
	// in ids, returning how many were removed. Unknown identifiers are
	// skipped, not an error.
	PurgeConnections(ctx context.Context, ids []string) (int, error)

	// Create inserts a new session record. An existing session bound to the
	// same connection identifier is superseded (deleted) so that at most one
	// live session per connection exists.
	Create(ctx context.Context, sess *model.PlayerSession) (*model.PlayerSession, error)

	// Update applies a partial update to the first record matching the
	// filter and returns the committed record. Fails with
	// model.ErrSessionNotFound if nothing matches.
	Update(ctx context.Context, f Filter, p Patch) (*model.PlayerSession, error)

	// Delete removes the record matching the filter, returning how many
	// records were removed (0 or 1).
	Delete(ctx context.Context, f Filter) (int, error)

	// GetMeta returns the public projection of the matching session.
	// Fails with model.ErrInvalidUser if nothing matches.
	GetMeta(ctx context.Context, f Filter) (*model.SessionMeta, error)

	// GetConnectionID returns the matching session's connection identifier.
	// Fails with model.ErrInvalidUser if nothing matches or the match has
	// no connection bound.
	GetConnectionID(ctx context.Context, f Filter) (string, error)

	// GetCards returns the matching session's hand: the full hand when all
	// is true, otherwise the hand with its first (hidden) card removed.
	// No match yields an empty hand, not an error.
	GetCards(ctx context.Context, f Filter, all bool) ([]model.Card, error)
}
