package model

import "time"

// SessionID uniquely identifies a player session across the system
type SessionID string

// GameID identifies the table a player has joined
type GameID string

// PlayerSession is the per-player state for one live connection.
// ConnectionID is unique across sessions while the connection is live and
// is rebound on reconnect. Cards is append-only during a hand; its first
// element is hidden from opponents.
type PlayerSession struct {
	ID           SessionID `json:"id"`
	ConnectionID string    `json:"connection_id"`
	Game         GameID    `json:"game,omitempty"`
	Cards        []Card    `json:"cards"`
	Ready        bool      `json:"ready"`
	Stand        bool      `json:"stand"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SessionMeta is the public projection of a PlayerSession.
// Cards and ConnectionID are deliberately absent: everything that reads
// "public" session state goes through this type, so the self-view /
// opponent-view boundary is a matter of field projection rather than
// access checks in the storage layer.
type SessionMeta struct {
	ID        SessionID `json:"id"`
	Game      GameID    `json:"game,omitempty"`
	Ready     bool      `json:"ready"`
	Stand     bool      `json:"stand"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Meta returns the public projection of the session
func (s *PlayerSession) Meta() *SessionMeta {
	return &SessionMeta{
		ID:        s.ID,
		Game:      s.Game,
		Ready:     s.Ready,
		Stand:     s.Stand,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// Clone returns a deep copy of the session
func (s *PlayerSession) Clone() *PlayerSession {
	out := *s
	if s.Cards != nil {
		out.Cards = make([]Card, len(s.Cards))
		copy(out.Cards, s.Cards)
	}
	return &out
}
