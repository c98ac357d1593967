package response

import (
	"time"

	"github.com/cardhouse/blackjackd/internal/model"
)

// SessionMeta is the public view of a session in API responses.
// It never carries the hand or the connection identifier.
type SessionMeta struct {
	ID        string    `json:"id"`
	Game      string    `json:"game,omitempty"`
	Ready     bool      `json:"ready"`
	Stand     bool      `json:"stand"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SessionMetaFromModel converts a model.SessionMeta to a response SessionMeta
func SessionMetaFromModel(m *model.SessionMeta) SessionMeta {
	return SessionMeta{
		ID:        string(m.ID),
		Game:      string(m.Game),
		Ready:     m.Ready,
		Stand:     m.Stand,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// Connections lists live connection identifiers
type Connections struct {
	ConnectionIDs []string `json:"connection_ids"`
}

// PurgeResult reports how many sessions a purge removed
type PurgeResult struct {
	Removed int `json:"removed"`
}
