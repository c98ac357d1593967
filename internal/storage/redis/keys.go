package redis

import (
	"fmt"

	"github.com/cardhouse/blackjackd/internal/model"
)

// Key prefix for all session data
const keyPrefix = "blackjack"

// sessionKey returns the Redis key for a PlayerSession document
func sessionKey(id model.SessionID) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, id)
}

// connIndexKey returns the Redis key for the connection_id -> session_id index
func connIndexKey(connectionID string) string {
	return fmt.Sprintf("%s:idx:conn:%s", keyPrefix, connectionID)
}

// connectionsKey returns the Redis key for the SET of live connection ids
func connectionsKey() string {
	return fmt.Sprintf("%s:connections", keyPrefix)
}

// gameIndexKey returns the Redis key for the SET of session ids in a game
func gameIndexKey(game model.GameID) string {
	return fmt.Sprintf("%s:idx:game:%s", keyPrefix, game)
}
