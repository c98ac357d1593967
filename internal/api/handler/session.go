package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/cardhouse/blackjackd/internal/api/apierr"
	"github.com/cardhouse/blackjackd/internal/api/response"
	"github.com/cardhouse/blackjackd/internal/services/session"
	"github.com/cardhouse/blackjackd/internal/storage"
)

// SessionHandler exposes the operator view of player sessions: listing
// and purging connections and inspecting session metadata. The hand and
// the raw connection binding are never served here.
type SessionHandler struct {
	sessions *session.Service
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(sessions *session.Service) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// ListConnections handles GET /connections
func (h *SessionHandler) ListConnections(w http.ResponseWriter, r *http.Request) {
	conns, err := h.sessions.ListConnections(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Connections{ConnectionIDs: conns})
}

// PurgeRequest is the request body for purging connections
type PurgeRequest struct {
	ConnectionIDs []string `json:"connection_ids"`
}

// PurgeConnections handles POST /connections/purge
func (h *SessionHandler) PurgeConnections(w http.ResponseWriter, r *http.Request) {
	var req PurgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if len(req.ConnectionIDs) == 0 {
		apierr.WriteError(w, apierr.NewInvalidRequestError("connection_ids is required"))
		return
	}

	removed, err := h.sessions.PurgeConnections(r.Context(), req.ConnectionIDs)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PurgeResult{Removed: removed})
}

// GetSession handles GET /sessions/{connection_id}
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	connectionID := mux.Vars(r)["connection_id"]

	meta, err := h.sessions.GetMeta(r.Context(), storage.ByConnection(connectionID))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionMetaFromModel(meta))
}

// DeleteSession handles DELETE /sessions/{connection_id}
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	connectionID := mux.Vars(r)["connection_id"]

	if err := h.sessions.Disconnect(r.Context(), connectionID); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.NoContent(w)
}
