package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/cardhouse/blackjackd/internal/api/handler"
	"github.com/cardhouse/blackjackd/internal/api/middleware"
	"github.com/cardhouse/blackjackd/internal/services/session"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger   *slog.Logger
	Sessions *session.Service
	// WSEndpoint serves websocket upgrades at /ws; optional so API tests
	// can run without a transport
	WSEndpoint http.Handler
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	sessionHandler := handler.NewSessionHandler(cfg.Sessions)

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Operator routes
	api.HandleFunc("/connections", sessionHandler.ListConnections).Methods(http.MethodGet)
	api.HandleFunc("/connections/purge", sessionHandler.PurgeConnections).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{connection_id}", sessionHandler.GetSession).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{connection_id}", sessionHandler.DeleteSession).Methods(http.MethodDelete)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Player transport
	if cfg.WSEndpoint != nil {
		r.Handle("/ws", cfg.WSEndpoint)
	}

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
