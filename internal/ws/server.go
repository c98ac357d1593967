package ws

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/cardhouse/blackjackd/internal/services/session"
)

const (
	pongTimeout  = 60 * time.Second
	pingInterval = 25 * time.Second
)

// Endpoint upgrades HTTP requests to websocket connections and runs the
// per-connection event loop. Opening a connection creates a session bound
// to a fresh connection identifier; closing it deletes the session.
type Endpoint struct {
	sessions   *session.Service
	hub        *Hub
	dispatcher *Dispatcher
	upgrader   websocket.Upgrader
	logger     *slog.Logger
}

// NewEndpoint creates the websocket endpoint
func NewEndpoint(sessions *session.Service, hub *Hub, dispatcher *Dispatcher, logger *slog.Logger) *Endpoint {
	return &Endpoint{
		sessions:   sessions,
		hub:        hub,
		dispatcher: dispatcher,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger,
	}
}

// ServeHTTP implements http.Handler
func (e *Endpoint) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := e.upgrader.Upgrade(w, r, nil)
	if err != nil {
		e.logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	connectionID := uuid.NewString()
	sender := newConnSender(conn)
	ctx := r.Context()

	sess, err := e.sessions.Connect(ctx, connectionID)
	if err != nil {
		e.logger.Error("session create failed",
			slog.String("connection_id", connectionID),
			slog.String("error", err.Error()),
		)
		_ = sender.Send(ctx, RequestError(err))
		_ = conn.Close()
		return
	}

	e.hub.Register(connectionID, sender)
	defer func() {
		e.hub.Unregister(connectionID)
		if err := e.sessions.Disconnect(ctx, connectionID); err != nil {
			e.logger.Error("session cleanup failed",
				slog.String("connection_id", connectionID),
				slog.String("error", err.Error()),
			)
		}
		_ = conn.Close()
	}()

	_ = sender.Send(ctx, OK(sess.Meta()))

	// Keepalive: the read deadline advances on every pong
	_ = conn.SetReadDeadline(time.Now().Add(pongTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongTimeout))
	})

	stopPing := make(chan struct{})
	defer close(stopPing)
	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stopPing:
				return
			case <-ticker.C:
				_ = conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout))
			}
		}
	}()

	for {
		var evt Event
		if err := conn.ReadJSON(&evt); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				e.logger.Warn("websocket closed unexpectedly",
					slog.String("connection_id", connectionID),
					slog.String("error", err.Error()),
				)
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongTimeout))

		e.dispatcher.Dispatch(ctx, connectionID, evt, sender)
	}
}
