package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"runtime/debug"

	"github.com/cardhouse/blackjackd/internal/model"
	"github.com/cardhouse/blackjackd/internal/services/session"
	"github.com/cardhouse/blackjackd/internal/storage"
)

// HandlerFunc handles one inbound event for a connection. A non-nil error
// is translated by the dispatcher into a REQUEST_ERROR reply; it never
// reaches the read loop.
type HandlerFunc func(ctx context.Context, connectionID string, evt Event, send Sender) error

// Dispatcher routes events to handlers by action name
type Dispatcher struct {
	handlers map[string]HandlerFunc
	logger   *slog.Logger
}

// NewDispatcher creates a Dispatcher with the standard action set
func NewDispatcher(h *Handlers, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: map[string]HandlerFunc{
			"status": h.Status,
			"join":   h.Join,
			"ready":  h.Ready,
			"stand":  h.Stand,
			"hand":   h.Hand,
			"sums":   h.Sums,
		},
		logger: logger,
	}
}

// Dispatch runs the handler for the event's action. Unknown actions and
// handler failures both come back as structured error replies; a panic in
// a handler is logged and answered with INTERNAL_ERROR.
func (d *Dispatcher) Dispatch(ctx context.Context, connectionID string, evt Event, send Sender) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("panic in event handler",
				slog.Any("error", r),
				slog.String("stack", string(debug.Stack())),
				slog.String("action", evt.Action),
				slog.String("connection_id", connectionID),
			)
			code := CodeInternalError
			_ = send.Send(ctx, Result{Status: StatusRequestError, Error: &code})
		}
	}()

	handler, ok := d.handlers[evt.Action]
	if !ok {
		code := CodeUnknownAction
		_ = send.Send(ctx, Result{Status: StatusRequestError, Error: &code})
		return
	}

	if err := handler(ctx, connectionID, evt, send); err != nil {
		d.logger.Warn("event failed",
			slog.String("action", evt.Action),
			slog.String("connection_id", connectionID),
			slog.String("error", err.Error()),
		)
		_ = send.Send(ctx, RequestError(err))
	}
}

// Handlers implements the per-action event handlers on top of the session
// operations
type Handlers struct {
	sessions *session.Service
}

// NewHandlers creates the handler set
func NewHandlers(sessions *session.Service) *Handlers {
	return &Handlers{sessions: sessions}
}

// Status is the read-and-reply handler: it looks the session up by the
// event's connection, and answers INVALID_USER when there is no session,
// INVALID_GAME when the session has not joined a game, and otherwise OK
// with the session metadata. No mutation is performed.
func (h *Handlers) Status(ctx context.Context, connectionID string, _ Event, send Sender) error {
	meta, err := h.sessions.GetMeta(ctx, storage.ByConnection(connectionID))
	if err != nil {
		return err
	}
	if meta.Game == "" {
		return model.ErrInvalidGame
	}
	return send.Send(ctx, OK(meta))
}

type joinPayload struct {
	Game string `json:"game"`
}

// Join binds the session to a game table
func (h *Handlers) Join(ctx context.Context, connectionID string, evt Event, send Sender) error {
	var payload joinPayload
	if err := json.Unmarshal(evt.Payload, &payload); err != nil {
		return model.ErrInvalidGame
	}
	if payload.Game == "" {
		return model.ErrInvalidGame
	}

	meta, err := h.sessions.JoinGame(ctx, connectionID, model.GameID(payload.Game))
	if err != nil {
		return err
	}
	return send.Send(ctx, OK(meta))
}

type readyPayload struct {
	Ready bool `json:"ready"`
}

// Ready sets the player's readiness
func (h *Handlers) Ready(ctx context.Context, connectionID string, evt Event, send Sender) error {
	var payload readyPayload
	if len(evt.Payload) > 0 {
		if err := json.Unmarshal(evt.Payload, &payload); err != nil {
			return err
		}
	}

	meta, err := h.sessions.SetReadyState(ctx, connectionID, payload.Ready)
	if err != nil {
		return err
	}
	return send.Send(ctx, OK(meta))
}

type standPayload struct {
	Stand bool `json:"stand"`
}

// Stand ends the player's turn for the current hand
func (h *Handlers) Stand(ctx context.Context, connectionID string, evt Event, send Sender) error {
	payload := standPayload{Stand: true}
	if len(evt.Payload) > 0 {
		if err := json.Unmarshal(evt.Payload, &payload); err != nil {
			return err
		}
	}

	meta, err := h.sessions.SetStandState(ctx, storage.ByConnection(connectionID), payload.Stand)
	if err != nil {
		return err
	}
	return send.Send(ctx, OK(meta))
}

type handContent struct {
	Cards []model.Card `json:"cards"`
}

// Hand returns the player's own full hand, hidden card included
func (h *Handlers) Hand(ctx context.Context, connectionID string, _ Event, send Sender) error {
	if _, err := h.sessions.GetMeta(ctx, storage.ByConnection(connectionID)); err != nil {
		return err
	}
	cards, err := h.sessions.GetCards(ctx, storage.ByConnection(connectionID), true)
	if err != nil {
		return err
	}
	return send.Send(ctx, OK(handContent{Cards: cards}))
}

type sumsContent struct {
	First  int `json:"first"`
	Second int `json:"second"`
}

// Sums returns both running totals for the player's hand
func (h *Handlers) Sums(ctx context.Context, connectionID string, _ Event, send Sender) error {
	if _, err := h.sessions.GetMeta(ctx, storage.ByConnection(connectionID)); err != nil {
		return err
	}
	first, second, err := h.sessions.CardSums(ctx, storage.ByConnection(connectionID))
	if err != nil {
		return err
	}
	return send.Send(ctx, OK(sumsContent{First: first, Second: second}))
}
