package ws

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Sender delivers results back to a connection. Handlers depend on this
// capability, not on the socket, so tests can capture replies directly.
type Sender interface {
	Send(ctx context.Context, res Result) error
}

const writeTimeout = 10 * time.Second

// connSender sends results over a websocket connection. Gorilla permits a
// single concurrent writer, hence the mutex.
type connSender struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func newConnSender(conn *websocket.Conn) *connSender {
	return &connSender{conn: conn}
}

func (s *connSender) Send(ctx context.Context, res Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	deadline := time.Now().Add(writeTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := s.conn.SetWriteDeadline(deadline); err != nil {
		return err
	}
	return s.conn.WriteJSON(res)
}
