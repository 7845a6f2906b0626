package handlers

import (
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// socketSender pushes controller events onto the websocket in call order.
// The mutex keeps the controller goroutine and the close path from writing
// concurrently.
type socketSender struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func newSocketSender(conn *websocket.Conn) *socketSender {
	return &socketSender{conn: conn}
}

// Send writes one event as a JSON message. A write failure is reported to the
// controller, which treats it as a session cancellation trigger.
func (s *socketSender) Send(event interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.conn.WriteJSON(event); err != nil {
		zap.S().Debugw("dropping event, outbound channel is gone", "error", err)
		return err
	}
	return nil
}
