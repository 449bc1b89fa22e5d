package chat

import (
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Session is one connected client: its connection, a display name assigned
// once at admission, and the remote endpoint for logging. Sessions are
// owned by the Hub and removed on disconnect.
type Session struct {
	ID     uuid.UUID
	Name   string
	Remote string

	conn *websocket.Conn
}

// sessionWriter serializes all writes to one connection. Messages are
// queued on a buffered channel; the broadcast path drops the session
// instead of blocking when the buffer is full.
type sessionWriter struct {
	conn   *websocket.Conn
	sendCh chan string
	done   chan struct{}
}

const (
	sendBufferSize = 16
	writeDeadline  = 5 * time.Second
)

func newSessionWriter(conn *websocket.Conn) *sessionWriter {
	w := &sessionWriter{
		conn:   conn,
		sendCh: make(chan string, sendBufferSize),
		done:   make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *sessionWriter) run() {
	for {
		select {
		case msg, ok := <-w.sendCh:
			if !ok {
				return
			}
			w.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := w.conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return
			}
		case <-w.done:
			return
		}
	}
}

func (w *sessionWriter) stop() {
	close(w.done)
	w.conn.Close()
}
