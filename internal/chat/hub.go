// Package chat tracks connected sessions and fans chat messages out to all
// of them. A single goroutine owns the registry; all mutations go through
// its command channel, so registration, broadcast and disconnect never race.
package chat

import (
	"github.com/google/uuid"
	"github.com/goombaio/namegenerator"
	"github.com/gorilla/websocket"

	"exchange-chat-service/internal/metrics"
	"exchange-chat-service/pkg/logger"
)

type hubCmd interface{ hubCmd() }

type cmdRegister struct {
	conn    *websocket.Conn
	remote  string
	replyCh chan *Session
}

func (cmdRegister) hubCmd() {}

type cmdUnregister struct {
	session *Session
}

func (cmdUnregister) hubCmd() {}

type cmdSend struct {
	session *Session
	text    string
}

func (cmdSend) hubCmd() {}

type cmdBroadcast struct {
	text string
}

func (cmdBroadcast) hubCmd() {}

type cmdCount struct {
	replyCh chan int
}

func (cmdCount) hubCmd() {}

type cmdStop struct{}

func (cmdStop) hubCmd() {}

type Hub struct {
	cmdCh    chan hubCmd
	sessions map[*Session]*sessionWriter
	names    namegenerator.Generator
	log      *logger.Logger
	metrics  *metrics.Metrics
}

func NewHub(nameSeed int64, log *logger.Logger, metrics *metrics.Metrics) *Hub {
	hub := &Hub{
		cmdCh:    make(chan hubCmd, 256),
		sessions: make(map[*Session]*sessionWriter),
		names:    namegenerator.NewNameGenerator(nameSeed),
		log:      log,
		metrics:  metrics,
	}
	go hub.run()
	return hub
}

func (h *Hub) run() {
	for cmd := range h.cmdCh {
		switch c := cmd.(type) {
		case cmdRegister:
			c.replyCh <- h.handleRegister(c)
		case cmdUnregister:
			h.handleUnregister(c.session)
		case cmdSend:
			h.handleSend(c.session, c.text)
		case cmdBroadcast:
			h.handleBroadcast(c.text)
		case cmdCount:
			c.replyCh <- len(h.sessions)
		case cmdStop:
			h.handleStop()
			return
		}
	}
}

func (h *Hub) handleRegister(c cmdRegister) *Session {
	session := &Session{
		ID:     uuid.New(),
		Name:   h.names.Generate(),
		Remote: c.remote,
		conn:   c.conn,
	}

	h.sessions[session] = newSessionWriter(c.conn)
	h.metrics.ActiveSessions.Inc()
	h.log.Info("Session registered", "remote", session.Remote, "name", session.Name, "sessions", len(h.sessions))
	return session
}

func (h *Hub) handleUnregister(session *Session) {
	writer, ok := h.sessions[session]
	if !ok {
		return
	}

	writer.stop()
	delete(h.sessions, session)
	h.metrics.ActiveSessions.Dec()
	h.log.Info("Session unregistered", "remote", session.Remote, "name", session.Name, "sessions", len(h.sessions))
}

func (h *Hub) handleSend(session *Session, text string) {
	writer, ok := h.sessions[session]
	if !ok {
		return
	}
	h.deliver(session, writer, text)
}

// handleBroadcast delivers to every session registered at send time,
// the sender included.
func (h *Hub) handleBroadcast(text string) {
	h.metrics.BroadcastsTotal.Inc()

	targets := make(map[*Session]*sessionWriter, len(h.sessions))
	for session, writer := range h.sessions {
		targets[session] = writer
	}
	for session, writer := range targets {
		h.deliver(session, writer, text)
	}
}

// deliver never blocks the hub loop: a session whose buffer is full is
// evicted instead.
func (h *Hub) deliver(session *Session, writer *sessionWriter, text string) {
	select {
	case writer.sendCh <- text:
	default:
		h.metrics.SlowClientEvictions.Inc()
		h.log.Info("Dropping slow session", "remote", session.Remote, "name", session.Name)
		h.handleUnregister(session)
	}
}

func (h *Hub) handleStop() {
	for session, writer := range h.sessions {
		writer.stop()
		delete(h.sessions, session)
		h.metrics.ActiveSessions.Dec()
	}
}

// Register admits a connection: the new session gets an identity and joins
// the registry.
func (h *Hub) Register(conn *websocket.Conn, remote string) *Session {
	replyCh := make(chan *Session, 1)
	h.cmdCh <- cmdRegister{conn: conn, remote: remote, replyCh: replyCh}
	return <-replyCh
}

func (h *Hub) Unregister(session *Session) {
	h.cmdCh <- cmdUnregister{session: session}
}

// Send queues text for one session only.
func (h *Hub) Send(session *Session, text string) {
	h.cmdCh <- cmdSend{session: session, text: text}
}

// Broadcast queues text for every registered session.
func (h *Hub) Broadcast(text string) {
	h.cmdCh <- cmdBroadcast{text: text}
}

func (h *Hub) Count() int {
	replyCh := make(chan int, 1)
	h.cmdCh <- cmdCount{replyCh: replyCh}
	return <-replyCh
}

func (h *Hub) Stop() {
	h.cmdCh <- cmdStop{}
}
