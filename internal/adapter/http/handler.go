package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"exchange-chat-service/internal/audit"
	"exchange-chat-service/internal/chat"
	"exchange-chat-service/internal/command"
	"exchange-chat-service/internal/domain/model"
	"exchange-chat-service/internal/domain/ports"
	"exchange-chat-service/internal/metrics"
	"exchange-chat-service/pkg/logger"
)

const welcomeMessage = "<h2>Welcome to chat! </h2>" +
	"Use <b>exchange add <i>currency_lit</i></b> to add or" +
	"<b>exchange remove <i>currency_lit</i></b> to remove currency (USD or EUR or another).<br>" +
	"Type <b>exchange <i>number</i></b> for showing exchange rates " +
	"of <i><b>number</b></i> previous days (1 by default, max 10)" +
	"<h3>or simly send messages to all in chat</h3>"

const failureMessage = "Something went wrong"

type renderer interface {
	Render(table model.ExchangeTable) (string, error)
}

type Handler struct {
	service  ports.ExchangeService
	hub      *chat.Hub
	renderer renderer
	audit    *audit.Log
	log      *logger.Logger
	metrics  *metrics.Metrics
	upgrader websocket.Upgrader
}

func NewHandler(service ports.ExchangeService, hub *chat.Hub, renderer renderer, audit *audit.Log, log *logger.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		service:  service,
		hub:      hub,
		renderer: renderer,
		audit:    audit,
		log:      log,
		metrics:  metrics,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleWebSocket owns one session from admission to disconnect. Inbound
// lines are processed strictly in arrival order; a read error of any kind
// ends only this session.
func (h *Handler) HandleWebSocket(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade has already replied to the client on failure.
		h.log.Error("Failed to upgrade connection", "error", err, "remote", c.Request().RemoteAddr)
		return nil
	}

	session := h.hub.Register(conn, c.Request().RemoteAddr)
	defer h.hub.Unregister(session)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h.hub.Send(session, welcomeMessage)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			h.log.Info("Session closed", "remote", session.Remote, "name", session.Name, "reason", err.Error())
			return nil
		}
		h.dispatch(ctx, session, string(data))
	}
}

// dispatch routes one parsed command. Exchange command results go to the
// requester only; chat fans out to everyone. No failure here may escape to
// the session loop.
func (h *Handler) dispatch(ctx context.Context, session *chat.Session, line string) {
	switch cmd := command.Parse(line).(type) {
	case command.Chat:
		h.metrics.CommandsTotal.WithLabelValues("chat").Inc()
		h.hub.Broadcast(fmt.Sprintf("%s: %s", session.Name, cmd.Text))
		return

	case command.AddCurrency:
		h.metrics.CommandsTotal.WithLabelValues("add").Inc()
		h.hub.Send(session, h.service.AddCurrency(cmd.Code))

	case command.RemoveCurrency:
		h.metrics.CommandsTotal.WithLabelValues("remove").Inc()
		h.hub.Send(session, h.service.RemoveCurrency(cmd.Code))

	case command.ShowExchange:
		h.metrics.CommandsTotal.WithLabelValues("show").Inc()
		h.hub.Send(session, h.showExchange(ctx, cmd.Days))
	}

	h.audit.Record(session.Remote, session.Name, line)
}

func (h *Handler) showExchange(ctx context.Context, days int) string {
	table, err := h.service.GetExchanges(ctx, days)
	if err != nil {
		h.log.Error("Failed to build exchange table", "error", err, "days", days)
		return failureMessage
	}

	document, err := h.renderer.Render(table)
	if err != nil {
		h.log.Error("Failed to render exchange table", "error", err)
		return failureMessage
	}
	return document
}
