package http

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	ws "github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exchange-chat-service/internal/audit"
	"exchange-chat-service/internal/chat"
	"exchange-chat-service/internal/domain/model"
	"exchange-chat-service/internal/metrics"
	"exchange-chat-service/pkg/logger"
)

type MockExchangeService struct {
	AddCurrencyFunc    func(code model.Currency) string
	RemoveCurrencyFunc func(code model.Currency) string
	GetExchangesFunc   func(ctx context.Context, days int) (model.ExchangeTable, error)
	TrackedFunc        func() []model.Currency
}

func (m *MockExchangeService) AddCurrency(code model.Currency) string {
	return m.AddCurrencyFunc(code)
}

func (m *MockExchangeService) RemoveCurrency(code model.Currency) string {
	return m.RemoveCurrencyFunc(code)
}

func (m *MockExchangeService) GetExchanges(ctx context.Context, days int) (model.ExchangeTable, error) {
	return m.GetExchangesFunc(ctx, days)
}

func (m *MockExchangeService) Tracked() []model.Currency {
	if m.TrackedFunc != nil {
		return m.TrackedFunc()
	}
	return nil
}

type staticRenderer struct {
	document string
	err      error
}

func (r staticRenderer) Render(table model.ExchangeTable) (string, error) {
	return r.document, r.err
}

type testServer struct {
	auditPath string
	dial      func() *ws.Conn
}

func newTestServer(t *testing.T, service *MockExchangeService, renderer renderer) *testServer {
	t.Helper()

	log := logger.Nop()
	appMetrics := metrics.NewMetricsWith(prometheus.NewRegistry())

	auditPath := filepath.Join(t.TempDir(), "log_exchange.log")
	auditLog, err := audit.NewLog(auditPath)
	require.NoError(t, err)
	t.Cleanup(func() { auditLog.Close() })

	hub := chat.NewHub(1, log, appMetrics)
	t.Cleanup(hub.Stop)

	handler := NewHandler(service, hub, renderer, auditLog, log, appMetrics)
	e := NewRouter(handler, log).Setup()

	server := httptest.NewServer(e)
	t.Cleanup(server.Close)

	dial := func() *ws.Conn {
		t.Helper()
		url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
		conn, _, err := ws.DefaultDialer.Dial(url, nil)
		require.NoError(t, err)
		t.Cleanup(func() { conn.Close() })
		return conn
	}

	return &testServer{auditPath: auditPath, dial: dial}
}

func readText(t *testing.T, conn *ws.Conn) string {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	return string(msg)
}

func sendText(t *testing.T, conn *ws.Conn, text string) {
	t.Helper()
	require.NoError(t, conn.WriteMessage(ws.TextMessage, []byte(text)))
}

func TestHandler_WelcomeOnAdmission(t *testing.T) {
	srv := newTestServer(t, &MockExchangeService{}, staticRenderer{})

	conn := srv.dial()

	welcome := readText(t, conn)
	assert.Contains(t, welcome, "Welcome to chat!")
	assert.Contains(t, welcome, "exchange add")
}

func TestHandler_ChatIsBroadcastToAllSessions(t *testing.T) {
	srv := newTestServer(t, &MockExchangeService{}, staticRenderer{})

	connA := srv.dial()
	connB := srv.dial()
	readText(t, connA) // welcome
	readText(t, connB)

	sendText(t, connA, "hello there")

	gotA := readText(t, connA)
	gotB := readText(t, connB)
	assert.Equal(t, gotA, gotB)
	assert.True(t, strings.HasSuffix(gotA, ": hello there"))
}

func TestHandler_AddCurrencyRepliesToRequesterOnly(t *testing.T) {
	service := &MockExchangeService{
		AddCurrencyFunc: func(code model.Currency) string {
			assert.Equal(t, model.Currency("GBP"), code)
			return "GBP was added. Current currencies: USD, EUR, GBP"
		},
	}
	srv := newTestServer(t, service, staticRenderer{})

	connA := srv.dial()
	connB := srv.dial()
	readText(t, connA)
	readText(t, connB)

	sendText(t, connA, "exchange add gbp")
	assert.Equal(t, "GBP was added. Current currencies: USD, EUR, GBP", readText(t, connA))

	connB.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	_, _, err := connB.ReadMessage()
	assert.Error(t, err, "exchange results must not be broadcast")
}

func TestHandler_ShowExchangeRendersTable(t *testing.T) {
	service := &MockExchangeService{
		GetExchangesFunc: func(ctx context.Context, days int) (model.ExchangeTable, error) {
			assert.Equal(t, 3, days)
			return model.ExchangeTable{Currencies: []model.Currency{"USD"}}, nil
		},
	}
	srv := newTestServer(t, service, staticRenderer{document: "<table>rates</table>"})

	conn := srv.dial()
	readText(t, conn)

	sendText(t, conn, "exchange 3")
	assert.Equal(t, "<table>rates</table>", readText(t, conn))
}

func TestHandler_UpstreamFailureYieldsGenericMessage(t *testing.T) {
	service := &MockExchangeService{
		GetExchangesFunc: func(ctx context.Context, days int) (model.ExchangeTable, error) {
			return model.ExchangeTable{}, errors.New("fetch rates for 10.05.2024: unexpected status 500")
		},
	}
	srv := newTestServer(t, service, staticRenderer{})

	conn := srv.dial()
	readText(t, conn)

	sendText(t, conn, "exchange")
	assert.Equal(t, "Something went wrong", readText(t, conn))
}

func TestHandler_ExchangeCommandsAreAudited(t *testing.T) {
	service := &MockExchangeService{
		AddCurrencyFunc: func(code model.Currency) string { return "added" },
	}
	srv := newTestServer(t, service, staticRenderer{})

	conn := srv.dial()
	readText(t, conn)

	sendText(t, conn, "just chatting")
	sendText(t, conn, "exchange add gbp")
	readText(t, conn) // chat echo
	readText(t, conn) // add reply

	require.Eventually(t, func() bool {
		data, err := os.ReadFile(srv.auditPath)
		return err == nil && strings.Contains(string(data), "exchange add gbp")
	}, time.Second, 10*time.Millisecond)

	data, err := os.ReadFile(srv.auditPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "just chatting")
}

func TestHandler_DisconnectLeavesOthersWorking(t *testing.T) {
	srv := newTestServer(t, &MockExchangeService{}, staticRenderer{})

	connA := srv.dial()
	connB := srv.dial()
	readText(t, connA)
	readText(t, connB)

	require.NoError(t, connA.Close())
	time.Sleep(50 * time.Millisecond)

	sendText(t, connB, "anyone here?")
	assert.True(t, strings.HasSuffix(readText(t, connB), ": anyone here?"))
}
