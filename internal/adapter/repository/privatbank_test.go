package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exchange-chat-service/internal/metrics"
	"exchange-chat-service/pkg/logger"
)

func newTestAPI(baseURL string) *PrivatBankAPI {
	return NewPrivatBankAPI(baseURL, time.Second, logger.Nop(), metrics.NewMetricsWith(prometheus.NewRegistry()))
}

func TestPrivatBankAPI_FetchDay(t *testing.T) {
	var requestedDate string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedDate = r.URL.Query().Get("date")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"date": "10.05.2024",
			"bank": "PB",
			"baseCurrency": 980,
			"baseCurrencyLit": "UAH",
			"exchangeRate": [
				{"baseCurrency": "UAH", "currency": "USD", "saleRateNB": 39.37, "purchaseRateNB": 39.37, "saleRate": 39.9, "purchaseRate": 39.3},
				{"baseCurrency": "UAH", "currency": "EUR", "saleRateNB": 42.36, "purchaseRateNB": 42.36}
			]
		}`))
	}))
	defer server.Close()

	api := newTestAPI(server.URL)

	payload, err := api.FetchDay(context.Background(), "10.05.2024")
	require.NoError(t, err)

	assert.Equal(t, "10.05.2024", requestedDate)
	assert.Equal(t, "10.05.2024", payload.Date)
	assert.Equal(t, "PB", payload.Bank)
	require.Len(t, payload.ExchangeRate, 2)
	assert.Equal(t, "USD", payload.ExchangeRate[0].Currency)
	assert.Equal(t, 39.3, payload.ExchangeRate[0].PurchaseRate)
	// EUR row carries NBU rates only
	assert.Equal(t, "EUR", payload.ExchangeRate[1].Currency)
	assert.Zero(t, payload.ExchangeRate[1].SaleRate)
}

func TestPrivatBankAPI_FetchDayNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	api := newTestAPI(server.URL)

	_, err := api.FetchDay(context.Background(), "10.05.2024")
	require.Error(t, err)

	var upstreamErr *UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Contains(t, upstreamErr.URL, server.URL)
	assert.Contains(t, upstreamErr.Error(), "500")
}

func TestPrivatBankAPI_FetchDayConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	api := newTestAPI(server.URL)

	_, err := api.FetchDay(context.Background(), "10.05.2024")

	var upstreamErr *UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
}

func TestPrivatBankAPI_FetchDayMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	api := newTestAPI(server.URL)

	_, err := api.FetchDay(context.Background(), "10.05.2024")

	var upstreamErr *UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
}
