package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"exchange-chat-service/internal/domain/model"
	"exchange-chat-service/internal/metrics"
	"exchange-chat-service/pkg/logger"
)

// UpstreamError covers every failure mode of a single day's fetch: bad URL,
// connection failure, non-200 status, undecodable body. Callers treat them
// uniformly; there is no retry.
type UpstreamError struct {
	URL string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream request %s failed: %v", e.URL, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// PrivatBankAPI fetches one calendar day's exchange rates per request from
// the PrivatBank public archive endpoint.
type PrivatBankAPI struct {
	baseURL string
	client  *resty.Client
	log     *logger.Logger
	metrics *metrics.Metrics
}

func NewPrivatBankAPI(baseURL string, timeout time.Duration, log *logger.Logger, metrics *metrics.Metrics) *PrivatBankAPI {
	return &PrivatBankAPI{
		baseURL: baseURL,
		client:  resty.New().SetTimeout(timeout),
		log:     log,
		metrics: metrics,
	}
}

func (p *PrivatBankAPI) FetchDay(ctx context.Context, date string) (model.DayPayload, error) {
	start := time.Now()

	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParam("date", date).
		Get(p.baseURL)

	p.metrics.UpstreamFetchDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		p.metrics.UpstreamFetchesTotal.WithLabelValues("error").Inc()
		return model.DayPayload{}, &UpstreamError{URL: p.baseURL, Err: err}
	}

	url := resp.Request.URL
	if resp.StatusCode() != http.StatusOK {
		p.metrics.UpstreamFetchesTotal.WithLabelValues("error").Inc()
		return model.DayPayload{}, &UpstreamError{URL: url, Err: fmt.Errorf("unexpected status %d", resp.StatusCode())}
	}

	var payload model.DayPayload
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		p.metrics.UpstreamFetchesTotal.WithLabelValues("error").Inc()
		return model.DayPayload{}, &UpstreamError{URL: url, Err: fmt.Errorf("decode response: %w", err)}
	}

	p.metrics.UpstreamFetchesTotal.WithLabelValues("success").Inc()
	p.log.Debug("Fetched day rates", "date", date, "entries", len(payload.ExchangeRate))
	return payload, nil
}
