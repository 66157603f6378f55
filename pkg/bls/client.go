// Package bls is a resilient client for the Bureau of Labor Statistics
// public timeseries API (v2).
package bls

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/RakeemRanger/bls-data-assistant/internal/resilience"
)

const (
	defaultBaseURL = "https://api.bls.gov/publicAPI/v2"
	defaultTimeout = 30 * time.Second
)

// Client defines the provider operations the pipeline consumes.
type Client interface {
	// GetSeriesData issues one timeseries request. The request is
	// validated before any network call; transient failures are retried
	// with backoff.
	GetSeriesData(ctx context.Context, req SeriesRequest) (*SeriesResponse, error)

	// GetSingleSeries fetches one series and returns the first series in
	// the response, or (nil, nil) when it is absent. Per-call errors are
	// logged and swallowed into the nil outcome: callers of this helper
	// treat absence as a normal state.
	GetSingleSeries(ctx context.Context, seriesID, startYear, endYear string) (*Series, error)

	// LatestValue returns the most recent observation for a series by
	// requesting a short recent window, or (nil, nil) when none exists.
	// The provider returns data points most recent first.
	LatestValue(ctx context.Context, seriesID string) (*DataPoint, error)
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) { c.baseURL = url }
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) { c.http = hc }
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) { c.http.Timeout = d }
}

// WithRateLimit overrides the default request pacing.
func WithRateLimit(r rate.Limit, burst int) Option {
	return func(c *httpClient) { c.limiter = rate.NewLimiter(r, burst) }
}

// WithRetryConfig overrides the retry policy. The policy is fixed after
// construction.
func WithRetryConfig(cfg resilience.RetryConfig) Option {
	return func(c *httpClient) { c.retry = cfg }
}

// WithNowFunc overrides the clock used for recent-window requests.
func WithNowFunc(now func() time.Time) Option {
	return func(c *httpClient) { c.now = now }
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	retry   resilience.RetryConfig
	breaker *resilience.CircuitBreaker
	now     func() time.Time
}

// NewClient creates a BLS API client. The API key is optional; unkeyed
// requests are accepted by the provider at a lower daily quota.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: defaultTimeout,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: rate.NewLimiter(5, 5),
		retry:   resilience.DefaultRetryConfig(),
		breaker: resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
			ShouldTrip: resilience.IsTransient,
		}),
		now: time.Now,
	}
	c.retry.OnRetry = resilience.RetryLogger("bls", "timeseries")
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) GetSeriesData(ctx context.Context, req SeriesRequest) (*SeriesResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	body := payload{
		SeriesID:  req.SeriesIDs,
		StartYear: req.StartYear,
		EndYear:   req.EndYear,
		Catalog:   req.Catalog,
	}
	if c.apiKey != "" {
		body.RegistrationKey = c.apiKey
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return nil, eris.Wrap(err, "bls: marshal request")
	}

	zap.L().Info("fetching series data",
		zap.Int("series", len(req.SeriesIDs)),
		zap.String("start_year", req.StartYear),
		zap.String("end_year", req.EndYear),
	)

	resp, err := resilience.ExecuteVal(ctx, c.breaker, func(ctx context.Context) (*SeriesResponse, error) {
		return resilience.DoVal(ctx, c.retry, func(ctx context.Context) (*SeriesResponse, error) {
			return c.doRequest(ctx, raw)
		})
	})
	if err != nil {
		return nil, asClientError(err)
	}

	zap.L().Info("series data fetched",
		zap.Int("series", len(resp.Results.Series)),
		zap.Int("response_time_ms", resp.ResponseTime),
	)
	return resp, nil
}

// doRequest performs a single POST attempt. Retryable failures are wrapped
// as resilience.TransientError; everything else surfaces terminally.
func (c *httpClient) doRequest(ctx context.Context, body []byte) (*SeriesResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "bls: rate limiter wait")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/timeseries/data/", bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "bls: create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, resilience.NewTransientError(err, 0)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, resilience.NewTransientError(err, httpResp.StatusCode)
	}

	if resilience.IsTransientHTTPStatus(httpResp.StatusCode) {
		return nil, resilience.NewTransientError(
			eris.Errorf("bls: http %d", httpResp.StatusCode), httpResp.StatusCode)
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, &TransportError{
			Err:        eris.Errorf("unexpected status from provider"),
			StatusCode: httpResp.StatusCode,
		}
	}

	var resp SeriesResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, &TransportError{Err: eris.Wrap(err, "decode response")}
	}

	if resp.Status != StatusSucceeded {
		return nil, &ProviderError{Status: resp.Status, Messages: resp.Message}
	}

	return &resp, nil
}

// asClientError maps retry/breaker outcomes onto the client error taxonomy.
func asClientError(err error) error {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe
	}
	var te *TransportError
	if errors.As(err, &te) {
		return te
	}
	var tr *resilience.TransientError
	if errors.As(err, &tr) {
		return &TransportError{Err: tr.Err, StatusCode: tr.StatusCode}
	}
	return &TransportError{Err: err}
}

func (c *httpClient) GetSingleSeries(ctx context.Context, seriesID, startYear, endYear string) (*Series, error) {
	resp, err := c.GetSeriesData(ctx, SeriesRequest{
		SeriesIDs: []string{seriesID},
		StartYear: startYear,
		EndYear:   endYear,
	})
	if err != nil {
		zap.L().Warn("single series fetch failed, treating as not found",
			zap.String("series_id", seriesID),
			zap.Error(err),
		)
		return nil, nil
	}
	if len(resp.Results.Series) == 0 {
		return nil, nil
	}
	return &resp.Results.Series[0], nil
}

func (c *httpClient) LatestValue(ctx context.Context, seriesID string) (*DataPoint, error) {
	currentYear := c.now().Year()
	series, err := c.GetSingleSeries(ctx, seriesID,
		strconv.Itoa(currentYear-2), strconv.Itoa(currentYear))
	if err != nil || series == nil || len(series.Data) == 0 {
		return nil, err
	}
	return &series.Data[0], nil
}
