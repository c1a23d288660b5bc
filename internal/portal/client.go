package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/osse101/WheelPortal_Go/internal/domain"
	"github.com/osse101/WheelPortal_Go/internal/logger"
	"github.com/osse101/WheelPortal_Go/internal/metrics"
)

// Client talks to the portal backend wheel API
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	MaxRetries int
	RetryDelay time.Duration
}

// NewClient creates a backend client with the given request timeout
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		MaxRetries: DefaultMaxRetries,
		RetryDelay: DefaultRetryDelay,
	}
}

// errorResponse is the backend error body
type errorResponse struct {
	Code    string `json:"code"`
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

func (e errorResponse) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Detail
}

// GetWheelConfig fetches the wheel configuration
func (c *Client) GetWheelConfig(ctx context.Context) (*domain.WheelConfig, error) {
	var cfg domain.WheelConfig
	if err := c.call(ctx, OpGetWheelConfig, http.MethodGet, PathWheelConfig, nil, true, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// spinResponse is the backend's spin body. SpinOutcome hides the redeem code
// from every encoder, so it is decoded here and copied over.
type spinResponse struct {
	domain.SpinOutcome
	RedeemCode string `json:"redeem_code"`
}

// Spin charges the user and returns the outcome. It is never retried.
func (c *Client) Spin(ctx context.Context, req domain.SpinRequest) (*domain.SpinOutcome, error) {
	var resp spinResponse
	if err := c.call(ctx, OpSpin, http.MethodPost, PathWheelSpin, req, false, &resp); err != nil {
		return nil, err
	}
	outcome := resp.SpinOutcome
	outcome.RedeemCode = resp.RedeemCode
	return &outcome, nil
}

// CreateExternalInvoice creates an invoice for the external payment surface
func (c *Client) CreateExternalInvoice(ctx context.Context) (*domain.Invoice, error) {
	var invoice domain.Invoice
	if err := c.call(ctx, OpCreateInvoice, http.MethodPost, PathWheelInvoice, struct{}{}, false, &invoice); err != nil {
		return nil, err
	}
	if invoice.InvoiceURL == "" {
		return nil, fmt.Errorf("%w: invoice without url", domain.ErrBackendRejected)
	}
	return &invoice, nil
}

// GetHistory returns one page of spin history, newest first
func (c *Client) GetHistory(ctx context.Context, page, pageSize int) (*domain.HistoryPage, error) {
	params := url.Values{}
	params.Set(QueryPage, strconv.Itoa(page))
	params.Set(QueryPerPage, strconv.Itoa(pageSize))

	var history domain.HistoryPage
	if err := c.call(ctx, OpGetHistory, http.MethodGet, PathWheelHistory+"?"+params.Encode(), nil, true, &history); err != nil {
		return nil, err
	}
	return &history, nil
}

// call performs one backend operation and decodes a 2xx body into out
func (c *Client) call(ctx context.Context, op, method, path string, body interface{}, retry bool, out interface{}) error {
	start := time.Now()
	resp, err := c.doRequest(ctx, method, path, body, retry)
	metrics.BackendRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(op, "error").Inc()
		return err
	}
	defer resp.Body.Close()
	metrics.BackendRequestsTotal.WithLabelValues(op, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.statusError(ctx, op, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode %s response: %v", domain.ErrBackendUnavailable, op, err)
	}
	return nil
}

// statusError maps a non-2xx response to a domain error
func (c *Client) statusError(ctx context.Context, op string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var errResp errorResponse
	_ = json.Unmarshal(raw, &errResp)

	logger.FromContext(ctx).Warn(LogMsgBackendRejects, "operation", op, "status", resp.StatusCode, "code", errResp.Code)

	var base error
	switch {
	case errResp.Code != "":
		base = domain.ErrorForCode(errResp.Code)
	case resp.StatusCode == http.StatusPaymentRequired:
		base = domain.ErrInsufficientBalance
	case resp.StatusCode == http.StatusTooManyRequests:
		base = domain.ErrDailyLimitReached
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		base = domain.ErrUnauthorized
	case resp.StatusCode >= 500:
		base = domain.ErrBackendUnavailable
	default:
		base = domain.ErrBackendRejected
	}

	if msg := errResp.text(); msg != "" {
		return fmt.Errorf("%w: %s", base, msg)
	}
	return fmt.Errorf("%w: status %d", base, resp.StatusCode)
}

// doRequest performs an HTTP request, retrying transport failures and 5xx
// responses with exponential backoff when retry is set
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}, retry bool) (*http.Response, error) {
	var reqBody []byte
	var err error

	if body != nil {
		reqBody, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
	}

	target := c.BaseURL + path
	log := logger.FromContext(ctx)

	maxRetries := 0
	if retry {
		maxRetries = c.MaxRetries
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			delay := c.RetryDelay * time.Duration(1<<uint(attempt-1))
			log.Info(LogMsgRetrying, "attempt", attempt, "path", path, "delay", delay)
			if err := sleep(ctx, delay); err != nil {
				return nil, fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
			}
		}

		req, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(reqBody))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if token := AuthTokenFromContext(ctx); token != "" {
			req.Header.Set("Authorization", token)
		}
		if id := logger.GetRequestID(ctx); id != "" {
			req.Header.Set("X-Request-ID", id)
		}

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			lastErr = err
			log.Warn(LogMsgRequestFailed, "error", err, "attempt", attempt, "path", path)
			if ctx.Err() != nil {
				break
			}
			continue
		}

		// Success or non-retryable error
		if resp.StatusCode < 500 || attempt == maxRetries {
			return resp, nil
		}

		// Server error - retry
		resp.Body.Close()
		lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
		log.Warn(LogMsgServerError, "status", resp.StatusCode, "attempt", attempt, "path", path)
	}

	return nil, fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, lastErr)
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
