package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"store-pickup/internal/pkg/config"
	"store-pickup/internal/pkg/errs"
	"store-pickup/internal/usecase/commands"

	"github.com/sony/gobreaker/v2"
)

const (
	capturePath     = "/v1/captures"
	statusSucceeded = "succeeded"
	statusDeclined  = "declined"
)

type captureRequest struct {
	Amount         string `json:"amount"`
	Currency       string `json:"currency"`
	PaymentMethod  string `json:"payment_method"`
	IdempotencyKey string `json:"idempotency_key"`
}

type captureResponse struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	DeclineReason string `json:"decline_reason,omitempty"`
}

// Client captures payments over the provider's JSON API behind a circuit breaker.
// Declines are business outcomes and do not trip the breaker.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	breaker    *gobreaker.CircuitBreaker[*commands.CaptureResult]
}

func NewClient(cfg config.PaymentConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	settings := gobreaker.Settings{
		Name:        "payment-capture",
		MaxRequests: 1,
		Timeout:     cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, errs.ErrPaymentDeclined)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String())
		},
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		breaker:    gobreaker.NewCircuitBreaker[*commands.CaptureResult](settings),
	}
}

func (c *Client) Capture(ctx context.Context, req commands.CaptureRequest) (*commands.CaptureResult, error) {
	res, err := c.breaker.Execute(func() (*commands.CaptureResult, error) {
		return c.capture(ctx, req)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, errs.Mark(err, errs.ErrPaymentUnavailable)
	}
	return res, err
}

func (c *Client) capture(ctx context.Context, req commands.CaptureRequest) (*commands.CaptureResult, error) {
	body, err := json.Marshal(captureRequest{
		Amount:         req.Amount.StringFixed(2),
		Currency:       req.Currency,
		PaymentMethod:  req.MethodRef,
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal capture request failed: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+capturePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build capture request failed: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Idempotency-Key", req.IdempotencyKey)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "capture request failed"), errs.ErrPaymentUnavailable)
	}
	defer resp.Body.Close()

	slog.DebugContext(ctx, "payment capture response",
		"status_code", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, errs.Mark(errs.Newf("payment provider returned %d", resp.StatusCode), errs.ErrPaymentUnavailable)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "read capture response failed"), errs.ErrPaymentUnavailable)
	}

	var out captureResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, errs.Mark(errs.Wrap(err, "decode capture response failed"), errs.ErrPaymentUnavailable)
	}

	if resp.StatusCode == http.StatusPaymentRequired || out.Status == statusDeclined {
		return nil, errs.WithDetail(errs.ErrPaymentDeclined, out.DeclineReason)
	}
	if resp.StatusCode >= http.StatusBadRequest || out.Status != statusSucceeded || out.ID == "" {
		return nil, errs.Newf("unexpected capture response: status code %d, status %q", resp.StatusCode, out.Status)
	}

	return &commands.CaptureResult{Reference: out.ID}, nil
}
