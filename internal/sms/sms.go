package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/miky21x21/tribal-fashion-sub001/internal/logger"
)

// ErrDeliveryFailed marks gateway failures, distinct from OTP store errors.
var ErrDeliveryFailed = errors.New("sms: delivery failed")

// Sender delivers a text message to a phone number. Rate limiting and
// carrier concerns live behind the gateway, not here.
type Sender interface {
	Send(ctx context.Context, to, body string) error
}

// Gateway posts messages to an HTTP SMS gateway.
type Gateway struct {
	url   string
	token string
	http  *http.Client
}

func NewGateway(url, token string) *Gateway {
	return &Gateway{
		url:   url,
		token: token,
		http:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *Gateway) Send(ctx context.Context, to, body string) error {
	payload, err := json.Marshal(map[string]string{
		"to":   to,
		"body": body,
	})
	if err != nil {
		return fmt.Errorf("%w: %s", ErrDeliveryFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrDeliveryFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	resp, err := g.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrDeliveryFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: gateway status %d", ErrDeliveryFailed, resp.StatusCode)
	}
	return nil
}

// LogSender logs instead of delivering. Used when no gateway is configured.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, to, body string) error {
	logger.Info("sms gateway not configured, dropping message", map[string]any{
		"to": to,
	})
	return nil
}
