package accounts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrUnavailable means the identity service could not be reached or did not
// accept the verification call. It reads as "could not verify", never as
// "forbidden".
var ErrUnavailable = errors.New("accounts: identity service unavailable")

// UpstreamError carries a failed login call's backend status and message.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("accounts: upstream returned %d: %s", e.Status, e.Message)
}

// Subject is the record the identity service returns for a verified bearer
// token.
type Subject struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

// User is the identity service's user record inside a login envelope.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Role        string `json:"role"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	ProviderID  string `json:"providerId,omitempty"`
}

// LoginResult is the envelope every login endpoint of the identity service
// returns.
type LoginResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

// Profile is the normalized social profile forwarded with social logins.
type Profile struct {
	ProviderID string `json:"providerId"`
	Email      string `json:"email"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
}

// Client talks to the external identity service. This core never stores
// credentials or issues tokens itself; it verifies and dispatches.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// VerifyToken asks the identity service to confirm an opaque bearer token.
// Any transport failure or non-2xx status maps to ErrUnavailable.
func (c *Client) VerifyToken(ctx context.Context, bearer string) (*Subject, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/verify", nil)
	if err != nil {
		return nil, fmt.Errorf("accounts: build verify request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+bearer)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var subject Subject
	if err := json.NewDecoder(resp.Body).Decode(&subject); err != nil {
		return nil, fmt.Errorf("%w: decode subject: %s", ErrUnavailable, err)
	}
	return &subject, nil
}

// CredentialLogin performs an email+password login.
func (c *Client) CredentialLogin(ctx context.Context, email, password string) (*LoginResult, error) {
	return c.login(ctx, "/api/auth/login", map[string]any{
		"email":    email,
		"password": password,
	})
}

// SocialLogin performs a social login with a provider-verified token and the
// normalized profile extracted from it.
func (c *Client) SocialLogin(ctx context.Context, provider, token string, profile Profile) (*LoginResult, error) {
	return c.login(ctx, "/api/auth/social-login", map[string]any{
		"provider": provider,
		"token":    token,
		"profile":  profile,
	})
}

// PhoneLogin performs a phone-number login. The OTP must already have been
// verified by the caller; the code travels along for the backend's audit
// trail only.
func (c *Client) PhoneLogin(ctx context.Context, phoneNumber, code string) (*LoginResult, error) {
	return c.login(ctx, "/api/auth/phone-login", map[string]any{
		"phoneNumber": phoneNumber,
		"code":        code,
	})
}

func (c *Client) login(ctx context.Context, path string, payload map[string]any) (*LoginResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("accounts: marshal login payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("accounts: build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var result LoginResult
	decodeErr := json.NewDecoder(resp.Body).Decode(&result)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := result.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &UpstreamError{Status: resp.StatusCode, Message: msg}
	}

	if decodeErr != nil {
		return nil, fmt.Errorf("accounts: decode login response: %w", decodeErr)
	}
	return &result, nil
}
