// Package login normalizes five structurally different login strategies
// into one backend call and one response shape.
package login

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/miky21x21/tribal-fashion-sub001/internal/accounts"
)

var ErrUnsupportedProvider = errors.New("login: unsupported provider")

// Error is a dispatch failure with the backend's original status code and a
// provider-specific user-facing message.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("login: %s (status %d)", e.Message, e.Status)
}

// User is the canonical user shape inside a login response, identical for
// every provider.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Role         string `json:"role"`
	AuthProvider string `json:"authProvider"`
	PhoneNumber  string `json:"phoneNumber,omitempty"`
	ProviderID   string `json:"providerId,omitempty"`
}

// Response is the canonical login envelope. Callers never need to know
// which provider produced it.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

// Backend is the slice of the accounts client the dispatcher needs.
type Backend interface {
	CredentialLogin(ctx context.Context, email, password string) (*accounts.LoginResult, error)
	SocialLogin(ctx context.Context, provider, token string, profile accounts.Profile) (*accounts.LoginResult, error)
	PhoneLogin(ctx context.Context, phoneNumber, code string) (*accounts.LoginResult, error)
}

// Dispatcher switches on the request's provider tag, makes exactly one
// backend call, and re-shapes the result. Failures are never retried.
type Dispatcher struct {
	backend Backend
}

func NewDispatcher(backend Backend) *Dispatcher {
	return &Dispatcher{backend: backend}
}

func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (*Response, error) {
	var (
		result *accounts.LoginResult
		err    error
	)

	switch r := req.(type) {
	case PasswordRequest:
		result, err = d.backend.CredentialLogin(ctx, r.Email, r.Password)
	case GoogleRequest:
		result, err = d.backend.SocialLogin(ctx, string(ProviderGoogle), r.Token, r.Profile)
	case AppleRequest:
		result, err = d.backend.SocialLogin(ctx, string(ProviderApple), r.IdentityToken, r.Profile)
	case PhoneRequest:
		result, err = d.backend.PhoneLogin(ctx, r.PhoneNumber, r.Code)
	default:
		return nil, ErrUnsupportedProvider
	}

	if err != nil {
		var upstream *accounts.UpstreamError
		if errors.As(err, &upstream) {
			return nil, &Error{
				Status:  upstream.Status,
				Message: failureMessage(req.Provider()),
			}
		}
		return nil, &Error{
			Status:  http.StatusBadGateway,
			Message: failureMessage(req.Provider()),
		}
	}

	role := result.User.Role
	if role == "" {
		role = "user"
	}

	return &Response{
		Success: true,
		Message: result.Message,
		Token:   result.Token,
		User: User{
			ID:           result.User.ID,
			Email:        result.User.Email,
			FirstName:    result.User.FirstName,
			LastName:     result.User.LastName,
			Role:         role,
			AuthProvider: string(req.Provider()),
			PhoneNumber:  result.User.PhoneNumber,
			ProviderID:   result.User.ProviderID,
		},
	}, nil
}

func failureMessage(p Provider) string {
	switch p {
	case ProviderPassword:
		return "Invalid email or password"
	case ProviderGoogle:
		return "Google authentication failed"
	case ProviderApple:
		return "Apple authentication failed"
	case ProviderPhone:
		return "Phone authentication failed"
	default:
		return "Authentication failed"
	}
}
