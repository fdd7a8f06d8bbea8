// Package verifier resolves a caller identity from either of two credential
// shapes: an opaque bearer token checked remotely, or a signed session
// cookie token decoded locally. The two paths form an explicit ordered
// strategy chain, not nested error recovery.
package verifier

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/miky21x21/tribal-fashion-sub001/internal/auth"
	"github.com/miky21x21/tribal-fashion-sub001/internal/logger"
	"github.com/miky21x21/tribal-fashion-sub001/internal/session"
)

// ErrVerificationUnavailable means the remote bearer check failed for
// infrastructure reasons and no later strategy resolved an identity. The
// gate degrades it to anonymous; it never surfaces to the caller.
var ErrVerificationUnavailable = errors.New("verifier: identity service unavailable")

// Credentials is the raw credential material of one request. At most one of
// the two fields is honored; both absent means anonymous.
type Credentials struct {
	Bearer       string
	SessionToken string
}

// FromRequest extracts credential material from the Authorization header and
// the session cookie.
func FromRequest(r *http.Request) Credentials {
	var creds Credentials

	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		creds.Bearer = strings.TrimPrefix(h, "Bearer ")
	}

	if cookie, err := r.Cookie(session.CookieName); err == nil {
		creds.SessionToken = cookie.Value
	}

	return creds
}

// Strategy is one verification path. A (nil, nil) return means the strategy
// has nothing to say about this request and the chain moves on.
type Strategy interface {
	Name() string
	Verify(ctx context.Context, creds Credentials) (*auth.Identity, error)
}

// Chain tries its strategies in a fixed order. Bearer comes first so a
// service-to-service call outranks a stale browser session on the same
// request.
type Chain struct {
	strategies []Strategy
}

func NewChain(strategies ...Strategy) *Chain {
	return &Chain{strategies: strategies}
}

// Resolve walks the chain. It returns (nil, nil) for an anonymous caller and
// ErrVerificationUnavailable only when a remote check failed for
// infrastructure reasons and nothing later resolved.
func (c *Chain) Resolve(ctx context.Context, creds Credentials) (*auth.Identity, error) {
	var unavailable error

	for _, s := range c.strategies {
		identity, err := s.Verify(ctx, creds)
		if identity != nil {
			return identity, nil
		}
		if err == nil {
			continue
		}
		if errors.Is(err, ErrVerificationUnavailable) {
			// Recoverable: a caller may carry a stale bearer alongside a
			// valid session. Remember and keep walking.
			unavailable = err
			continue
		}
		logger.Warn("credential rejected", map[string]any{
			"strategy": s.Name(),
			"error":    err.Error(),
		})
	}

	if unavailable != nil {
		return nil, unavailable
	}
	return nil, nil
}
