package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/miky21x21/tribal-fashion-sub001/internal/auth"
	"github.com/miky21x21/tribal-fashion-sub001/internal/auth/routes"
	"github.com/miky21x21/tribal-fashion-sub001/internal/auth/verifier"
	"github.com/miky21x21/tribal-fashion-sub001/internal/logger"
)

// unexported, collision-proof context key
type identityContextKeyType struct{}

var identityKey = identityContextKeyType{}

// IdentityFromContext extracts the resolved caller from context. The second
// return is false for anonymous requests.
func IdentityFromContext(ctx context.Context) (*auth.Identity, bool) {
	id, ok := ctx.Value(identityKey).(*auth.Identity)
	return id, ok
}

// identityHeaders is the header-equivalent identity channel the gate owns.
// Client-supplied values are dropped before verification runs.
var identityHeaders = []string{"X-User-Id", "X-User-Email", "X-User-Role", "X-Token-Kind"}

// IdentityResolver is the slice of the verifier chain the gate needs.
type IdentityResolver interface {
	Resolve(ctx context.Context, creds verifier.Credentials) (*auth.Identity, error)
}

// Gate intercepts every request once: exempt paths pass untouched, everything
// else gets identity resolution, and protected paths without identity are
// rejected. The gate attaches context only; it never mutates persistent
// state.
type Gate struct {
	Resolver IdentityResolver
}

func NewGate(resolver IdentityResolver) *Gate {
	return &Gate{Resolver: resolver}
}

func (g *Gate) Intercept(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		// 1. Exempt paths bypass verification entirely.
		if routes.IsExempt(path) {
			next.ServeHTTP(w, r)
			return
		}

		// 2. The identity headers are gate-owned. Strip whatever the client
		// sent so downstream readers only ever see values set in step 5.
		for _, name := range identityHeaders {
			r.Header.Del(name)
		}

		// 3. Resolve the caller from whichever credential shape is present.
		identity, err := g.Resolver.Resolve(r.Context(), verifier.FromRequest(r))
		if errors.Is(err, verifier.ErrVerificationUnavailable) {
			// Degraded-open: an unreachable identity service reads as
			// anonymous rather than a hard outage for public routes.
			logger.Warn("identity service unavailable, treating request as anonymous", map[string]any{
				"path": path,
			})
			identity = nil
		}

		// 4. Protected path with no identity: reject. API gate, no redirect.
		if identity == nil {
			if routes.IsProtected(path) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"success": false,
					"message": "Authentication required",
				})
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		// 5. Publish the identity to downstream handlers: typed context
		// value plus header-equivalent metadata, so a handler can tell a
		// server-verified caller from a locally-decoded one.
		ctx := context.WithValue(r.Context(), identityKey, identity)
		r = r.WithContext(ctx)
		r.Header.Set("X-User-Id", identity.ID)
		r.Header.Set("X-User-Email", identity.Email)
		r.Header.Set("X-User-Role", identity.Role)
		r.Header.Set("X-Token-Kind", string(identity.TokenKind))

		next.ServeHTTP(w, r)
	})
}
