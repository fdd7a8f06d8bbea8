package verifier

import (
	"context"

	"github.com/miky21x21/tribal-fashion-sub001/internal/auth"
	"github.com/miky21x21/tribal-fashion-sub001/internal/session"
)

// SessionTokenStrategy decodes the signed session cookie token locally.
// It only runs when the bearer path produced no identity.
type SessionTokenStrategy struct {
	tokens *session.TokenVerifier
}

func NewSessionTokenStrategy(tokens *session.TokenVerifier) *SessionTokenStrategy {
	return &SessionTokenStrategy{tokens: tokens}
}

func (s *SessionTokenStrategy) Name() string { return "session-token" }

func (s *SessionTokenStrategy) Verify(ctx context.Context, creds Credentials) (*auth.Identity, error) {
	if creds.SessionToken == "" {
		return nil, nil
	}
	return s.tokens.Verify(creds.SessionToken)
}
