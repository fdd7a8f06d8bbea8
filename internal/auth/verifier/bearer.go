package verifier

import (
	"context"
	"errors"
	"fmt"

	"github.com/miky21x21/tribal-fashion-sub001/internal/accounts"
	"github.com/miky21x21/tribal-fashion-sub001/internal/auth"
)

// BearerVerifier is the slice of the accounts client the bearer strategy
// needs.
type BearerVerifier interface {
	VerifyToken(ctx context.Context, bearer string) (*accounts.Subject, error)
}

// BearerStrategy confirms opaque bearer tokens with the identity service.
// The token is never decoded locally.
type BearerStrategy struct {
	accounts BearerVerifier
}

func NewBearerStrategy(accounts BearerVerifier) *BearerStrategy {
	return &BearerStrategy{accounts: accounts}
}

func (s *BearerStrategy) Name() string { return "bearer" }

func (s *BearerStrategy) Verify(ctx context.Context, creds Credentials) (*auth.Identity, error) {
	if creds.Bearer == "" {
		return nil, nil
	}

	subject, err := s.accounts.VerifyToken(ctx, creds.Bearer)
	if err != nil {
		if errors.Is(err, accounts.ErrUnavailable) {
			return nil, fmt.Errorf("%w: %s", ErrVerificationUnavailable, err)
		}
		return nil, err
	}

	role := subject.Role
	if role == "" {
		role = auth.DefaultRole
	}

	return &auth.Identity{
		ID:        subject.ID,
		Email:     subject.Email,
		FirstName: subject.FirstName,
		LastName:  subject.LastName,
		Role:      role,
		TokenKind: auth.TokenKindStateless,
	}, nil
}
