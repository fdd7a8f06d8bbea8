package provider

import (
	"context"

	"github.com/miky21x21/tribal-fashion-sub001/internal/accounts"
)

// Provider verifies a provider-issued credential (an authorization code for
// google, an identity token for apple) and returns the token to forward to
// the identity service plus the normalized profile extracted from it.
// Implementations return identity facts only and must not perform user
// creation, linking, or session management.
type Provider interface {
	// Name returns the provider identifier (e.g. "google", "apple").
	Name() string

	// Verify validates the credential with the provider. codeVerifier is
	// the PKCE verifier for redirect flows and empty otherwise.
	Verify(
		ctx context.Context,
		credential string,
		codeVerifier string,
	) (token string, profile accounts.Profile, err error)
}

// RedirectProvider additionally supports the browser redirect flow.
type RedirectProvider interface {
	Provider

	// AuthCodeURL returns the OAuth authorization URL. State and PKCE
	// parameters are provided by the caller.
	AuthCodeURL(state string, codeChallenge string) string
}
