package apple

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/miky21x21/tribal-fashion-sub001/internal/accounts"
	"github.com/miky21x21/tribal-fashion-sub001/internal/logger"
)

const (
	providerName = "apple"
	issuerURL    = "https://appleid.apple.com"
)

// Provider verifies Sign in with Apple identity tokens. Apple hands the
// identity token to the client directly, so unlike google there is no code
// exchange here; the token itself is the credential.
type Provider struct {
	verifier *oidc.IDTokenVerifier
}

// New initializes the Apple OIDC verifier using discovery.
func New(
	ctx context.Context,
	clientID string,
) (*Provider, error) {

	if clientID == "" {
		return nil, errors.New("apple oauth config missing client id")
	}

	oidcProvider, err := oidc.NewProvider(ctx, issuerURL)
	if err != nil {
		return nil, fmt.Errorf("failed to init apple oidc provider: %w", err)
	}

	verifier := oidcProvider.Verifier(&oidc.Config{
		ClientID: clientID,
	})

	return &Provider{
		verifier: verifier,
	}, nil
}

// Name returns the provider identifier used by the registry.
func (p *Provider) Name() string {
	return providerName
}

// Verify validates the identity token's signature, issuer, audience, and
// expiry against Apple's published keys. Apple only includes the user's
// name on first authorization, and then only in the request body, so the
// profile carries subject and email; the handler merges client-supplied
// names on top.
func (p *Provider) Verify(
	ctx context.Context,
	credential string,
	codeVerifier string,
) (string, accounts.Profile, error) {

	idToken, err := p.verifier.Verify(ctx, credential)
	if err != nil {
		logger.Error("apple identity token verification failed", map[string]any{
			"error": err.Error(),
		})
		return "", accounts.Profile{}, fmt.Errorf("apple identity token verification failed: %w", err)
	}

	var claims struct {
		Subject string `json:"sub"`
		Email   string `json:"email"`
	}

	if err := idToken.Claims(&claims); err != nil {
		return "", accounts.Profile{}, fmt.Errorf("apple identity token claims parse failed: %w", err)
	}

	if claims.Subject == "" {
		return "", accounts.Profile{}, errors.New("apple identity token missing subject")
	}

	return credential, accounts.Profile{
		ProviderID: claims.Subject,
		Email:      claims.Email,
	}, nil
}
