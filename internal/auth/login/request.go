package login

import "github.com/miky21x21/tribal-fashion-sub001/internal/accounts"

// Provider tags a login request. The set is closed; an unknown tag never
// falls through to a default provider.
type Provider string

const (
	ProviderPassword Provider = "password"
	ProviderGoogle   Provider = "google"
	ProviderApple    Provider = "apple"
	ProviderPhone    Provider = "phone"
)

// Request is the provider-tagged login union. Each variant carries only the
// fields its provider needs; the sealed method keeps the set closed to this
// package.
type Request interface {
	Provider() Provider
}

// PasswordRequest is a classic email+password login.
type PasswordRequest struct {
	Email    string
	Password string
}

func (PasswordRequest) Provider() Provider { return ProviderPassword }

// GoogleRequest carries a provider-verified token and the profile already
// extracted from it. Token exchange happens upstream of dispatch.
type GoogleRequest struct {
	Token   string
	Profile accounts.Profile
}

func (GoogleRequest) Provider() Provider { return ProviderGoogle }

// AppleRequest carries the Apple identity token plus the raw profile Apple
// hands over on first authorization.
type AppleRequest struct {
	IdentityToken string
	Profile       accounts.Profile
}

func (AppleRequest) Provider() Provider { return ProviderApple }

// PhoneRequest is a phone+OTP login. The OTP must already have been
// verified against the store before dispatch is reached.
type PhoneRequest struct {
	PhoneNumber string
	Code        string
}

func (PhoneRequest) Provider() Provider { return ProviderPhone }
