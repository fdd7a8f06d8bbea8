package session

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/miky21x21/tribal-fashion-sub001/internal/auth"
)

var ErrInvalidToken = errors.New("session: invalid token")

// Claims is the session cookie token's payload. The subject may arrive as
// the registered `sub` claim or a legacy `id` claim; the name either as one
// `name` field or split firstName/lastName fields.
type Claims struct {
	ID        string `json:"id,omitempty"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Role      string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// TokenVerifier validates session cookie tokens locally with a shared
// secret. No network call is involved.
type TokenVerifier struct {
	secret []byte
}

func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

// Verify checks signature and expiry and maps the claims onto an Identity
// with TokenKindStateful.
func (v *TokenVerifier) Verify(tokenStr string) (*auth.Identity, error) {
	claims := new(Claims)
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))

	token, err := parser.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	subject := claims.Subject
	if subject == "" {
		subject = claims.ID
	}
	if subject == "" || claims.Email == "" {
		return nil, ErrInvalidToken
	}

	firstName, lastName := claims.FirstName, claims.LastName
	if firstName == "" && lastName == "" && claims.Name != "" {
		firstName, lastName = SplitName(claims.Name)
	}

	role := claims.Role
	if role == "" {
		role = auth.DefaultRole
	}

	return &auth.Identity{
		ID:        subject,
		Email:     claims.Email,
		FirstName: firstName,
		LastName:  lastName,
		Role:      role,
		TokenKind: auth.TokenKindStateful,
	}, nil
}

// Issue signs a session token for the given identity. Used by tests and the
// OAuth redirect flow; normal logins carry the backend-issued token instead.
func (v *TokenVerifier) Issue(identity *auth.Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email:     identity.Email,
		FirstName: identity.FirstName,
		LastName:  identity.LastName,
		Role:      identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

// SplitName splits a single display name on the first space: the first token
// becomes the first name, the remainder the last name. No space means an
// empty last name.
func SplitName(name string) (first, last string) {
	name = strings.TrimSpace(name)
	i := strings.IndexByte(name, ' ')
	if i < 0 {
		return name, ""
	}
	return name[:i], strings.TrimSpace(name[i+1:])
}
