package session

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/miky21x21/tribal-fashion-sub001/internal/auth"
)

const testSecret = "test-secret"

func signClaims(t *testing.T, claims Claims) string {
	t.Helper()
	if claims.ExpiresAt == nil {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Hour))
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return tok
}

func TestVerifyMapsClaims(t *testing.T) {
	v := NewTokenVerifier(testSecret)

	tok := signClaims(t, Claims{
		Email:     "ada@example.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Role:      "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: "u1",
		},
	})

	id, err := v.Verify(tok)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if id.ID != "u1" || id.Email != "ada@example.com" || id.Role != "admin" {
		t.Fatalf("unexpected identity %+v", id)
	}
	if id.TokenKind != auth.TokenKindStateful {
		t.Fatalf("want STATEFUL, got %s", id.TokenKind)
	}
}

func TestVerifySplitsSingleNameClaim(t *testing.T) {
	v := NewTokenVerifier(testSecret)

	tests := []struct {
		name      string
		wantFirst string
		wantLast  string
	}{
		{"Ada Lovelace", "Ada", "Lovelace"},
		{"Ada King Lovelace", "Ada", "King Lovelace"},
		{"Ada", "Ada", ""},
	}

	for _, tt := range tests {
		tok := signClaims(t, Claims{
			ID:    "u1",
			Email: "ada@example.com",
			Name:  tt.name,
		})
		id, err := v.Verify(tok)
		if err != nil {
			t.Fatalf("Verify(%q): %v", tt.name, err)
		}
		if id.FirstName != tt.wantFirst || id.LastName != tt.wantLast {
			t.Errorf("split %q = (%q, %q), want (%q, %q)",
				tt.name, id.FirstName, id.LastName, tt.wantFirst, tt.wantLast)
		}
	}
}

func TestVerifyDefaultsRole(t *testing.T) {
	v := NewTokenVerifier(testSecret)
	tok := signClaims(t, Claims{ID: "u1", Email: "a@b.com"})
	id, err := v.Verify(tok)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if id.Role != auth.DefaultRole {
		t.Fatalf("want default role, got %q", id.Role)
	}
}

func TestVerifyRejectsBadSignatureAndExpiry(t *testing.T) {
	v := NewTokenVerifier(testSecret)

	other, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		ID:    "u1",
		Email: "a@b.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("wrong-secret"))

	if _, err := v.Verify(other); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("wrong secret: want ErrInvalidToken, got %v", err)
	}

	expired := signClaims(t, Claims{
		ID:    "u1",
		Email: "a@b.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	if _, err := v.Verify(expired); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expired: want ErrInvalidToken, got %v", err)
	}
}

func TestIssueRoundTrip(t *testing.T) {
	v := NewTokenVerifier(testSecret)
	tok, err := v.Issue(&auth.Identity{
		ID:    "u9",
		Email: "x@y.com",
		Role:  "user",
	}, time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	id, err := v.Verify(tok)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if id.ID != "u9" {
		t.Fatalf("unexpected identity %+v", id)
	}
}
