package verifier

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/miky21x21/tribal-fashion-sub001/internal/accounts"
	"github.com/miky21x21/tribal-fashion-sub001/internal/auth"
	"github.com/miky21x21/tribal-fashion-sub001/internal/session"
)

type fakeAccounts struct {
	subjects map[string]*accounts.Subject
	down     bool
}

func (f *fakeAccounts) VerifyToken(ctx context.Context, bearer string) (*accounts.Subject, error) {
	if f.down {
		return nil, accounts.ErrUnavailable
	}
	if s, ok := f.subjects[bearer]; ok {
		return s, nil
	}
	return nil, errors.New("accounts: identity service unavailable: status 401")
}

func testChain(fa *fakeAccounts) (*Chain, *session.TokenVerifier) {
	tokens := session.NewTokenVerifier("chain-secret")
	return NewChain(
		NewBearerStrategy(fa),
		NewSessionTokenStrategy(tokens),
	), tokens
}

func TestBearerResolvesStateless(t *testing.T) {
	chain, _ := testChain(&fakeAccounts{subjects: map[string]*accounts.Subject{
		"good": {ID: "u1", Email: "a@b.com", Role: "user"},
	}})

	id, err := chain.Resolve(context.Background(), Credentials{Bearer: "good"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if id == nil || id.TokenKind != auth.TokenKindStateless {
		t.Fatalf("want stateless identity, got %+v", id)
	}
}

func TestBearerFailureFallsThroughToSession(t *testing.T) {
	chain, tokens := testChain(&fakeAccounts{down: true})

	cookieTok, err := tokens.Issue(&auth.Identity{ID: "u2", Email: "c@d.com", Role: "user"}, time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	id, err := chain.Resolve(context.Background(), Credentials{
		Bearer:       "stale",
		SessionToken: cookieTok,
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if id == nil || id.TokenKind != auth.TokenKindStateful {
		t.Fatalf("want stateful fallback identity, got %+v", id)
	}
	if id.ID != "u2" {
		t.Fatalf("unexpected subject %q", id.ID)
	}
}

func TestBearerOutranksSession(t *testing.T) {
	chain, tokens := testChain(&fakeAccounts{subjects: map[string]*accounts.Subject{
		"svc": {ID: "service-1", Email: "svc@b.com", Role: "admin"},
	}})

	cookieTok, _ := tokens.Issue(&auth.Identity{ID: "u2", Email: "c@d.com", Role: "user"}, time.Hour)

	id, err := chain.Resolve(context.Background(), Credentials{
		Bearer:       "svc",
		SessionToken: cookieTok,
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if id.ID != "service-1" || id.TokenKind != auth.TokenKindStateless {
		t.Fatalf("bearer should win, got %+v", id)
	}
}

func TestAnonymousIsNotAnError(t *testing.T) {
	chain, _ := testChain(&fakeAccounts{})
	id, err := chain.Resolve(context.Background(), Credentials{})
	if err != nil || id != nil {
		t.Fatalf("anonymous: want (nil, nil), got (%+v, %v)", id, err)
	}
}

func TestUnavailableSurfacesWhenNothingResolves(t *testing.T) {
	chain, _ := testChain(&fakeAccounts{down: true})
	id, err := chain.Resolve(context.Background(), Credentials{Bearer: "any"})
	if id != nil {
		t.Fatalf("unexpected identity %+v", id)
	}
	if !errors.Is(err, ErrVerificationUnavailable) {
		t.Fatalf("want ErrVerificationUnavailable, got %v", err)
	}
}

func TestInvalidSessionTokenReadsAnonymous(t *testing.T) {
	chain, _ := testChain(&fakeAccounts{})
	id, err := chain.Resolve(context.Background(), Credentials{SessionToken: "garbage"})
	if err != nil || id != nil {
		t.Fatalf("invalid cookie: want (nil, nil), got (%+v, %v)", id, err)
	}
}

func TestFromRequest(t *testing.T) {
	r, _ := http.NewRequest(http.MethodGet, "/dashboard", nil)
	r.Header.Set("Authorization", "Bearer abc")
	r.AddCookie(&http.Cookie{Name: session.CookieName, Value: "xyz"})

	creds := FromRequest(r)
	if creds.Bearer != "abc" || creds.SessionToken != "xyz" {
		t.Fatalf("unexpected credentials %+v", creds)
	}
}
