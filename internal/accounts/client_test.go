package accounts

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestVerifyTokenSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/verify" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("unexpected auth header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"u1","email":"a@b.com","firstName":"Ada","lastName":"Lovelace","role":"user"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second)
	subject, err := client.VerifyToken(context.Background(), "tok-123")
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if subject.ID != "u1" || subject.Email != "a@b.com" {
		t.Fatalf("unexpected subject %+v", subject)
	}
}

func TestVerifyTokenNon2xxIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second)
	_, err := client.VerifyToken(context.Background(), "stale")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("want ErrUnavailable, got %v", err)
	}
}

func TestVerifyTokenNetworkFailure(t *testing.T) {
	client := New("http://127.0.0.1:1", 200*time.Millisecond)
	_, err := client.VerifyToken(context.Background(), "tok")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("want ErrUnavailable, got %v", err)
	}
}

func TestLoginUpstreamFailureKeepsStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"message":"Invalid credentials"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second)
	_, err := client.CredentialLogin(context.Background(), "a@b.com", "nope")

	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("want UpstreamError, got %v", err)
	}
	if upstream.Status != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", upstream.Status)
	}
	if upstream.Message != "Invalid credentials" {
		t.Fatalf("unexpected message %q", upstream.Message)
	}
}

func TestLoginSuccessEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/phone-login" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"message":"ok","token":"jwt","user":{"id":"u2","email":"p@b.com","role":"user","phoneNumber":"+15551234567"}}`))
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second)
	res, err := client.PhoneLogin(context.Background(), "+15551234567", "123456")
	if err != nil {
		t.Fatalf("PhoneLogin: %v", err)
	}
	if !res.Success || res.Token != "jwt" || res.User.PhoneNumber != "+15551234567" {
		t.Fatalf("unexpected result %+v", res)
	}
}
