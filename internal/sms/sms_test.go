package sms

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGatewaySend(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer gw-token" {
			t.Errorf("missing gateway auth header")
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	g := NewGateway(srv.URL, "gw-token")
	if err := g.Send(context.Background(), "+15551234567", "Your code is 123456"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if got["to"] != "+15551234567" || got["body"] == "" {
		t.Fatalf("unexpected payload %v", got)
	}
}

func TestGatewayFailureIsDeliveryFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	g := NewGateway(srv.URL, "")
	err := g.Send(context.Background(), "+15551234567", "hi")
	if !errors.Is(err, ErrDeliveryFailed) {
		t.Fatalf("want ErrDeliveryFailed, got %v", err)
	}
}
