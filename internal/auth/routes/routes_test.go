package routes

import "testing"

func TestIsProtected(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/", false},
		{"/shop", false},
		{"/shop/saree-42", false},
		{"/about", false},
		{"/contact", false},
		{"/_next/static/chunk.js", false},
		{"/favicon.ico", false},
		{"/health", false},

		{"/dashboard", true},
		{"/dashboard/settings", true},
		{"/profile", true},
		{"/orders", true},
		{"/admin", true},
		{"/admin/products", true},
		{"/api/orders", true},
		{"/api/orders/123", true},
		{"/api/profile", true},
		{"/api/admin/users", true},

		// Reachable anonymously so clients can probe session state.
		{"/api/auth/me", false},
		{"/api/auth/login", false},

		// Unlisted paths fail open for routing.
		{"/blog/post-1", false},
		{"/api/products", false},
	}

	for _, tt := range tests {
		if got := IsProtected(tt.path); got != tt.want {
			t.Errorf("IsProtected(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestExemptPathsAreNotMerelyUnprotected(t *testing.T) {
	for _, path := range []string{"/", "/shop", "/about", "/contact", "/_next/app.js", "/api/auth/me"} {
		if !IsExempt(path) {
			t.Errorf("IsExempt(%q) = false, want true", path)
		}
	}
	for _, path := range []string{"/dashboard", "/api/orders/1", "/blog"} {
		if IsExempt(path) {
			t.Errorf("IsExempt(%q) = true, want false", path)
		}
	}
}
