// Package routes decides whether a path requires a resolved identity.
// Pure string matching, no I/O; the gate consults it on every request.
package routes

import "strings"

// Exempt prefixes bypass the gate entirely: static assets and the auth
// endpoints themselves. /api/auth/ covers /api/auth/me, which must stay
// reachable anonymously so clients can probe session state.
var exemptPrefixes = []string{
	"/_next/",
	"/static/",
	"/favicon.ico",
	"/api/auth/",
	"/health",
}

// Public marketing pages, matched exactly or as a subtree.
var publicPages = []string{
	"/",
	"/shop",
	"/about",
	"/contact",
}

// Protected prefixes require a resolved identity: order management, profile,
// admin, and their API counterparts.
var protectedPrefixes = []string{
	"/dashboard",
	"/profile",
	"/orders",
	"/admin",
	"/api/orders",
	"/api/profile",
	"/api/admin",
}

// IsExempt reports whether the gate should forward the request untouched,
// without even attempting verification.
func IsExempt(path string) bool {
	for _, p := range exemptPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	for _, p := range publicPages {
		if path == p || (p != "/" && strings.HasPrefix(path, p+"/")) {
			return true
		}
	}
	return false
}

// IsProtected reports whether the path requires identity. Unlisted paths
// default to unprotected; downstream handlers keep responsibility for their
// own data-level authorization.
func IsProtected(path string) bool {
	if IsExempt(path) {
		return false
	}
	for _, p := range protectedPrefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}
