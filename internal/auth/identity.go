package auth

// TokenKind records which verification path produced an Identity.
type TokenKind string

const (
	// TokenKindStateless means the identity was confirmed remotely by the
	// accounts service from an opaque bearer token.
	TokenKindStateless TokenKind = "STATELESS"

	// TokenKindStateful means the identity was decoded locally from the
	// signed session cookie.
	TokenKindStateful TokenKind = "STATEFUL"
)

// Identity is the resolved caller for a single request. It contains facts
// only, no decisions, and is never persisted by this service. Absence of an
// Identity means "anonymous"; a zero-valued Identity is never used for that.
type Identity struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	Role      string
	TokenKind TokenKind
}

// DefaultRole is assumed when a credential carries no role claim.
const DefaultRole = "user"
