package otp

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("otp: no code issued for destination")
	ErrExpired  = errors.New("otp: code expired")
	ErrMismatch = errors.New("otp: code mismatch")
)

// DefaultTTL is how long an issued code stays valid.
const DefaultTTL = 10 * time.Minute

// Entry is one live code bound to a canonical destination. Entries are owned
// by the store; nothing else mutates them.
type Entry struct {
	Code      string
	ExpiresAt time.Time
}

// Store holds at most one live code per destination. Issue unconditionally
// replaces any prior code for the destination. Verify consumes the entry on
// success, so a code can be used at most once; a mismatch leaves the entry
// in place for further attempts until expiry.
//
// Destinations must already be in canonical form (see Normalize) or lookups
// will silently miss.
type Store interface {
	Issue(ctx context.Context, destination string) (code string, err error)
	Verify(ctx context.Context, destination, code string) error
}
