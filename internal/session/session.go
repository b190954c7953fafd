// Package session resolves the caller's session from an opaque session token.
package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"frontend-api/internal/shared"
)

// ErrNotFound is returned by a Loader when no session matches the token.
var ErrNotFound = errors.New("session not found")

// Resolver turns a session token into a session. Implementations return a
// *shared.RequestError with a 401 status whenever no usable session exists;
// a nil error always comes with a session that is Valid.
type Resolver interface {
	Resolve(ctx context.Context, token string) (*shared.Session, error)
}

// Loader reads sessions from the system of record, keyed by token hash.
type Loader interface {
	LoadSession(ctx context.Context, tokenHash string) (*shared.Session, error)
}

// HashToken is the key sessions are stored and cached under. Raw tokens
// never leave the process.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
