package provider

import (
	"context"

	"github.com/Kirito514/unilib/internal/hemis"
	"github.com/Kirito514/unilib/internal/token"
)

// LoginResult carries everything a successful two-step credential
// exchange produces: the bearer token and the raw student record.
type LoginResult struct {
	Token  token.Token
	Record hemis.Record
}

// IdentityProvider is the contract for the external student-records
// system. Implementations return identity facts only; resolving those
// facts to local users, sessions or permissions happens elsewhere.
// There are exactly two implementations, the real HEMIS client and
// the mock roster, selected once at construction time.
type IdentityProvider interface {
	// Name identifies the provider ("hemis" or "mock"); reported as
	// the source field of verification responses.
	Name() string

	// Login performs the two-step exchange: credentials for a token,
	// then the token for the student record. A token whose profile
	// fetch fails is discarded, never returned.
	Login(ctx context.Context, studentID, password string) (*LoginResult, error)

	// FetchProfile re-fetches the student record with an existing
	// token. A remote 401 surfaces as hemis.ErrTokenExpired.
	FetchProfile(ctx context.Context, tok string) (hemis.Record, error)

	// RefreshToken exchanges a token for a fresh one. Failure is
	// non-fatal; callers keep their current token.
	RefreshToken(ctx context.Context, tok string) (token.Token, error)

	// VerifyStudent looks an identifier up in the student roster and
	// returns the raw record, or hemis.ErrNotFound.
	VerifyStudent(ctx context.Context, studentID string) (hemis.Record, error)
}
