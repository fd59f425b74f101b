package session

import (
	"context"
	"time"

	"github.com/Kirito514/unilib/internal/permissions"
)

// Session is an authenticated browser session. The role is captured
// at login so permission checks need no profile read per request; a
// role change takes effect on the next login.
type Session struct {
	SessionID string
	UserID    string
	Role      permissions.Role
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Store defines how sessions are stored and retrieved.
type Store interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}
