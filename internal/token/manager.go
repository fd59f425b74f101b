package token

import (
	"context"
	"fmt"
	"time"

	"github.com/Kirito514/unilib/internal/hemis"
)

// Refresher exchanges a stale token for a fresh one. Implemented by
// the identity provider.
type Refresher interface {
	RefreshToken(ctx context.Context, tok string) (Token, error)
}

// Manager decides whether a held token is still usable and performs
// at most one refresh attempt when it is not. It never mutates its
// input: a failed refresh leaves the caller holding the prior token,
// which stays valid until its own expiry elapses.
type Manager struct {
	refresher Refresher
	now       func() time.Time
}

func NewManager(r Refresher) *Manager {
	return &Manager{refresher: r, now: time.Now}
}

// EnsureActive returns tok unchanged while it is Active, a refreshed
// token when it is Stale and the refresh succeeds, and ErrTokenExpired
// when it is Absent or the refresh fails. On ErrTokenExpired the next
// protected call must force a fresh login.
func (m *Manager) EnsureActive(ctx context.Context, tok Token) (Token, error) {
	switch tok.State(m.now()) {
	case Active:
		return tok, nil
	case Absent:
		return Token{}, hemis.ErrTokenExpired
	}

	fresh, err := m.refresher.RefreshToken(ctx, tok.Value)
	if err != nil {
		return Token{}, fmt.Errorf("refresh failed: %w", hemis.ErrTokenExpired)
	}
	return fresh, nil
}
