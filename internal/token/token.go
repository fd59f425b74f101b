package token

import "time"

// DefaultExpiresIn matches the lifetime HEMIS issues when the login
// response omits expires_in: 48 hours.
const DefaultExpiresIn = 172800 * time.Second

// State is the lifecycle position of a token, evaluated lazily at
// point of use. There is no background timer.
type State int

const (
	// Absent means no token is held (never issued, or logged out).
	Absent State = iota
	// Active means the token is within its advisory lifetime.
	Active
	// Stale means the lifetime elapsed. The remote is the final
	// authority; Stale only predicts that it will reject the token.
	Stale
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Stale:
		return "stale"
	default:
		return "absent"
	}
}

// Token is a bearer credential issued by HEMIS. The zero value is the
// Absent token.
type Token struct {
	Value     string
	IssuedAt  time.Time
	ExpiresIn time.Duration
}

// New builds an Active token issued now. A non-positive expiresIn
// falls back to the HEMIS default.
func New(value string, issuedAt time.Time, expiresIn time.Duration) Token {
	if expiresIn <= 0 {
		expiresIn = DefaultExpiresIn
	}
	return Token{Value: value, IssuedAt: issuedAt, ExpiresIn: expiresIn}
}

// State evaluates the lifecycle position at the given instant. The
// boundary is exact: a token expiring at T is Active at T-1s and
// Stale at T.
func (t Token) State(now time.Time) State {
	if t.Value == "" {
		return Absent
	}
	if !now.Before(t.IssuedAt.Add(t.ExpiresIn)) {
		return Stale
	}
	return Active
}

// ExpiresAt returns the instant the token turns Stale.
func (t Token) ExpiresAt() time.Time {
	return t.IssuedAt.Add(t.ExpiresIn)
}
