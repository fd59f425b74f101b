package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenState(t *testing.T) {
	issued := time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)
	tok := New("abc", issued, 100*time.Second)

	assert.Equal(t, Active, tok.State(issued))
	assert.Equal(t, Active, tok.State(issued.Add(99*time.Second)))
	// the boundary is exact, no skew allowance
	assert.Equal(t, Stale, tok.State(issued.Add(100*time.Second)))
	assert.Equal(t, Stale, tok.State(issued.Add(101*time.Second)))
}

func TestZeroTokenIsAbsent(t *testing.T) {
	var tok Token
	assert.Equal(t, Absent, tok.State(time.Now()))
}

func TestNewDefaultsExpiry(t *testing.T) {
	issued := time.Now()
	tok := New("abc", issued, 0)
	assert.Equal(t, DefaultExpiresIn, tok.ExpiresIn)
	assert.Equal(t, issued.Add(48*time.Hour), tok.ExpiresAt())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "absent", Absent.String())
	assert.Equal(t, "active", Active.String())
	assert.Equal(t, "stale", Stale.String())
}
