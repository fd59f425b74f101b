package token

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kirito514/unilib/internal/hemis"
)

type fakeRefresher struct {
	tok   Token
	err   error
	calls int
}

func (f *fakeRefresher) RefreshToken(ctx context.Context, tok string) (Token, error) {
	f.calls++
	return f.tok, f.err
}

func TestEnsureActiveKeepsActiveToken(t *testing.T) {
	now := time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)
	ref := &fakeRefresher{}
	m := NewManager(ref)
	m.now = func() time.Time { return now }

	tok := New("abc", now.Add(-time.Minute), time.Hour)
	got, err := m.EnsureActive(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, tok, got)
	assert.Zero(t, ref.calls, "active token must not trigger a refresh")
}

func TestEnsureActiveRefreshesStaleToken(t *testing.T) {
	now := time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)
	fresh := New("new", now, time.Hour)
	ref := &fakeRefresher{tok: fresh}
	m := NewManager(ref)
	m.now = func() time.Time { return now }

	stale := New("old", now.Add(-2*time.Hour), time.Hour)
	got, err := m.EnsureActive(context.Background(), stale)
	require.NoError(t, err)
	assert.Equal(t, fresh, got)
	assert.Equal(t, 1, ref.calls)
}

func TestEnsureActiveRefreshFailure(t *testing.T) {
	now := time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)
	ref := &fakeRefresher{err: hemis.ErrRemoteUnavailable}
	m := NewManager(ref)
	m.now = func() time.Time { return now }

	stale := New("old", now.Add(-2*time.Hour), time.Hour)
	_, err := m.EnsureActive(context.Background(), stale)
	assert.True(t, errors.Is(err, hemis.ErrTokenExpired))
	// the caller still holds the stale token untouched
	assert.Equal(t, "old", stale.Value)
}

func TestEnsureActiveAbsentToken(t *testing.T) {
	ref := &fakeRefresher{}
	m := NewManager(ref)

	_, err := m.EnsureActive(context.Background(), Token{})
	assert.True(t, errors.Is(err, hemis.ErrTokenExpired))
	assert.Zero(t, ref.calls, "absent token has nothing to refresh")
}
