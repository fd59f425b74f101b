package mock

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kirito514/unilib/internal/hemis"
)

func TestVerifyStudent(t *testing.T) {
	p := New()

	record, err := p.VerifyStudent(context.Background(), "12345678901")
	require.NoError(t, err)
	assert.Equal(t, "Alisher", record.FirstName)
	assert.Equal(t, "Navoiy", record.SecondName)

	_, err = p.VerifyStudent(context.Background(), "00000000000")
	assert.True(t, errors.Is(err, hemis.ErrNotFound))
}

func TestLoginAndFetchProfile(t *testing.T) {
	p := New()

	result, err := p.Login(context.Background(), "98765432109", "any-password")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token.Value)
	assert.Equal(t, "Nodira", result.Record.FirstName)

	record, err := p.FetchProfile(context.Background(), result.Token.Value)
	require.NoError(t, err)
	assert.Equal(t, "98765432109", record.StudentIDNumber)
}

func TestLoginRejections(t *testing.T) {
	p := New()

	_, err := p.Login(context.Background(), "00000000000", "password")
	assert.True(t, errors.Is(err, hemis.ErrInvalidCredentials))

	_, err = p.Login(context.Background(), "12345678901", "")
	assert.True(t, errors.Is(err, hemis.ErrInvalidCredentials))
}

func TestFetchProfileUnknownToken(t *testing.T) {
	p := New()

	_, err := p.FetchProfile(context.Background(), "not-a-mock-token")
	assert.True(t, errors.Is(err, hemis.ErrTokenExpired))
}

func TestRefreshToken(t *testing.T) {
	p := New()

	tok, err := p.RefreshToken(context.Background(), "mock-token-12345678901")
	require.NoError(t, err)
	assert.Equal(t, "mock-token-12345678901", tok.Value)

	_, err = p.RefreshToken(context.Background(), "garbage")
	assert.True(t, errors.Is(err, hemis.ErrTokenExpired))
}
