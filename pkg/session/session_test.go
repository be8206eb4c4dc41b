package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	m, ok, err := NewManager("s3cret", time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)

	token, exp, err := m.Issue(42, true)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.EqualValues(t, 42, id)
	assert.True(t, claims.Admin)
	assert.Equal(t, Issuer, claims.Issuer)
}

func TestParse_Expired(t *testing.T) {
	m, _, err := NewManager("s3cret", time.Hour)
	require.NoError(t, err)

	past := time.Now().Add(-2 * time.Hour)
	m.WithClock(func() time.Time { return past })
	token, _, err := m.Issue(1, false)
	require.NoError(t, err)

	m.WithClock(time.Now)
	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestParse_Invalid(t *testing.T) {
	m, _, err := NewManager("s3cret", time.Hour)
	require.NoError(t, err)
	other, _, err := NewManager("other", time.Hour)
	require.NoError(t, err)

	foreign, _, err := other.Issue(1, false)
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   "maria",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":      "not-a-token",
		"other secret": foreign,
		"alg none":     unsigned,
		"bad subject":  badSubject,
		"empty":        "",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := m.Parse(token)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestNewManager_RandomSecret(t *testing.T) {
	a, ok, err := NewManager("", time.Hour)
	require.NoError(t, err)
	assert.False(t, ok)
	b, _, err := NewManager("", time.Hour)
	require.NoError(t, err)

	token, _, err := a.Issue(1, false)
	require.NoError(t, err)
	_, err = b.Parse(token)
	assert.ErrorIs(t, err, ErrInvalid)
}
