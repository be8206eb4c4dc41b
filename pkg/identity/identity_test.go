package identity

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppa-angola/portal-pedagogico/pkg/session"
)

func TestFromClaims(t *testing.T) {
	iat := time.Unix(1700000000, 0)
	exp := iat.Add(time.Hour)
	claims := &session.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "12",
			IssuedAt:  jwt.NewNumericDate(iat),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Admin: true,
	}

	id, err := FromClaims(claims)
	require.NoError(t, err)
	assert.EqualValues(t, 12, id.UserID)
	assert.True(t, id.IsAdmin)
	assert.True(t, iat.Equal(id.IssuedAt))
	assert.True(t, exp.Equal(id.ExpiresAt))

	_, err = FromClaims(&session.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "x"}})
	assert.Error(t, err)
}

func TestIdentity_WithMethods(t *testing.T) {
	id := (&Identity{UserID: 1}).
		WithRemoteIP(net.ParseIP("10.0.0.7")).
		WithRequestID("req-1")

	assert.Equal(t, "10.0.0.7", id.RemoteIP.String())
	assert.Equal(t, "req-1", id.RequestID)
}

func TestIdentity_CanAccess(t *testing.T) {
	teacher := &Identity{UserID: 5}
	admin := &Identity{UserID: 1, IsAdmin: true}

	assert.True(t, teacher.CanAccess(5))
	assert.False(t, teacher.CanAccess(6))
	assert.True(t, admin.CanAccess(6))
}

func TestGetSet(t *testing.T) {
	_, ok := Get(context.Background())
	assert.False(t, ok)

	ctx := Set(context.Background(), &Identity{UserID: 3})
	id, ok := Get(ctx)
	require.True(t, ok)
	assert.EqualValues(t, 3, id.UserID)
}
