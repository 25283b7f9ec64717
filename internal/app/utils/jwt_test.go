package utils

import (
	"fleet_registry/internal/app/ds"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var key = []byte("test-key")

func TestGenerateAndParseJWT(t *testing.T) {
	now := time.Now()
	token, err := GenerateJWT(key, 7, ds.RoleAdmin, now)
	require.NoError(t, err)

	claims, err := ParseJWT(key, token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, ds.RoleAdmin, claims.Role)
	assert.WithinDuration(t, now.Add(TokenTTL), claims.ExpiresAt.Time, time.Second)
}

func TestParseJWTRejects(t *testing.T) {
	past := time.Now().Add(-2 * TokenTTL)
	expired, err := GenerateJWT(key, 1, ds.RoleOperator, past)
	require.NoError(t, err)
	_, err = ParseJWT(key, expired)
	assert.ErrorIs(t, err, ds.ErrInvalidCredentials)

	other, err := GenerateJWT([]byte("other-key"), 1, ds.RoleOperator, time.Now())
	require.NoError(t, err)
	_, err = ParseJWT(key, other)
	assert.ErrorIs(t, err, ds.ErrInvalidCredentials)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, &ds.JWTClaims{UserID: 1}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = ParseJWT(key, none)
	assert.ErrorIs(t, err, ds.ErrInvalidCredentials)

	_, err = GenerateJWT(nil, 1, ds.RoleOperator, time.Now())
	assert.Error(t, err)
}

func TestDeleteSessionWithoutRedis(t *testing.T) {
	assert.NoError(t, DeleteSession(t.Context(), nil, "token"))
	assert.Nil(t, NewRedisClient("", ""))
}
