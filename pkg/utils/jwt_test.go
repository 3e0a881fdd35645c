package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	token, err := m.GenerateAccessToken("owner@shop.in", "master")
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "owner@shop.in", claims.Email)
	assert.Equal(t, "master", claims.Role)
}

func TestExpiredTokenIsRejected(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	issued := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return issued }

	token, err := m.GenerateAccessToken("owner@shop.in", "master")
	require.NoError(t, err)

	m.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = m.ValidateAccessToken(token)
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
}

func TestTokenFromOtherSecretIsRejected(t *testing.T) {
	token, err := NewJWTManager("one", time.Hour).GenerateAccessToken("a@b.c", "staff")
	require.NoError(t, err)

	_, err = NewJWTManager("two", time.Hour).ValidateAccessToken(token)
	assert.Error(t, err)
}
