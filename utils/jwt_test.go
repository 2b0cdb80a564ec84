package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	secret := []byte("s3cret")
	tok, err := GenerateJWT("user-key", secret, time.Hour)
	require.NoError(t, err)

	sub, err := ParseJWT(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, "user-key", sub)

	_, err = ParseJWT(tok, []byte("wrong"))
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = ParseJWT("not.a.token", secret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTDefaultsAndExpiry(t *testing.T) {
	secret := []byte("s3cret")

	tok, err := GenerateJWT("k", secret, 0)
	require.NoError(t, err)
	var claims jwt.RegisteredClaims
	_, err = jwt.ParseWithClaims(tok, &claims, func(*jwt.Token) (interface{}, error) { return secret, nil })
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(DefaultTokenTTL), claims.ExpiresAt.Time, time.Minute)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "k",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	})
	s, err := expired.SignedString(secret)
	require.NoError(t, err)
	_, err = ParseJWT(s, secret)
	assert.ErrorIs(t, err, ErrInvalidToken)

	noSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{}).SignedString(secret)
	require.NoError(t, err)
	_, err = ParseJWT(noSub, secret)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = GenerateJWT("k", nil, time.Hour)
	assert.Error(t, err)
}
