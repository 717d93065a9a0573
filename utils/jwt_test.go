package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateJWT("64f000000000000000000001", true)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "64f000000000000000000001", claims.UserID)
	assert.True(t, claims.IsAdmin)

	// 30-day expiry, give or take a minute of test slack.
	expiry := time.Unix(claims.ExpiresAt, 0)
	assert.WithinDuration(t, time.Now().Add(TokenLifetime), expiry, time.Minute)
}

func TestValidateJWTExpired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: "64f000000000000000000001",
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(-time.Hour).Unix(),
		},
	})
	tokenString, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = ValidateJWT(tokenString)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateJWTMalformed(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := ValidateJWT("not-a-token")
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestValidateJWTWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := GenerateJWT("64f000000000000000000001", false)
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "other-secret")
	_, err = ValidateJWT(token)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}
