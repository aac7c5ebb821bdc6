package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("orbital-mechanics")
	require.NoError(t, err)
	assert.NotEqual(t, "orbital-mechanics", hash)

	assert.True(t, CheckPasswordHash("orbital-mechanics", hash))
	assert.False(t, CheckPasswordHash("wrong-password", hash))
}

func TestJWTRoundtrip(t *testing.T) {
	token, err := GenerateJWT("12345")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userKey, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "12345", userKey)
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	_, err := ValidateJWT("not.a.token")
	assert.Error(t, err)
}

func TestValidateJWTRejectsTamperedToken(t *testing.T) {
	token, err := GenerateJWT("12345")
	require.NoError(t, err)

	_, err = ValidateJWT(token + "x")
	assert.Error(t, err)
}
