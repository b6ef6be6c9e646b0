package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	InitJWT("test-secret")

	token, err := GenerateToken("jsmith", "Manager")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "jsmith", claims.Username)
	assert.Equal(t, "Manager", claims.Role)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	InitJWT("test-secret")
	token, err := GenerateToken("jsmith", "Member")
	require.NoError(t, err)

	InitJWT("other-secret")
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsMissingExpiry(t *testing.T) {
	InitJWT("test-secret")

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{Username: "jsmith", Role: "Member"})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = ValidateToken(signed)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	InitJWT("test-secret")

	_, err := ValidateToken("not-a-jwt")
	assert.Error(t, err)
}

func TestGetUsernameFromToken(t *testing.T) {
	InitJWT("test-secret")

	token, err := GenerateToken("adoe", "Admin")
	require.NoError(t, err)

	username, err := GetUsernameFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "adoe", username)
}
