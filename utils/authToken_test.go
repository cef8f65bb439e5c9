package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("SYMMETRIC_KEY", "0123456789abcdef0123456789abcdef")

	token, err := GenerateAccessToken(42, "doctor")
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "doctor", claims.Role)
}

func TestValidateTokenRoleCheck(t *testing.T) {
	t.Setenv("SYMMETRIC_KEY", "0123456789abcdef0123456789abcdef")

	token, err := GenerateAccessToken(42, "patient")
	require.NoError(t, err)

	_, err = ValidateToken(token, "doctor")
	require.Error(t, err)

	claims, err := ValidateToken(token, "doctor", "patient")
	require.NoError(t, err)
	assert.Equal(t, "patient", claims.Role)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	t.Setenv("SYMMETRIC_KEY", "0123456789abcdef0123456789abcdef")

	_, err := ValidateToken("v2.local.garbage")
	require.Error(t, err)
}
