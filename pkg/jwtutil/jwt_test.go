package jwtutil

import (
	"testing"

	"github.com/RonnieLihanda/kipkaren-pos-flow/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})
	t.Cleanup(func() { jwtConfig = nil })

	token, err := GenerateToken("user-1", "admin@kipkarenhardware.com", "Admin", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin@kipkarenhardware.com", claims.Email)
	assert.Equal(t, "Admin", claims.Name)
	assert.Equal(t, "admin", claims.Role)
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "first-key", ExpirationHours: 1})
	t.Cleanup(func() { jwtConfig = nil })

	token, err := GenerateToken("user-1", "a@b.com", "A", "cashier")
	require.NoError(t, err)

	Initialize(&config.JWTConfig{SigningKey: "second-key", ExpirationHours: 1})
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})
	t.Cleanup(func() { jwtConfig = nil })

	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestUninitializedPackageErrors(t *testing.T) {
	jwtConfig = nil

	_, err := GenerateToken("u", "e", "n", "r")
	assert.Error(t, err)

	_, err = ValidateToken("whatever")
	assert.Error(t, err)
}
