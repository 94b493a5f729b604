package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ctjot-server/internal/shared/config"
)

func setTestConfig(t *testing.T, expiration time.Duration) {
	t.Helper()

	original := config.GlobalConfig
	config.GlobalConfig = &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret-for-jwt-tests",
			TokenExpiration: expiration,
		},
	}
	t.Cleanup(func() { config.GlobalConfig = original })
}

func TestJWTRoundTrip(t *testing.T) {
	setTestConfig(t, time.Hour)

	token, err := GenerateJWT("123456789", "operator", true)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)

	assert.Equal(t, "123456789", claims.UserID)
	assert.Equal(t, "operator", claims.Username)
	assert.True(t, claims.Admin)
	assert.Equal(t, "discord_123456789", claims.Subject)
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	setTestConfig(t, time.Hour)

	_, err := ValidateJWT("not.a.token")
	assert.Error(t, err)
}

func TestValidateJWTRejectsExpired(t *testing.T) {
	setTestConfig(t, -time.Hour)

	token, err := GenerateJWT("123456789", "operator", true)
	require.NoError(t, err)

	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestValidateJWTRejectsWrongSecret(t *testing.T) {
	setTestConfig(t, time.Hour)

	token, err := GenerateJWT("123456789", "operator", true)
	require.NoError(t, err)

	config.GlobalConfig.Auth.JWTSecret = "a-different-secret"
	_, err = ValidateJWT(token)
	assert.Error(t, err)
}
