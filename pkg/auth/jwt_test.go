package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testService() JWTService {
	return NewJWTService(Config{
		Secret:        "test-secret",
		RefreshSecret: "test-refresh-secret",
		Expiry:        time.Hour,
		RefreshExpiry: 24 * time.Hour,
	})
}

func TestGenerateAndValidate(t *testing.T) {
	svc := testService()

	token, err := svc.GenerateAccessToken(42, "drsmith", "dentist")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, "drsmith", claims.Username)
	assert.Equal(t, "dentist", claims.Role)
}

func TestRefreshTokenNotValidAsAccess(t *testing.T) {
	svc := testService()

	refresh, err := svc.GenerateRefreshToken(42, "drsmith", "dentist")
	require.NoError(t, err)

	_, err = svc.ValidateToken(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateRefreshToken(refresh)
	assert.NoError(t, err)
}

func TestTokenTypeEnforcedWithSharedSecret(t *testing.T) {
	// The default config falls back to the access secret when no refresh
	// secret is set; the type claim still keeps the two kinds apart.
	svc := NewJWTService(Config{
		Secret:        "shared-secret",
		RefreshSecret: "shared-secret",
		Expiry:        time.Hour,
		RefreshExpiry: 24 * time.Hour,
	})

	access, err := svc.GenerateAccessToken(7, "frontdesk", "receptionist")
	require.NoError(t, err)
	refresh, err := svc.GenerateRefreshToken(7, "frontdesk", "receptionist")
	require.NoError(t, err)

	_, err = svc.ValidateRefreshToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateToken(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateToken(access)
	assert.NoError(t, err)
	_, err = svc.ValidateRefreshToken(refresh)
	assert.NoError(t, err)
}

func TestExpiredToken(t *testing.T) {
	svc := NewJWTService(Config{
		Secret:        "test-secret",
		RefreshSecret: "test-refresh-secret",
		Expiry:        -time.Minute,
		RefreshExpiry: time.Hour,
	})

	token, err := svc.GenerateAccessToken(1, "user", "staff")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestGarbageToken(t *testing.T) {
	svc := testService()

	_, err := svc.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
