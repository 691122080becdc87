package jwt

import (
	"context"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/pierreiost/quadracerta/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

func TestGenerateAccessToken_Claims(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h")
	complexID := "0190a3b2-7c4d-7e5f-8a9b-0c1d2e3f4a5b"

	token, expiresAt, err := svc.GenerateAccessToken("user-1", "ana@example.com", &complexID, user.RoleAdmin)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Greater(t, expiresAt, int64(0))

	decoded, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, complexID, claims["complex_id"])
	assert.Equal(t, "ADMIN", claims["role"])
	assert.Equal(t, TokenTypeAccess, claims["type"])
}

func TestGenerateAccessToken_UnscopedSuperAdmin(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h")

	token, _, err := svc.GenerateAccessToken("root", "root@example.com", nil, user.RoleSuperAdmin)
	require.NoError(t, err)

	decoded, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)
	assert.Nil(t, claims["complex_id"])
}

func TestGenerateAccessToken_InvalidDuration(t *testing.T) {
	svc := NewJWTService(testSecret, "forever", "24h")
	_, _, err := svc.GenerateAccessToken("user-1", "a@b.cd", nil, user.RoleEmployee)
	assert.Error(t, err)
}

func TestValidateRefreshToken(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h")

	refresh, _, err := svc.GenerateRefreshToken("user-7")
	require.NoError(t, err)

	userID, err := svc.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "user-7", userID)
}

func TestValidateRefreshToken_RejectsAccessToken(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h")

	access, _, err := svc.GenerateAccessToken("user-7", "a@b.cd", nil, user.RoleEmployee)
	require.NoError(t, err)

	_, err = svc.ValidateRefreshToken(access)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestValidateRefreshToken_WrongSecret(t *testing.T) {
	issuer := NewJWTService(testSecret, "1h", "24h")
	verifier := NewJWTService("another-secret", "1h", "24h")

	refresh, _, err := issuer.GenerateRefreshToken("user-7")
	require.NoError(t, err)

	_, err = verifier.ValidateRefreshToken(refresh)
	assert.Error(t, err)
}

func TestRefreshTokensAreDistinct(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h")

	first, _, err := svc.GenerateRefreshToken("user-7")
	require.NoError(t, err)
	second, _, err := svc.GenerateRefreshToken("user-7")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
