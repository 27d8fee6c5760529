package auth_test

import (
	"testing"
	"time"

	"github.com/schoolie/schoolie-backend/internal/app/models"
	"github.com/schoolie/schoolie-backend/internal/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJWTService(expiry time.Duration) *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: expiry,
		TokenIssuer:    "schoolie.test",
	})
}

func testUser() *models.User {
	return &models.User{
		ID:       "u-1",
		Email:    "user@example.com",
		Username: "user",
		Roles:    []models.Role{models.RoleStudent},
	}
}

func TestJWTService_GenerateToken(t *testing.T) {
	t.Run("Should generate a token that validates back to the same claims", func(t *testing.T) {
		svc := newJWTService(time.Hour)

		token, expiresIn, err := svc.GenerateToken(testUser())
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, 3600, expiresIn)

		claims, err := svc.ValidateAndExtractClaims(token)
		require.NoError(t, err)
		assert.Equal(t, "u-1", claims.UserID)
		assert.Equal(t, "user@example.com", claims.Email)
		assert.Equal(t, "user", claims.Username)
		assert.Equal(t, []string{"STUDENT"}, claims.Roles)
		assert.Equal(t, "schoolie.test", claims.Issuer)
	})
}

func TestJWTService_ValidateToken(t *testing.T) {
	t.Run("Should reject an expired token", func(t *testing.T) {
		svc := newJWTService(-time.Minute)

		token, _, err := svc.GenerateToken(testUser())
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		assert.Nil(t, claims)
		assert.ErrorIs(t, err, auth.ErrExpiredToken)
	})

	t.Run("Should reject a token signed with a different secret", func(t *testing.T) {
		other := auth.NewJWTService(auth.JWTConfig{
			SecretKey:      "other-secret",
			AccessTokenExp: time.Hour,
			TokenIssuer:    "schoolie.test",
		})
		token, _, err := other.GenerateToken(testUser())
		require.NoError(t, err)

		claims, err := newJWTService(time.Hour).ValidateToken(token)
		assert.Nil(t, claims)
		assert.Error(t, err)
	})

	t.Run("Should reject an empty token string", func(t *testing.T) {
		claims, err := newJWTService(time.Hour).ValidateAndExtractClaims("")
		assert.Nil(t, claims)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

func TestExtractBearerToken(t *testing.T) {
	t.Run("Should strip the Bearer prefix", func(t *testing.T) {
		token, err := auth.ExtractBearerToken("Bearer abc.def.ghi")
		assert.NoError(t, err)
		assert.Equal(t, "abc.def.ghi", token)
	})

	t.Run("Should pass through a raw token", func(t *testing.T) {
		token, err := auth.ExtractBearerToken("abc.def.ghi")
		assert.NoError(t, err)
		assert.Equal(t, "abc.def.ghi", token)
	})

	t.Run("Should fail on an empty header", func(t *testing.T) {
		_, err := auth.ExtractBearerToken("")
		assert.ErrorIs(t, err, auth.ErrInvalidFormat)
	})
}
