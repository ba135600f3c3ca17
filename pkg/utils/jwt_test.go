package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lenslink/lenslink-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGenerateAndValidateToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	user := &models.User{
		Model:       gorm.Model{ID: 42},
		Email:       "p@x.com",
		DisplayName: "Pat",
		Role:        models.RolePhotographer,
	}

	tokenString, err := GenerateToken(user, time.Hour)
	require.NoError(t, err)

	token, err := ValidateToken(tokenString)
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.EqualValues(t, 42, claims["id"])
	assert.Equal(t, "p@x.com", claims["email"])
	assert.Equal(t, "photographer", claims["role"])
	assert.Equal(t, "Pat", claims["displayName"])
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	user := &models.User{Model: gorm.Model{ID: 1}, Role: models.RoleCustomer}
	tokenString, err := GenerateToken(user, time.Hour)
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "different-secret")
	token, err := ValidateToken(tokenString)
	if err == nil {
		assert.False(t, token.Valid)
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	user := &models.User{Model: gorm.Model{ID: 1}, Role: models.RoleCustomer}
	tokenString, err := GenerateToken(user, -time.Minute)
	require.NoError(t, err)

	token, err := ValidateToken(tokenString)
	if err == nil {
		assert.False(t, token.Valid)
	}
}
