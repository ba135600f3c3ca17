package utils

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lenslink/lenslink-backend/internal/models"
)

// GenerateToken issues an access token carrying the claims clients need to
// render without a follow-up request: role, email and display name.
func GenerateToken(user *models.User, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"id":          user.ID,
		"email":       user.Email,
		"role":        string(user.Role),
		"displayName": user.DisplayName,
		"exp":         time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
}
