package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/lenslink/lenslink-backend/internal/config"
	"github.com/lenslink/lenslink-backend/internal/models"
	"github.com/lenslink/lenslink-backend/internal/services"
	"github.com/lenslink/lenslink-backend/pkg/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type SignupInput struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role" binding:"required,oneof=customer photographer"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func Signup(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SignupInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var existing models.User
		if err := db.Where("email = ?", input.Email).First(&existing).Error; err == nil {
			c.JSON(400, gin.H{"error": "A user with this email already exists"})
			return
		}

		user := models.User{
			Email:       input.Email,
			Password:    input.Password,
			DisplayName: input.DisplayName,
			Role:        models.Role(input.Role),
		}

		if err := user.HashPassword(); err != nil {
			c.JSON(500, gin.H{"error": "Failed to hash password"})
			return
		}

		if result := db.Create(&user); result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to create user"})
			return
		}

		c.JSON(201, gin.H{"user": userJSON(&user)})
	}
}

func Login(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var user models.User
		if result := db.Where("email = ?", input.Email).First(&user); result.Error != nil {
			c.JSON(401, gin.H{"error": "Invalid credentials"})
			return
		}

		if err := user.CheckPassword(input.Password); err != nil {
			c.JSON(401, gin.H{"error": "Invalid credentials"})
			return
		}

		access, err := utils.GenerateToken(&user, cfg.Auth.AccessTokenTTL)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to generate token"})
			return
		}

		refresh, err := services.GenerateRefreshToken()
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to generate refresh token"})
			return
		}
		if err := services.StoreRefreshToken(c.Request.Context(), refresh, user.ID, cfg.Auth.RefreshTokenTTL); err != nil {
			logrus.WithError(err).Warn("failed to store refresh token")
		}

		c.JSON(200, gin.H{
			"access":  access,
			"refresh": refresh,
			"user":    userJSON(&user),
		})
	}
}

type RefreshInput struct {
	Refresh string `json:"refresh" binding:"required"`
}

// Refresh exchanges an opaque refresh token for a new access/refresh pair.
// Tokens are single use; the old one is consumed even if issuing fails.
func Refresh(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RefreshInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		userID, err := services.ConsumeRefreshToken(c.Request.Context(), input.Refresh)
		if err != nil {
			c.JSON(401, gin.H{"error": "Invalid refresh token"})
			return
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(401, gin.H{"error": "Invalid refresh token"})
			return
		}

		access, err := utils.GenerateToken(&user, cfg.Auth.AccessTokenTTL)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to generate token"})
			return
		}

		refresh, err := services.GenerateRefreshToken()
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to generate refresh token"})
			return
		}
		if err := services.StoreRefreshToken(c.Request.Context(), refresh, user.ID, cfg.Auth.RefreshTokenTTL); err != nil {
			logrus.WithError(err).Warn("failed to store refresh token")
		}

		c.JSON(200, gin.H{"access": access, "refresh": refresh})
	}
}

func Me(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db)
		if !ok {
			return
		}
		c.JSON(200, userJSON(user))
	}
}
