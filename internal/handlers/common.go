package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/lenslink/lenslink-backend/internal/models"
	"github.com/lenslink/lenslink-backend/internal/services"
	"gorm.io/gorm"
)

// currentUser loads the authenticated user set by the auth middleware. The
// services take the actor as an explicit parameter, so handlers resolve it
// once here.
func currentUser(c *gin.Context, db *gorm.DB) (*models.User, bool) {
	userID := c.GetUint("userId")

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		c.JSON(401, gin.H{"error": "User not found"})
		return nil, false
	}
	return &user, true
}

// abortWithServiceError maps the service error taxonomy onto HTTP statuses.
func abortWithServiceError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(400, gin.H{"error": validationErr.Message, "field": validationErr.Field})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(403, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(404, gin.H{"error": "Not found"})
	default:
		c.JSON(500, gin.H{"error": "Internal server error"})
	}
}

func userJSON(user *models.User) gin.H {
	return gin.H{
		"id":          user.ID,
		"email":       user.Email,
		"displayName": user.DisplayName,
		"role":        user.Role,
		"createdAt":   user.CreatedAt,
	}
}

func bookingJSON(booking *models.Booking) gin.H {
	return gin.H{
		"id":                booking.ID,
		"customer":          booking.CustomerID,
		"photographer":      booking.PhotographerID,
		"customer_name":     booking.Customer.DisplayName,
		"photographer_name": booking.Photographer.DisplayName,
		"date":              booking.Date,
		"time":              booking.Time,
		"status":            booking.Status,
		"createdAt":         booking.CreatedAt,
	}
}

func notificationJSON(notification *models.Notification) gin.H {
	return gin.H{
		"id":        notification.ID,
		"booking":   notification.BookingID,
		"message":   notification.Message,
		"is_read":   notification.IsRead,
		"createdAt": notification.CreatedAt,
	}
}

func profileJSON(profile *models.PhotographerProfile) gin.H {
	return gin.H{
		"user":                userJSON(&profile.User),
		"bio":                 profile.Bio,
		"profile_image":       profile.ProfileImage,
		"availableForBooking": profile.AvailableForBooking,
		"createdAt":           profile.CreatedAt,
	}
}
