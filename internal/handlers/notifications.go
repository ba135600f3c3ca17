package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lenslink/lenslink-backend/internal/services"
	"gorm.io/gorm"
)

// GetMyNotifications lists the caller's inbox.
func GetMyNotifications(db *gorm.DB, notifications *services.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := currentUser(c, db)
		if !ok {
			return
		}

		list, err := notifications.ListForUser(c.Request.Context(), actor)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch notifications"})
			return
		}

		out := make([]gin.H, 0, len(list))
		for i := range list {
			out = append(out, notificationJSON(&list[i]))
		}
		c.JSON(200, out)
	}
}

// MarkNotificationRead flips a notification's read flag. Notifications
// belonging to other users come back as 404, never 403.
func MarkNotificationRead(db *gorm.DB, notifications *services.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := currentUser(c, db)
		if !ok {
			return
		}

		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid notification ID"})
			return
		}

		notification, err := notifications.MarkRead(c.Request.Context(), actor, id)
		if err != nil {
			abortWithServiceError(c, err)
			return
		}

		c.JSON(200, notificationJSON(notification))
	}
}
