package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lenslink/lenslink-backend/internal/models"
	"github.com/lenslink/lenslink-backend/internal/services"
	"gorm.io/gorm"
)

// CreateBooking handles a customer's booking request for a photographer.
func CreateBooking(db *gorm.DB, bookings *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := currentUser(c, db)
		if !ok {
			return
		}

		var input struct {
			Photographer uint   `json:"photographer" binding:"required"`
			Date         string `json:"date" binding:"required,datetime=2006-01-02"`
			Time         string `json:"time" binding:"required,datetime=15:04:05"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		booking, err := bookings.Create(c.Request.Context(), actor, input.Photographer, input.Date, input.Time)
		if err != nil {
			abortWithServiceError(c, err)
			return
		}

		c.JSON(201, bookingJSON(booking))
	}
}

// GetMyBookings lists the caller's bookings, newest first.
func GetMyBookings(db *gorm.DB, bookings *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := currentUser(c, db)
		if !ok {
			return
		}

		list, err := bookings.ListForUser(c.Request.Context(), actor)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch bookings"})
			return
		}

		out := make([]gin.H, 0, len(list))
		for i := range list {
			out = append(out, bookingJSON(&list[i]))
		}
		c.JSON(200, out)
	}
}

// UpdateBookingStatus moves a booking to accepted or rejected.
func UpdateBookingStatus(db *gorm.DB, bookings *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := currentUser(c, db)
		if !ok {
			return
		}

		bookingID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid booking ID"})
			return
		}

		var input struct {
			Status string `json:"status" binding:"required,oneof=accepted rejected"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		booking, err := bookings.UpdateStatus(c.Request.Context(), actor, bookingID, models.BookingStatus(input.Status))
		if err != nil {
			abortWithServiceError(c, err)
			return
		}

		c.JSON(200, bookingJSON(booking))
	}
}

// CompleteBooking forces a booking into the completed state.
func CompleteBooking(db *gorm.DB, bookings *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := currentUser(c, db)
		if !ok {
			return
		}

		bookingID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid booking ID"})
			return
		}

		booking, err := bookings.Complete(c.Request.Context(), actor, bookingID)
		if err != nil {
			abortWithServiceError(c, err)
			return
		}

		c.JSON(200, bookingJSON(booking))
	}
}
