package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lenslink/lenslink-backend/internal/services"
	"gorm.io/gorm"
)

// ListPhotographers lists photographers available for booking. Public.
func ListPhotographers(photographers *services.PhotographerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profiles, err := photographers.ListAvailable(c.Request.Context())
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch photographers"})
			return
		}

		out := make([]gin.H, 0, len(profiles))
		for i := range profiles {
			out = append(out, profileJSON(&profiles[i]))
		}
		c.JSON(200, out)
	}
}

// GetPhotographer fetches one photographer profile by user id. Public.
func GetPhotographer(photographers *services.PhotographerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid photographer ID"})
			return
		}

		profile, err := photographers.GetByUserID(c.Request.Context(), uint(userID))
		if err != nil {
			abortWithServiceError(c, err)
			return
		}

		c.JSON(200, profileJSON(profile))
	}
}

// GetMyProfile returns the caller's photographer profile, creating it with
// defaults on first access.
func GetMyProfile(db *gorm.DB, photographers *services.PhotographerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := currentUser(c, db)
		if !ok {
			return
		}

		profile, err := photographers.GetOrCreateOwn(c.Request.Context(), actor)
		if err != nil {
			abortWithServiceError(c, err)
			return
		}

		c.JSON(200, profileJSON(profile))
	}
}

// UpdateMyProfile applies a partial update to the caller's profile.
func UpdateMyProfile(db *gorm.DB, photographers *services.PhotographerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := currentUser(c, db)
		if !ok {
			return
		}

		var input struct {
			Bio                 *string `json:"bio"`
			ProfileImage        *string `json:"profile_image"`
			AvailableForBooking *bool   `json:"availableForBooking"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		profile, err := photographers.UpdateOwn(c.Request.Context(), actor, services.ProfileUpdate{
			Bio:                 input.Bio,
			ProfileImage:        input.ProfileImage,
			AvailableForBooking: input.AvailableForBooking,
		})
		if err != nil {
			abortWithServiceError(c, err)
			return
		}

		c.JSON(200, profileJSON(profile))
	}
}

// UploadProfileImage stores a profile image and points the caller's profile
// at it.
func UploadProfileImage(db *gorm.DB, photographers *services.PhotographerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := currentUser(c, db)
		if !ok {
			return
		}

		file, err := c.FormFile("image")
		if err != nil {
			c.JSON(400, gin.H{"error": "Image file required"})
			return
		}

		url, err := services.UploadProfileImage(file, actor.ID)
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		profile, err := photographers.UpdateOwn(c.Request.Context(), actor, services.ProfileUpdate{
			ProfileImage: &url,
		})
		if err != nil {
			abortWithServiceError(c, err)
			return
		}

		c.JSON(200, profileJSON(profile))
	}
}
