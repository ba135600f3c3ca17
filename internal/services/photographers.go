package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lenslink/lenslink-backend/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	directoryCacheKey = "photographers:available"
	directoryCacheTTL = time.Minute
)

// PhotographerService manages the photographer directory and each
// photographer's own profile.
type PhotographerService struct {
	db *gorm.DB
}

func NewPhotographerService(db *gorm.DB) *PhotographerService {
	return &PhotographerService{db: db}
}

// ProfileUpdate carries a partial profile update. Nil fields are left
// untouched.
type ProfileUpdate struct {
	Bio                 *string
	ProfileImage        *string
	AvailableForBooking *bool
}

// ListAvailable returns profiles open for booking, served from the Redis
// cache when it is warm.
func (s *PhotographerService) ListAvailable(ctx context.Context) ([]models.PhotographerProfile, error) {
	if RedisClient != nil {
		if data, err := RedisClient.Get(ctx, directoryCacheKey).Result(); err == nil {
			var cached []models.PhotographerProfile
			if err := json.Unmarshal([]byte(data), &cached); err == nil {
				return cached, nil
			}
		}
	}

	var profiles []models.PhotographerProfile
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("available_for_booking = ?", true).
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}

	if RedisClient != nil {
		if data, err := json.Marshal(profiles); err == nil {
			if err := RedisClient.Set(ctx, directoryCacheKey, data, directoryCacheTTL).Err(); err != nil {
				logrus.WithError(err).Warn("failed to cache photographer directory")
			}
		}
	}

	return profiles, nil
}

// GetByUserID fetches one photographer profile by its owner's user id.
func (s *PhotographerService) GetByUserID(ctx context.Context, userID uint) (*models.PhotographerProfile, error) {
	var profile models.PhotographerProfile
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// GetOrCreateOwn returns the actor's profile, creating it with defaults
// (empty bio, no image, available for booking) on first access.
func (s *PhotographerService) GetOrCreateOwn(ctx context.Context, actor *models.User) (*models.PhotographerProfile, error) {
	if !actor.IsPhotographer() {
		return nil, fmt.Errorf("only photographers have a photographer profile: %w", ErrForbidden)
	}

	var profile models.PhotographerProfile
	err := s.db.WithContext(ctx).
		Where("user_id = ?", actor.ID).
		First(&profile).Error
	if err == nil {
		profile.User = *actor
		return &profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	profile = models.PhotographerProfile{
		UserID:              actor.ID,
		Bio:                 "",
		ProfileImage:        "",
		AvailableForBooking: true,
	}
	if err := s.db.WithContext(ctx).Create(&profile).Error; err != nil {
		return nil, err
	}
	profile.User = *actor
	return &profile, nil
}

// UpdateOwn applies a partial update to the actor's profile, creating it
// first if this is the first access.
func (s *PhotographerService) UpdateOwn(ctx context.Context, actor *models.User, update ProfileUpdate) (*models.PhotographerProfile, error) {
	profile, err := s.GetOrCreateOwn(ctx, actor)
	if err != nil {
		return nil, err
	}

	if update.Bio != nil {
		profile.Bio = *update.Bio
	}
	if update.ProfileImage != nil {
		profile.ProfileImage = *update.ProfileImage
	}
	if update.AvailableForBooking != nil {
		profile.AvailableForBooking = *update.AvailableForBooking
	}

	if err := s.db.WithContext(ctx).Save(profile).Error; err != nil {
		return nil, err
	}

	s.invalidateDirectoryCache(ctx)

	return profile, nil
}

func (s *PhotographerService) invalidateDirectoryCache(ctx context.Context) {
	if RedisClient == nil {
		return
	}
	if err := RedisClient.Del(ctx, directoryCacheKey).Err(); err != nil {
		logrus.WithError(err).Warn("failed to invalidate photographer directory cache")
	}
}
