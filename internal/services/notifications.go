package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lenslink/lenslink-backend/internal/models"
	"gorm.io/gorm"
)

// NotificationService is the reader side of the inbox. Writing happens only
// inside booking transactions (see BookingService).
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

func (s *NotificationService) ListForUser(ctx context.Context, actor *models.User) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.WithContext(ctx).
		Where("user_id = ?", actor.ID).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkRead flips is_read to true. The lookup is pre-filtered by owner, so a
// notification belonging to someone else is indistinguishable from a
// missing one. Marking an already-read notification again is a no-op
// success.
func (s *NotificationService) MarkRead(ctx context.Context, actor *models.User, id uuid.UUID) (*models.Notification, error) {
	var notification models.Notification
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, actor.ID).
		First(&notification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !notification.IsRead {
		notification.IsRead = true
		if err := s.db.WithContext(ctx).Model(&notification).Update("is_read", true).Error; err != nil {
			return nil, err
		}
	}

	return &notification, nil
}
