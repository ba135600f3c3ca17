package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lenslink/lenslink-backend/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// BookingService owns the booking status state machine. Every mutation runs
// inside a transaction together with the notification it triggers, so a
// status change is never visible without its notification.
//
// The acting user is always an explicit parameter; the service never reads
// request state.
type BookingService struct {
	db *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{db: db}
}

// Create opens a pending booking from a customer to a photographer and
// notifies the photographer. No slot-collision check is performed; the
// system tracks status, not calendars.
func (s *BookingService) Create(ctx context.Context, actor *models.User, photographerID uint, date, bookingTime string) (*models.Booking, error) {
	if !actor.IsCustomer() {
		return nil, fmt.Errorf("only customers can create bookings: %w", ErrForbidden)
	}

	var photographer models.User
	if err := s.db.WithContext(ctx).First(&photographer, photographerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewValidationError("photographer", "selected user is not a photographer")
		}
		return nil, err
	}
	if !photographer.IsPhotographer() {
		return nil, NewValidationError("photographer", "selected user is not a photographer")
	}

	booking := models.Booking{
		CustomerID:     actor.ID,
		PhotographerID: photographer.ID,
		Date:           date,
		Time:           bookingTime,
		Status:         models.BookingStatusPending,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}
		return emitNotification(tx, photographer.ID, &booking.ID, "New booking request")
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"booking":      booking.ID,
		"customer":     actor.ID,
		"photographer": photographer.ID,
	}).Info("booking created")

	booking.Customer = *actor
	booking.Photographer = photographer
	return &booking, nil
}

// UpdateStatus moves a booking to accepted or rejected. Only the assigned
// photographer may do this; any other actor gets ErrForbidden even when
// they hold the photographer role.
func (s *BookingService) UpdateStatus(ctx context.Context, actor *models.User, bookingID uuid.UUID, status models.BookingStatus) (*models.Booking, error) {
	if status != models.BookingStatusAccepted && status != models.BookingStatusRejected {
		return nil, NewValidationError("status", "status must be accepted or rejected")
	}

	var booking models.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Customer").Preload("Photographer").First(&booking, "id = ?", bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if !actor.IsPhotographer() || booking.PhotographerID != actor.ID {
			return fmt.Errorf("only the assigned photographer can update this booking: %w", ErrForbidden)
		}

		// No terminal-state guard: re-accepting a rejected booking is
		// allowed, matching the exposed behavior.
		booking.Status = status
		if err := tx.Save(&booking).Error; err != nil {
			return err
		}
		return emitNotification(tx, booking.CustomerID, &booking.ID, fmt.Sprintf("Booking %s", status))
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"booking": booking.ID,
		"status":  booking.Status,
	}).Info("booking status updated")

	return &booking, nil
}

// Complete forces a booking into the completed state and notifies the
// customer. Prior status is deliberately not checked; a pending booking can
// be completed directly.
func (s *BookingService) Complete(ctx context.Context, actor *models.User, bookingID uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Customer").Preload("Photographer").First(&booking, "id = ?", bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if !actor.IsPhotographer() || booking.PhotographerID != actor.ID {
			return fmt.Errorf("only the assigned photographer can complete this booking: %w", ErrForbidden)
		}

		booking.Status = models.BookingStatusCompleted
		if err := tx.Save(&booking).Error; err != nil {
			return err
		}
		return emitNotification(tx, booking.CustomerID, &booking.ID, "Booking completed")
	})
	if err != nil {
		return nil, err
	}

	logrus.WithField("booking", booking.ID).Info("booking completed")

	return &booking, nil
}

// ListForUser returns the actor's bookings, newest first. Customers see
// bookings they placed, photographers see bookings assigned to them.
func (s *BookingService) ListForUser(ctx context.Context, actor *models.User) ([]models.Booking, error) {
	query := s.db.WithContext(ctx).
		Preload("Customer").
		Preload("Photographer").
		Order("created_at DESC")

	var bookings []models.Booking
	switch actor.Role {
	case models.RoleCustomer:
		query = query.Where("customer_id = ?", actor.ID)
	case models.RolePhotographer:
		query = query.Where("photographer_id = ?", actor.ID)
	default:
		return []models.Booking{}, nil
	}

	if err := query.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// emitNotification appends an inbox row inside the caller's transaction.
// There is no external delivery channel; the row is the notification.
func emitNotification(tx *gorm.DB, userID uint, bookingID *uuid.UUID, message string) error {
	notification := models.Notification{
		UserID:    userID,
		BookingID: bookingID,
		Message:   message,
	}
	return tx.Create(&notification).Error
}
