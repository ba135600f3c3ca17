package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusAccepted  BookingStatus = "accepted"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusCompleted BookingStatus = "completed"
)

// Booking links one customer to one photographer for a requested date and
// time. Status starts at pending; only the assigned photographer moves it.
type Booking struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID     uint          `gorm:"not null;index" json:"customer"`
	Customer       User          `gorm:"foreignKey:CustomerID" json:"-"`
	PhotographerID uint          `gorm:"not null;index" json:"photographer"`
	Photographer   User          `gorm:"foreignKey:PhotographerID" json:"-"`
	Date           string        `gorm:"type:date;not null" json:"date"`
	Time           string        `gorm:"type:time;not null" json:"time"`
	Status         BookingStatus `gorm:"not null;default:'pending'" json:"status"`
	CreatedAt      time.Time     `json:"createdAt"`
}

func (Booking) TableName() string {
	return "bookings"
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
