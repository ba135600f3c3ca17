package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification is one row in a user's inbox. Rows are appended by the
// booking lifecycle only and never deleted; the read flag is the single
// mutable field and flips one way.
type Notification struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;index" json:"-"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
	BookingID *uuid.UUID `gorm:"type:uuid" json:"booking"`
	Booking   *Booking   `gorm:"foreignKey:BookingID" json:"-"`
	Message   string     `gorm:"not null" json:"message"`
	IsRead    bool       `gorm:"column:is_read;default:false" json:"is_read"`
	CreatedAt time.Time  `json:"createdAt"`
}

func (Notification) TableName() string {
	return "notifications"
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
