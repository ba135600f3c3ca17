package models

import (
	"errors"

	"gorm.io/gorm"
)

var ErrNotPhotographer = errors.New("user must have photographer role to own a photographer profile")

// PhotographerProfile is owned 1:1 by a photographer-role user.
type PhotographerProfile struct {
	gorm.Model
	UserID              uint   `gorm:"uniqueIndex;not null" json:"userId"`
	User                User   `gorm:"foreignKey:UserID" json:"-"`
	Bio                 string `json:"bio"`
	ProfileImage        string `gorm:"column:profile_image" json:"profile_image"`
	AvailableForBooking bool   `gorm:"default:true" json:"availableForBooking"`
}

func (PhotographerProfile) TableName() string {
	return "photographer_profiles"
}

// BeforeCreate rejects profiles attached to non-photographer users. The
// service layer checks this too; the hook is the invariant of last resort.
func (p *PhotographerProfile) BeforeCreate(tx *gorm.DB) error {
	var user User
	if err := tx.First(&user, p.UserID).Error; err != nil {
		return err
	}
	if !user.IsPhotographer() {
		return ErrNotPhotographer
	}
	return nil
}
