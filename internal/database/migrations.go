package database

import (
	"github.com/lenslink/lenslink-backend/internal/models"
	"gorm.io/gorm"
)

func RunMigrations(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.PhotographerProfile{},
		&models.Booking{},
		&models.Notification{},
	)
	if err != nil {
		return err
	}

	// Role and status enums are enforced at the database level too, so bad
	// data cannot arrive through anything but the API.
	if db.Migrator().HasTable(&models.User{}) {
		db.Exec(`ALTER TABLE users DROP CONSTRAINT IF EXISTS users_role_check`)
		if err := db.Exec(`ALTER TABLE users ADD CONSTRAINT users_role_check CHECK (role IN ('customer', 'photographer'))`).Error; err != nil {
			return err
		}
	}

	if db.Migrator().HasTable(&models.Booking{}) {
		db.Exec(`ALTER TABLE bookings DROP CONSTRAINT IF EXISTS bookings_status_check`)
		if err := db.Exec(`ALTER TABLE bookings ADD CONSTRAINT bookings_status_check CHECK (status IN ('pending', 'accepted', 'rejected', 'completed'))`).Error; err != nil {
			return err
		}
	}

	return nil
}
