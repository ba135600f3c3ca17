package models

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Role string

const (
	RoleCustomer     Role = "customer"
	RolePhotographer Role = "photographer"
)

// User carries an immutable role assigned at signup. No endpoint ever
// changes it; authorization everywhere reads this field.
type User struct {
	gorm.Model
	Email       string `gorm:"uniqueIndex;not null" json:"email"`
	Password    string `gorm:"not null" json:"-"`
	DisplayName string `gorm:"column:display_name" json:"displayName"`
	Role        Role   `gorm:"not null" json:"role"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsCustomer() bool {
	return u.Role == RoleCustomer
}

func (u *User) IsPhotographer() bool {
	return u.Role == RolePhotographer
}

func (u *User) HashPassword() error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
}
