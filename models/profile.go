package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Profile is a guest or registered account holder. Guests have no password
// and are created inline at booking time.
type Profile struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FirstName   string     `gorm:"size:255" json:"firstName"`
	SecondName  string     `gorm:"size:255" json:"secondName"`
	PhoneNumber string     `gorm:"size:20" json:"phoneNumber"`
	Email       string     `gorm:"size:255;index" json:"email"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`

	PasswordHash   string `gorm:"size:255" json:"-"`
	EmailConfirmed bool   `gorm:"default:false" json:"emailConfirmed"`
	IsGuest        bool   `gorm:"default:false" json:"isGuest"`

	Orders []Order `gorm:"foreignKey:CreatorID" json:"orders,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// FullName joins first and second name for display and receipts.
func (p Profile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.SecondName)
}
