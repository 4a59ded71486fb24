package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RoomType is a category of rooms sharing capacity, description and a
// default convenience set. Images holds an ordered JSON array of paths.
type RoomType struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string `gorm:"size:255" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Capacity    uint   `gorm:"default:1" json:"capacity"`

	Images datatypes.JSON `gorm:"column:images" json:"images,omitempty"`

	Conveniences []Convenience `gorm:"many2many:room_type_conveniences" json:"conveniences,omitempty"`
	Tariffs      []Tariff      `gorm:"foreignKey:RoomTypeID" json:"tariffs,omitempty"`
	Rooms        []Room        `gorm:"foreignKey:RoomTypeID" json:"rooms,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
