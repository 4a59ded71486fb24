package models

import (
	"time"
)

// Room is immutable reference data: a concrete bookable unit belonging to
// exactly one RoomType.
type Room struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Number     string `gorm:"column:number;uniqueIndex;size:50" json:"number"`
	RoomTypeID uint   `gorm:"column:room_type_id;index" json:"roomTypeId"`

	RoomType RoomType `gorm:"foreignKey:RoomTypeID" json:"roomType,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
