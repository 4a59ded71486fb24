package models

import "time"

// Convenience is a priced add-on attachable to a RoomType (default set)
// and/or individually to an Order (override set).
type Convenience struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name  string  `gorm:"size:255" json:"name"`
	Icon  string  `gorm:"size:100" json:"icon,omitempty"`
	Price float64 `gorm:"default:0" json:"price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
