package models

import "time"

// Bed type choices for tariffs.
const (
	BedTypeDouble    = "double"
	BedTypeSingleTwo = "single_two"
	BedTypeQueen     = "queen"
	BedTypeKing      = "king"
)

// Tariff is a priced rate plan tied to a RoomType.
type Tariff struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RoomTypeID       uint    `gorm:"column:room_type_id;index" json:"roomTypeId"`
	Title            string  `gorm:"size:255" json:"title"`
	PricePerNight    float64 `gorm:"column:price_per_night" json:"pricePerNight"`
	IncludesBreakfast bool   `gorm:"column:includes_breakfast;default:false" json:"includesBreakfast"`
	BedType          string  `gorm:"column:bed_type;size:64;default:double" json:"bedType"`
	Cancellation     string  `gorm:"size:2000" json:"cancellation"`

	RoomType RoomType `gorm:"foreignKey:RoomTypeID" json:"roomType,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
