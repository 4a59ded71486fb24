package models

import (
	"time"

	"gorm.io/gorm"
)

// Order is a confirmed booking: the source of truth for conflict checks.
// The half-open stay interval is [CheckIn, CheckOut); CheckOut must be
// strictly after CheckIn. ReceiptFile points at the derived text artifact,
// regenerated on every save and removed with the order.
type Order struct {
	ID uint `gorm:"primaryKey" json:"id"`

	OrderNumber string `gorm:"column:order_number;uniqueIndex;size:14" json:"orderNumber"`

	CreatorID uint `gorm:"column:creator_id;index" json:"creatorId"`
	RoomID    uint `gorm:"column:room_id;index" json:"roomId"`
	TariffID  uint `gorm:"column:tariff_id;index" json:"tariffId"`

	CheckIn     time.Time `gorm:"column:check_in;index" json:"checkIn"`
	CheckOut    time.Time `gorm:"column:check_out;index" json:"checkOut"`
	ArrivalTime *string   `gorm:"column:arrival_time;size:5" json:"arrivalTime,omitempty"`
	Wishes      string    `gorm:"type:text" json:"wishes,omitempty"`

	Conveniences []Convenience `gorm:"many2many:order_conveniences" json:"conveniences,omitempty"`

	TotalPrice  float64 `gorm:"column:total_price;default:0" json:"totalPrice"`
	ReceiptFile string  `gorm:"column:receipt_file;size:255" json:"receiptFile,omitempty"`

	Creator Profile `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Room    Room    `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Tariff  Tariff  `gorm:"foreignKey:TariffID" json:"tariff,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Nights returns the night count of the stay interval.
func (o Order) Nights() int {
	return int(o.CheckOut.Sub(o.CheckIn).Hours() / 24)
}
