package models

// OrderSequence holds the per-day counter used for order numbers. The row
// for the current day is locked and incremented inside the order-creation
// transaction, so two concurrent creations cannot reserve the same value.
type OrderSequence struct {
	Day       string `gorm:"primaryKey;size:8" json:"day"` // yyyymmdd
	LastValue uint   `gorm:"column:last_value" json:"lastValue"`
}
