package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotel-booking/models"
)

// orderNumberRetries bounds retry-with-regeneration when an order number
// insert hits the unique index.
const orderNumberRetries = 3

// orderSortFields whitelists the sort keys accepted for profile order
// listings.
var orderSortFields = map[string]string{
	"tariff":        "tariff_id",
	"-tariff":       "tariff_id DESC",
	"check_in":      "check_in",
	"-check_in":     "check_in DESC",
	"total_price":   "total_price",
	"-total_price":  "total_price DESC",
	"arrival_time":  "arrival_time",
	"-arrival_time": "arrival_time DESC",
}

// GuestDetails describes a guest customer booking without an account. A
// guest profile is created inline as part of the order transaction.
type GuestDetails struct {
	FirstName   string `json:"firstName"`
	SecondName  string `json:"secondName"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
}

// CreateOrderInput is everything the ledger needs to confirm a booking.
// Either ProfileID or Guest must be set.
type CreateOrderInput struct {
	ProfileID uint
	Guest     *GuestDetails

	RoomTypeID uint
	TariffID   uint

	CheckIn  time.Time
	CheckOut time.Time

	ArrivalTime    *string
	Wishes         string
	ConvenienceIDs []uint
}

// UpdateOrderInput carries the editable order fields. Nil date pointers
// leave the stay interval unchanged.
type UpdateOrderInput struct {
	CheckIn        *time.Time
	CheckOut       *time.Time
	ArrivalTime    *string
	Wishes         *string
	ConvenienceIDs *[]uint
}

// OrderService is the order ledger: it records confirmed bookings, computes
// prices and keeps the derived receipt artifact in lockstep with the order
// lifecycle.
type OrderService struct {
	DB       *gorm.DB
	Receipts *ReceiptService
}

func NewOrderService(db *gorm.DB, receipts *ReceiptService) *OrderService {
	return &OrderService{DB: db, Receipts: receipts}
}

// CalculateTotalPrice is deterministic: nights × price-per-night plus the
// prices of the resolved convenience set.
func CalculateTotalPrice(pricePerNight float64, nights int, conveniences []models.Convenience) float64 {
	total := pricePerNight * float64(nights)
	for _, conv := range conveniences {
		total += conv.Price
	}
	return total
}

// resolveConveniences returns the order-level selection when non-empty,
// falling back to the room type's default set.
func resolveConveniences(selected, defaults []models.Convenience) []models.Convenience {
	if len(selected) > 0 {
		return selected
	}
	return defaults
}

// CreateOrder validates the stay interval, allocates a free room of the
// requested type, reserves the next order number and persists the order in
// one transaction. Receipt generation runs afterwards as a distinct step:
// a write failure surfaces as ErrReceiptWrite but the order stands.
func (s *OrderService) CreateOrder(input CreateOrderInput) (*models.Order, error) {
	if !input.CheckOut.After(input.CheckIn) {
		return nil, ErrInvalidDateRange
	}

	var tariff models.Tariff
	if err := s.DB.Preload("RoomType.Conveniences").First(&tariff, input.TariffID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("tariff %d not found", input.TariffID)
		}
		return nil, fmt.Errorf("db error loading tariff: %w", err)
	}

	roomTypeID := input.RoomTypeID
	if roomTypeID == 0 {
		roomTypeID = tariff.RoomTypeID
	}
	if roomTypeID != tariff.RoomTypeID {
		return nil, fmt.Errorf("tariff %d does not belong to room type %d", tariff.ID, roomTypeID)
	}

	var selected []models.Convenience
	if len(input.ConvenienceIDs) > 0 {
		if err := s.DB.Where("id IN ?", input.ConvenienceIDs).Find(&selected).Error; err != nil {
			return nil, fmt.Errorf("db error loading conveniences: %w", err)
		}
	}

	nights := int(input.CheckOut.Sub(input.CheckIn).Hours() / 24)
	totalPrice := CalculateTotalPrice(tariff.PricePerNight, nights,
		resolveConveniences(selected, tariff.RoomType.Conveniences))

	var orderID uint
	var createErr error
	for attempt := 0; attempt < orderNumberRetries; attempt++ {
		createErr = s.DB.Transaction(func(tx *gorm.DB) error {
			creatorID := input.ProfileID
			if creatorID == 0 {
				if input.Guest == nil {
					return errors.New("missing creator: profile id or guest details required")
				}
				guest := models.Profile{
					FirstName:   input.Guest.FirstName,
					SecondName:  input.Guest.SecondName,
					PhoneNumber: input.Guest.PhoneNumber,
					Email:       input.Guest.Email,
					IsGuest:     true,
				}
				if err := tx.Create(&guest).Error; err != nil {
					return fmt.Errorf("failed to create guest profile: %w", err)
				}
				creatorID = guest.ID
			} else {
				var profile models.Profile
				if err := tx.First(&profile, creatorID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return ErrProfileNotFound
					}
					return fmt.Errorf("db error loading profile: %w", err)
				}
			}

			room, err := allocateRoomLocked(tx, roomTypeID, input.CheckIn, input.CheckOut)
			if err != nil {
				return err
			}

			number, err := nextOrderNumber(tx, time.Now())
			if err != nil {
				return err
			}

			order := models.Order{
				OrderNumber: number,
				CreatorID:   creatorID,
				RoomID:      room.ID,
				TariffID:    tariff.ID,
				CheckIn:     input.CheckIn,
				CheckOut:    input.CheckOut,
				ArrivalTime: input.ArrivalTime,
				Wishes:      input.Wishes,
				TotalPrice:  totalPrice,
			}
			if err := tx.Create(&order).Error; err != nil {
				return fmt.Errorf("failed to create order: %w", err)
			}
			if len(selected) > 0 {
				if err := tx.Model(&order).Association("Conveniences").Append(selected); err != nil {
					return fmt.Errorf("failed to attach conveniences: %w", err)
				}
			}
			orderID = order.ID
			return nil
		})

		if createErr == nil {
			break
		}
		if isDuplicateKeyErr(createErr) {
			log.Printf("order number collision (attempt %d), regenerating", attempt+1)
			continue
		}
		return nil, createErr
	}
	if createErr != nil {
		if isDuplicateKeyErr(createErr) {
			return nil, fmt.Errorf("%w: %v", ErrOrderNumberCollision, createErr)
		}
		return nil, createErr
	}

	return s.finishWithReceipt(orderID)
}

// withUpdateLock adds FOR UPDATE on dialects that support it. The sqlite
// driver used in tests serializes writers on its own and rejects the
// clause.
func withUpdateLock(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// allocateRoomLocked serializes allocation per room type: it takes row
// locks on the type's rooms before checking overlaps, so two concurrent
// creations cannot both observe the last room as free.
func allocateRoomLocked(tx *gorm.DB, roomTypeID uint, checkIn, checkOut time.Time) (*models.Room, error) {
	var rooms []models.Room
	if err := withUpdateLock(tx).
		Where("room_type_id = ?", roomTypeID).
		Order("id").
		Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to lock rooms: %w", err)
	}

	booked, err := bookedRoomIDs(tx, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	for i := range rooms {
		if _, taken := booked[rooms[i].ID]; !taken {
			return &rooms[i], nil
		}
	}
	return nil, ErrNotAvailable
}

// nextOrderNumber reserves the next value of the per-day sequence under a
// row lock and formats it as F + yyyymmdd + 5-digit zero-padded counter.
func nextOrderNumber(tx *gorm.DB, now time.Time) (string, error) {
	day := now.Format("20060102")

	var seq models.OrderSequence
	err := withUpdateLock(tx).
		Where("day = ?", day).
		First(&seq).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		seq = models.OrderSequence{Day: day}
		if err := tx.Create(&seq).Error; err != nil {
			return "", fmt.Errorf("failed to create order sequence: %w", err)
		}
	} else if err != nil {
		return "", fmt.Errorf("failed to lock order sequence: %w", err)
	}

	seq.LastValue++
	if err := tx.Model(&models.OrderSequence{}).
		Where("day = ?", day).
		Update("last_value", seq.LastValue).Error; err != nil {
		return "", fmt.Errorf("failed to advance order sequence: %w", err)
	}

	return fmt.Sprintf("F%s%05d", day, seq.LastValue), nil
}

// isDuplicateKeyErr recognizes unique-index violations from MySQL (1062)
// and from the sqlite driver used in tests.
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	lc := strings.ToLower(err.Error())
	return strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique constraint")
}

// finishWithReceipt reloads the persisted order with its relations and
// derives the receipt. The order is returned even when the receipt write
// fails; that failure is reported as a wrapped ErrReceiptWrite.
func (s *OrderService) finishWithReceipt(orderID uint) (*models.Order, error) {
	order, err := s.GetOrder(orderID)
	if err != nil {
		return nil, err
	}

	ref, genErr := s.Receipts.Generate(order)
	if genErr != nil {
		log.Printf("warning: receipt generation failed for order %s: %v", order.OrderNumber, genErr)
		return order, genErr
	}

	if ref != order.ReceiptFile {
		if err := s.DB.Model(&models.Order{}).Where("id = ?", orderID).
			Update("receipt_file", ref).Error; err != nil {
			return order, fmt.Errorf("failed to record receipt reference: %w", err)
		}
		order.ReceiptFile = ref
	}
	return order, nil
}

// GetOrder loads an order with everything the receipt and API responses
// need.
func (s *OrderService) GetOrder(orderID uint) (*models.Order, error) {
	var order models.Order
	if err := s.DB.
		Preload("Creator").
		Preload("Room.RoomType.Conveniences").
		Preload("Tariff").
		Preload("Conveniences").
		First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	return &order, nil
}

// UpdateOrder applies the editable fields, re-validates the stay interval,
// re-checks the room for conflicts when dates change, recomputes the price
// and regenerates the receipt in place of the previous artifact.
func (s *OrderService) UpdateOrder(orderID uint, input UpdateOrderInput) (*models.Order, error) {
	order, err := s.GetOrder(orderID)
	if err != nil {
		return nil, err
	}

	checkIn := order.CheckIn
	checkOut := order.CheckOut
	if input.CheckIn != nil {
		checkIn = *input.CheckIn
	}
	if input.CheckOut != nil {
		checkOut = *input.CheckOut
	}
	if !checkOut.After(checkIn) {
		return nil, ErrInvalidDateRange
	}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		datesChanged := !checkIn.Equal(order.CheckIn) || !checkOut.Equal(order.CheckOut)
		if datesChanged {
			if err := withUpdateLock(tx).
				First(&models.Room{}, order.RoomID).Error; err != nil {
				return fmt.Errorf("failed to lock room: %w", err)
			}
			var overlapping int64
			if err := tx.Model(&models.Order{}).
				Where("room_id = ? AND id <> ? AND check_in < ? AND check_out > ?",
					order.RoomID, order.ID, checkOut, checkIn).
				Count(&overlapping).Error; err != nil {
				return fmt.Errorf("failed to check overlaps: %w", err)
			}
			if overlapping > 0 {
				return ErrNotAvailable
			}
		}

		if input.ConvenienceIDs != nil {
			var selected []models.Convenience
			if len(*input.ConvenienceIDs) > 0 {
				if err := tx.Where("id IN ?", *input.ConvenienceIDs).Find(&selected).Error; err != nil {
					return fmt.Errorf("db error loading conveniences: %w", err)
				}
			}
			if err := tx.Model(order).Association("Conveniences").Replace(selected); err != nil {
				return fmt.Errorf("failed to replace conveniences: %w", err)
			}
			order.Conveniences = selected
		}

		updates := map[string]interface{}{
			"check_in":  checkIn,
			"check_out": checkOut,
		}
		if input.ArrivalTime != nil {
			updates["arrival_time"] = *input.ArrivalTime
		}
		if input.Wishes != nil {
			updates["wishes"] = *input.Wishes
		}

		nights := int(checkOut.Sub(checkIn).Hours() / 24)
		updates["total_price"] = CalculateTotalPrice(order.Tariff.PricePerNight, nights,
			resolveConveniences(order.Conveniences, order.Room.RoomType.Conveniences))

		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update order: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.finishWithReceipt(orderID)
}

// DeleteOrder soft-deletes the order and removes its receipt artifact as
// one logical operation. Receipt removal is best-effort and never rolls the
// deletion back.
func (s *OrderService) DeleteOrder(orderID uint) error {
	var order models.Order
	if err := s.DB.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to load order: %w", err)
	}

	if err := s.DB.Delete(&order).Error; err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	s.Receipts.Remove(&order)
	return nil
}

// OrdersByProfile lists a profile's orders using the sort whitelist;
// unknown sort keys fall back to newest check-in first.
func (s *OrderService) OrdersByProfile(profileID uint, sort string) ([]models.Order, error) {
	orderBy, ok := orderSortFields[sort]
	if !ok {
		orderBy = "check_in DESC"
	}

	var orders []models.Order
	if err := s.DB.
		Preload("Room.RoomType").
		Preload("Tariff").
		Preload("Conveniences").
		Where("creator_id = ?", profileID).
		Order(orderBy).
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}
