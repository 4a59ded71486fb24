package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"hotel-booking/models"
)

// minShownRoomTypes is the minimum number of entries the index returns;
// when fewer qualify, the result is padded with suggested (not confirmed
// available) room types so the browsing page is never empty.
const minShownRoomTypes = 5

// fallbackScanDays bounds the forward scan for the nearest free night when
// no date range was requested.
const fallbackScanDays = 365

// RoomTypeAvailability is one index entry. Confirmed distinguishes entries
// with a verified free room for the interval from backfilled suggestions.
type RoomTypeAvailability struct {
	RoomType  models.RoomType `json:"roomType"`
	Confirmed bool            `json:"confirmed"`
}

// AvailabilityResult carries the effective date range alongside the entries:
// when the caller gave no dates, CheckIn/CheckOut hold the nearest found
// single-night window, for display purposes only.
type AvailabilityResult struct {
	CheckIn   *time.Time             `json:"checkIn,omitempty"`
	CheckOut  *time.Time             `json:"checkOut,omitempty"`
	RoomTypes []RoomTypeAvailability `json:"roomTypes"`
}

// AvailabilityService answers which room types have at least one free room
// for a half-open [check_in, check_out) interval.
type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// bookedRoomIDs returns the ids of rooms held by any non-deleted order
// overlapping [checkIn, checkOut). Two intervals [a,b) and [c,d) overlap
// iff a < d and b > c.
func bookedRoomIDs(db *gorm.DB, checkIn, checkOut time.Time) (map[uint]struct{}, error) {
	var ids []uint
	if err := db.Model(&models.Order{}).
		Where("check_in < ? AND check_out > ?", checkOut, checkIn).
		Pluck("room_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to query booked rooms: %w", err)
	}
	booked := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		booked[id] = struct{}{}
	}
	return booked, nil
}

// FindAvailableRoomTypes implements the availability index. minCapacity == 0
// disables the capacity filter. Passing nil dates triggers the forward scan
// for the nearest single-night window.
func (s *AvailabilityService) FindAvailableRoomTypes(checkIn, checkOut *time.Time, minCapacity uint) (AvailabilityResult, error) {
	result := AvailabilityResult{RoomTypes: []RoomTypeAvailability{}}

	roomTypes, err := s.loadRoomTypes(minCapacity)
	if err != nil {
		return result, err
	}

	if checkIn == nil || checkOut == nil {
		in, out, found, err := s.nearestFreeNight(roomTypes)
		if err != nil {
			return result, err
		}
		if found {
			checkIn, checkOut = &in, &out
		}
	}

	seen := make(map[uint]struct{})
	if checkIn != nil && checkOut != nil {
		result.CheckIn = checkIn
		result.CheckOut = checkOut

		booked, err := bookedRoomIDs(s.DB, *checkIn, *checkOut)
		if err != nil {
			return result, err
		}

		for _, rt := range roomTypes {
			for _, room := range rt.Rooms {
				if _, taken := booked[room.ID]; !taken {
					if _, dup := seen[rt.ID]; !dup {
						result.RoomTypes = append(result.RoomTypes, RoomTypeAvailability{RoomType: rt, Confirmed: true})
						seen[rt.ID] = struct{}{}
					}
					break
				}
			}
		}
	} else {
		// No window at all within the horizon: show everything that
		// matches the capacity filter, unconfirmed.
		for _, rt := range roomTypes {
			result.RoomTypes = append(result.RoomTypes, RoomTypeAvailability{RoomType: rt})
			seen[rt.ID] = struct{}{}
		}
	}

	// Backfill up to the minimum with capacity-filtered suggestions. Never
	// duplicates a room type already present.
	if len(result.RoomTypes) < minShownRoomTypes {
		for _, rt := range roomTypes {
			if len(result.RoomTypes) >= minShownRoomTypes {
				break
			}
			if _, dup := seen[rt.ID]; dup {
				continue
			}
			result.RoomTypes = append(result.RoomTypes, RoomTypeAvailability{RoomType: rt})
			seen[rt.ID] = struct{}{}
		}
	}

	return result, nil
}

func (s *AvailabilityService) loadRoomTypes(minCapacity uint) ([]models.RoomType, error) {
	q := s.DB.Preload("Rooms").Preload("Conveniences").Preload("Tariffs").Order("id")
	if minCapacity > 0 {
		q = q.Where("capacity >= ?", minCapacity)
	}
	var roomTypes []models.RoomType
	if err := q.Find(&roomTypes).Error; err != nil {
		return nil, fmt.Errorf("failed to load room types: %w", err)
	}
	return roomTypes, nil
}

// nearestFreeNight scans forward day by day for the first single-night
// window with any free room among the given room types.
func (s *AvailabilityService) nearestFreeNight(roomTypes []models.RoomType) (time.Time, time.Time, bool, error) {
	today := time.Now().Truncate(24 * time.Hour)
	for offset := 0; offset < fallbackScanDays; offset++ {
		in := today.AddDate(0, 0, offset)
		out := in.AddDate(0, 0, 1)

		booked, err := bookedRoomIDs(s.DB, in, out)
		if err != nil {
			return time.Time{}, time.Time{}, false, err
		}
		for _, rt := range roomTypes {
			for _, room := range rt.Rooms {
				if _, taken := booked[room.ID]; !taken {
					return in, out, true, nil
				}
			}
		}
	}
	return time.Time{}, time.Time{}, false, nil
}

// AllocateRoom picks the first free room of the type by ascending id, or
// ErrNotAvailable when every room of the type is held by an overlapping
// order. The booked set spans all room types; a room belongs to exactly one
// type, so the extra exclusions are harmless.
func AllocateRoom(db *gorm.DB, roomTypeID uint, checkIn, checkOut time.Time) (*models.Room, error) {
	booked, err := bookedRoomIDs(db, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	var rooms []models.Room
	if err := db.Where("room_type_id = ?", roomTypeID).Order("id").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to load rooms: %w", err)
	}

	for i := range rooms {
		if _, taken := booked[rooms[i].ID]; !taken {
			return &rooms[i], nil
		}
	}
	return nil, ErrNotAvailable
}
