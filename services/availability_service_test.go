package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hotel-booking/models"
)

// seedRoomTypes creates n room types with one room each, numbered from 201.
func seedRoomTypes(t *testing.T, db *gorm.DB, n int, capacity uint) []models.RoomType {
	t.Helper()

	var out []models.RoomType
	for i := 0; i < n; i++ {
		rt := models.RoomType{Name: string(rune('A' + i)), Capacity: capacity}
		require.NoError(t, db.Create(&rt).Error)
		room := models.Room{Number: fmt.Sprintf("%d01", 2+i), RoomTypeID: rt.ID}
		require.NoError(t, db.Create(&room).Error)
		out = append(out, rt)
	}
	return out
}

func bookRoom(t *testing.T, db *gorm.DB, roomID uint, checkIn, checkOut time.Time) {
	t.Helper()

	profile := models.Profile{FirstName: "G", SecondName: "H", Email: "g@h.i", IsGuest: true}
	require.NoError(t, db.Create(&profile).Error)
	order := models.Order{
		OrderNumber: fmt.Sprintf("F20260101%05d", roomID),
		CreatorID:   profile.ID,
		RoomID:      roomID,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
	}
	require.NoError(t, db.Create(&order).Error)
}

func confirmedIDs(result AvailabilityResult) []uint {
	var ids []uint
	for _, entry := range result.RoomTypes {
		if entry.Confirmed {
			ids = append(ids, entry.RoomType.ID)
		}
	}
	return ids
}

func TestFindAvailableRoomTypes_ExcludesFullyBookedType(t *testing.T) {
	db := newTestDB(t)
	types := seedRoomTypes(t, db, 6, 2)
	svc := NewAvailabilityService(db)

	var room models.Room
	require.NoError(t, db.Where("room_type_id = ?", types[0].ID).First(&room).Error)
	bookRoom(t, db, room.ID, date(2026, 1, 10), date(2026, 1, 12))

	in := date(2026, 1, 11)
	out := date(2026, 1, 13)
	result, err := svc.FindAvailableRoomTypes(&in, &out, 0)
	require.NoError(t, err)

	assert.NotContains(t, confirmedIDs(result), types[0].ID)
	assert.Len(t, confirmedIDs(result), 5)
}

func TestFindAvailableRoomTypes_BoundaryDatesDoNotOverlap(t *testing.T) {
	db := newTestDB(t)
	types := seedRoomTypes(t, db, 1, 2)
	svc := NewAvailabilityService(db)

	var room models.Room
	require.NoError(t, db.Where("room_type_id = ?", types[0].ID).First(&room).Error)
	bookRoom(t, db, room.ID, date(2026, 1, 10), date(2026, 1, 12))

	// half-open interval: a stay starting on the check-out day is free
	in := date(2026, 1, 12)
	out := date(2026, 1, 14)
	result, err := svc.FindAvailableRoomTypes(&in, &out, 0)
	require.NoError(t, err)
	assert.Contains(t, confirmedIDs(result), types[0].ID)
}

func TestFindAvailableRoomTypes_CapacityFilter(t *testing.T) {
	db := newTestDB(t)
	small := seedRoomTypes(t, db, 2, 2)
	large := models.RoomType{Name: "Family", Capacity: 5}
	require.NoError(t, db.Create(&large).Error)
	require.NoError(t, db.Create(&models.Room{Number: "501", RoomTypeID: large.ID}).Error)
	svc := NewAvailabilityService(db)

	in := date(2026, 1, 10)
	out := date(2026, 1, 11)
	result, err := svc.FindAvailableRoomTypes(&in, &out, 4)
	require.NoError(t, err)

	ids := confirmedIDs(result)
	assert.Contains(t, ids, large.ID)
	for _, rt := range small {
		assert.NotContains(t, ids, rt.ID)
	}
	// backfill also respects the capacity filter
	for _, entry := range result.RoomTypes {
		assert.GreaterOrEqual(t, entry.RoomType.Capacity, uint(4))
	}
}

func TestFindAvailableRoomTypes_BackfillFlagsAndNoDuplicates(t *testing.T) {
	db := newTestDB(t)
	types := seedRoomTypes(t, db, 3, 2)
	svc := NewAvailabilityService(db)

	// book out every room of the last two types
	for _, rt := range types[1:] {
		var rooms []models.Room
		require.NoError(t, db.Where("room_type_id = ?", rt.ID).Find(&rooms).Error)
		for _, room := range rooms {
			bookRoom(t, db, room.ID, date(2026, 1, 10), date(2026, 1, 12))
		}
	}

	in := date(2026, 1, 10)
	out := date(2026, 1, 12)
	result, err := svc.FindAvailableRoomTypes(&in, &out, 0)
	require.NoError(t, err)

	// one confirmed entry, padded with suggestions up to the catalog size
	require.Len(t, result.RoomTypes, 3)
	assert.Equal(t, []uint{types[0].ID}, confirmedIDs(result))

	seen := map[uint]int{}
	for _, entry := range result.RoomTypes {
		seen[entry.RoomType.ID]++
	}
	for id, n := range seen {
		assert.Equal(t, 1, n, "room type %d appears more than once", id)
	}
	assert.False(t, result.RoomTypes[1].Confirmed)
	assert.False(t, result.RoomTypes[2].Confirmed)
}

func TestFindAvailableRoomTypes_NilDatesFallBackToNearestNight(t *testing.T) {
	db := newTestDB(t)
	seedRoomTypes(t, db, 1, 2)
	svc := NewAvailabilityService(db)

	result, err := svc.FindAvailableRoomTypes(nil, nil, 0)
	require.NoError(t, err)

	require.NotNil(t, result.CheckIn)
	require.NotNil(t, result.CheckOut)
	assert.Equal(t, result.CheckIn.AddDate(0, 0, 1), *result.CheckOut, "fallback window is a single night")
	assert.NotEmpty(t, confirmedIDs(result))
}

func TestAllocateRoom(t *testing.T) {
	db := newTestDB(t)
	cat := seedCatalog(t, db, "101", "102")

	in := date(2026, 1, 10)
	out := date(2026, 1, 12)

	room, err := AllocateRoom(db, cat.RoomType.ID, in, out)
	require.NoError(t, err)
	assert.Equal(t, cat.Rooms[0].ID, room.ID, "first-fit by ascending id")

	bookRoom(t, db, cat.Rooms[0].ID, in, out)
	room, err = AllocateRoom(db, cat.RoomType.ID, date(2026, 1, 11), date(2026, 1, 13))
	require.NoError(t, err)
	assert.Equal(t, cat.Rooms[1].ID, room.ID, "booked room is excluded")

	bookRoom(t, db, cat.Rooms[1].ID, in, out)
	_, err = AllocateRoom(db, cat.RoomType.ID, in, out)
	assert.ErrorIs(t, err, ErrNotAvailable)
}
