package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotel-booking/config"
	"hotel-booking/models"
)

// newTestDB opens a fresh in-memory sqlite database, named after the test
// so parallel tests don't share state, and applies the schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

// catalog is the minimal booking fixture: one room type with rooms, a
// tariff and a priced convenience.
type catalog struct {
	RoomType models.RoomType
	Rooms    []models.Room
	Tariff   models.Tariff
	WiFi     models.Convenience
}

// seedCatalog creates a "Standard" room type (capacity 2) with the given
// room numbers, a 1000/night tariff and a Wi-Fi convenience priced 100.
func seedCatalog(t *testing.T, db *gorm.DB, roomNumbers ...string) catalog {
	t.Helper()

	rt := models.RoomType{Name: "Standard", Description: "Standard room", Capacity: 2}
	require.NoError(t, db.Create(&rt).Error)

	var rooms []models.Room
	for _, number := range roomNumbers {
		room := models.Room{Number: number, RoomTypeID: rt.ID}
		require.NoError(t, db.Create(&room).Error)
		rooms = append(rooms, room)
	}

	tariff := models.Tariff{
		RoomTypeID:    rt.ID,
		Title:         "Room only",
		PricePerNight: 1000,
		BedType:       models.BedTypeDouble,
	}
	require.NoError(t, db.Create(&tariff).Error)

	wifi := models.Convenience{Name: "Wi-Fi", Price: 100}
	require.NoError(t, db.Create(&wifi).Error)

	return catalog{RoomType: rt, Rooms: rooms, Tariff: tariff, WiFi: wifi}
}

// seedProfile creates a registered (non-guest) profile.
func seedProfile(t *testing.T, db *gorm.DB) models.Profile {
	t.Helper()

	profile := models.Profile{
		FirstName:   "Ivan",
		SecondName:  "Petrov",
		PhoneNumber: "+70000000000",
		Email:       "ivan@example.com",
	}
	require.NoError(t, db.Create(&profile).Error)
	return profile
}
