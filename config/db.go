package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotel-booking/models"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "hotel_booking")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

// Migrate applies the schema in parent->child order.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.HotelSetting{},
		&models.Convenience{},
		&models.RoomType{},
		&models.Room{},
		&models.Tariff{},
		&models.Profile{},
		&models.OrderSequence{},
		&models.Order{},
	)
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	if err := Migrate(DB); err != nil {
		return err
	}

	SeedDatabase(DB)
	return nil
}

// SeedDatabase fills in the reference catalog on first run so the
// availability page has something to show.
func SeedDatabase(db *gorm.DB) {
	var settingCount int64
	db.Model(&models.HotelSetting{}).Count(&settingCount)
	if settingCount == 0 {
		setting := models.HotelSetting{
			Name:          "DSTU Hotel",
			CheckInFrom:   "14:00",
			CheckOutUntil: "12:00",
		}
		if err := db.Create(&setting).Error; err != nil {
			log.Printf("warning: failed to seed hotel settings: %v", err)
		}
	}

	var convCount int64
	db.Model(&models.Convenience{}).Count(&convCount)
	var conveniences []models.Convenience
	if convCount == 0 {
		conveniences = []models.Convenience{
			{Name: "Wi-Fi", Icon: "wifi", Price: 0},
			{Name: "Breakfast", Icon: "coffee", Price: 350},
			{Name: "Late check-out", Icon: "clock", Price: 500},
			{Name: "Parking", Icon: "car", Price: 200},
		}
		if err := db.Create(&conveniences).Error; err != nil {
			log.Printf("warning: failed to seed conveniences: %v", err)
		}
	}

	var rtCount int64
	db.Model(&models.RoomType{}).Count(&rtCount)
	if rtCount != 0 {
		return
	}

	roomTypes := []models.RoomType{
		{Name: "Standard", Description: "Standard room", Capacity: 2},
		{Name: "Superior", Description: "Superior room", Capacity: 3},
		{Name: "Deluxe", Description: "Deluxe room", Capacity: 4},
		{Name: "Suite", Description: "Suite with a separate lounge", Capacity: 5},
	}
	if err := db.Create(&roomTypes).Error; err != nil {
		log.Printf("warning: failed to seed room types: %v", err)
		return
	}
	if len(conveniences) > 0 {
		for i := range roomTypes {
			if err := db.Model(&roomTypes[i]).Association("Conveniences").Append(conveniences[:2]); err != nil {
				log.Printf("warning: failed to attach default conveniences: %v", err)
			}
		}
	}

	number := 100
	for _, rt := range roomTypes {
		for n := 0; n < 3; n++ {
			number++
			room := models.Room{Number: fmt.Sprintf("%d", number), RoomTypeID: rt.ID}
			if err := db.Create(&room).Error; err != nil {
				log.Printf("warning: failed to seed room %s: %v", room.Number, err)
			}
		}

		tariffs := []models.Tariff{
			{
				RoomTypeID:    rt.ID,
				Title:         "Room only",
				PricePerNight: 1000 * float64(rt.Capacity) / 2,
				BedType:       models.BedTypeDouble,
				Cancellation:  "Free cancellation until the day before arrival",
			},
			{
				RoomTypeID:        rt.ID,
				Title:             "Bed & breakfast",
				PricePerNight:     1000*float64(rt.Capacity)/2 + 400,
				IncludesBreakfast: true,
				BedType:           models.BedTypeQueen,
				Cancellation:      "Non-refundable",
			},
		}
		if err := db.Create(&tariffs).Error; err != nil {
			log.Printf("warning: failed to seed tariffs for %s: %v", rt.Name, err)
		}
	}

	log.Println("Catalog seeded")
}
