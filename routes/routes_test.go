package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotel-booking/config"
	"hotel-booking/controllers"
	"hotel-booking/models"
	"hotel-booking/services"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	// the catalog controllers read the package-level handle
	config.DB = db
	t.Cleanup(func() { config.DB = nil })

	wifi := models.Convenience{Name: "Wi-Fi", Price: 0}
	require.NoError(t, db.Create(&wifi).Error)
	roomType := models.RoomType{
		Name:         "Standard",
		Capacity:     2,
		Conveniences: []models.Convenience{wifi},
	}
	require.NoError(t, db.Create(&roomType).Error)
	require.NoError(t, db.Create(&models.Room{Number: "101", RoomTypeID: roomType.ID}).Error)
	require.NoError(t, db.Create(&models.Tariff{
		Title:         "Room only",
		RoomTypeID:    roomType.ID,
		BedType:       models.BedTypeDouble,
		PricePerNight: 1000,
	}).Error)

	signer := services.NewSigner([]byte("test-key"), time.Hour)
	receipts := services.NewReceiptService(services.NewFileReceiptStore(t.TempDir()))
	orderService := services.NewOrderService(db, receipts)

	return SetupRouter(
		controllers.NewAvailabilityController(services.NewAvailabilityService(db)),
		controllers.NewOrderController(orderService),
		controllers.NewProfileController(services.NewProfileService(db, signer), orderService),
		controllers.NewAnalyticsController(services.NewAnalyticsService(db)),
	)
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestAvailabilityEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/availability?check_in=2026-02-10&check_out=2026-02-12&guests=2", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Standard")

	w = doJSON(t, router, http.MethodGet, "/api/availability?check_in=2026-02-12&check_out=2026-02-10", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/availability?check_in=12.02.2026", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderLifecycleOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	payload := gin.H{
		"guest": gin.H{
			"firstName":   "Ivan",
			"secondName":  "Petrov",
			"phoneNumber": "+70000000000",
			"email":       "ivan@example.com",
		},
		"tariffId": 1,
		"checkIn":  "2026-02-10",
		"checkOut": "2026-02-12",
	}

	w := doJSON(t, router, http.MethodPost, "/api/orders", payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Regexp(t, `"orderNumber":"F\d{8}\d{5}"`, w.Body.String())
	assert.Contains(t, w.Body.String(), `"totalPrice":2000`)

	// the single room of the type is now taken for these dates
	w = doJSON(t, router, http.MethodPost, "/api/orders", payload)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/orders/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/orders/1/receipt", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "receipt_")

	w = doJSON(t, router, http.MethodDelete, "/api/orders/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/orders/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateOrderValidationOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/orders", gin.H{
		"tariffId": 1,
		"checkIn":  "2026-02-12",
		"checkOut": "2026-02-10",
		"guest":    gin.H{"firstName": "Ivan", "email": "ivan@example.com"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/orders", gin.H{"checkIn": "2026-02-10"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProfileRegistrationAndConfirmationOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/profiles/register", gin.H{
		"firstName": "Anna",
		"email":     "anna@example.com",
		"password":  "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodPost, "/api/profiles/register", gin.H{
		"email":    "anna@example.com",
		"password": "other456",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// the confirm route resolves ahead of /:id
	w = doJSON(t, router, http.MethodGet, "/api/profiles/confirm?token=broken", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/profiles/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "anna@example.com")
}

func TestCatalogEndpoints(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/room-types", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Standard")

	w = doJSON(t, router, http.MethodPost, "/api/rooms", gin.H{"number": "102", "roomTypeId": 1})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// duplicate room numbers are rejected
	w = doJSON(t, router, http.MethodPost, "/api/rooms", gin.H{"number": "102", "roomTypeId": 1})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/settings/hotel", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAnalyticsEndpointDefaults(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/analytics/orders", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/analytics/orders?interval=month&start_date=2026-01-01&end_date=2026-03-31&chart_type=peak", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"peakValue"`)

	w = doJSON(t, router, http.MethodGet, "/api/analytics/orders?start_date=2026-03-31&end_date=2026-01-01", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCorsOriginParsing(t *testing.T) {
	t.Setenv("CORS_ORIGINS", " https://a.example , https://b.example ,")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, parseCorsOrigins())

	t.Setenv("CORS_ORIGINS", "")
	assert.Equal(t, []string{"*"}, parseCorsOrigins())
}
