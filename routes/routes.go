package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hotel-booking/controllers"
	"hotel-booking/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires the controller instances into the HTTP surface.
func SetupRouter(
	avc *controllers.AvailabilityController,
	oc *controllers.OrderController,
	pc *controllers.ProfileController,
	anc *controllers.AnalyticsController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/availability", avc.Search)

		orders := api.Group("/orders")
		{
			orders.POST("", oc.CreateOrder)
			orders.GET("/:id", oc.GetOrder)
			orders.PUT("/:id", oc.UpdateOrder)
			orders.DELETE("/:id", oc.DeleteOrder)
			orders.GET("/:id/receipt", oc.DownloadReceipt)
		}

		profiles := api.Group("/profiles")
		{
			profiles.POST("/register", pc.Register)

			// must stay ahead of /:id
			profiles.GET("/confirm", pc.ConfirmEmail)

			profiles.GET("/:id", pc.GetProfile)
			profiles.PUT("/:id", pc.UpdateProfile)
			profiles.GET("/:id/orders", pc.ListOrders)
		}

		api.GET("/analytics/orders", anc.OrderVolume)

		rooms := api.Group("/rooms")
		{
			rooms.GET("", controllers.GetRooms)
			rooms.POST("", controllers.CreateRoom)
			rooms.PATCH("/:id", controllers.UpdateRoom)
			rooms.PUT("/:id", controllers.UpdateRoom)
			rooms.DELETE("/:id", controllers.DeleteRoom)
		}

		roomTypes := api.Group("/room-types")
		{
			roomTypes.GET("", controllers.GetRoomTypes)
			roomTypes.POST("", controllers.CreateRoomType)
			roomTypes.DELETE("/:id", controllers.DeleteRoomType)
		}

		tariffs := api.Group("/tariffs")
		{
			tariffs.GET("", controllers.GetTariffs)
			tariffs.POST("", controllers.CreateTariff)
			tariffs.DELETE("/:id", controllers.DeleteTariff)
		}

		conveniences := api.Group("/conveniences")
		{
			conveniences.GET("", controllers.GetConveniences)
			conveniences.POST("", controllers.CreateConvenience)
			conveniences.DELETE("/:id", controllers.DeleteConvenience)
		}

		settings := api.Group("/settings")
		{
			settings.GET("/hotel", controllers.GetHotelSettings)
			settings.PUT("/hotel", controllers.UpdateHotelSettings)
		}
	}

	return r
}
