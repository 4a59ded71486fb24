package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-booking/config"
	"hotel-booking/models"
)

// GetHotelSettings returns the singleton settings row, creating defaults on
// first access.
func GetHotelSettings(c *gin.Context) {
	var settings models.HotelSetting
	if err := config.DB.First(&settings).Error; err != nil {
		settings = models.HotelSetting{
			Name:          "Hotel",
			CheckInFrom:   "14:00",
			CheckOutUntil: "12:00",
		}
		config.DB.Create(&settings)
	}
	c.JSON(http.StatusOK, settings)
}

func UpdateHotelSettings(c *gin.Context) {
	var payload models.HotelSetting
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var settings models.HotelSetting
	if err := config.DB.First(&settings).Error; err != nil {
		payload.ID = 0
		if err := config.DB.Create(&payload).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save settings"})
			return
		}
		c.JSON(http.StatusOK, payload)
		return
	}

	payload.ID = settings.ID
	if err := config.DB.Model(&settings).Updates(payload).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save settings"})
		return
	}
	c.JSON(http.StatusOK, payload)
}
