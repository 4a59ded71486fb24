package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-booking/config"
	"hotel-booking/models"
)

func GetTariffs(c *gin.Context) {
	q := config.DB.Order("id")
	if rtID := c.Query("room_type_id"); rtID != "" {
		q = q.Where("room_type_id = ?", rtID)
	}

	var tariffs []models.Tariff
	q.Find(&tariffs)
	c.JSON(http.StatusOK, tariffs)
}

func CreateTariff(c *gin.Context) {
	var tariff models.Tariff
	if err := c.ShouldBindJSON(&tariff); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if tariff.PricePerNight < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price_per_night must not be negative"})
		return
	}

	var rt models.RoomType
	if err := config.DB.First(&rt, tariff.RoomTypeID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid roomTypeId"})
		return
	}

	if err := config.DB.Create(&tariff).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create tariff"})
		return
	}
	c.JSON(http.StatusCreated, tariff)
}

func DeleteTariff(c *gin.Context) {
	id := c.Param("id")
	config.DB.Delete(&models.Tariff{}, id)
	c.JSON(http.StatusOK, gin.H{"message": "Tariff deleted"})
}
