package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-booking/config"
	"hotel-booking/models"
)

func GetRoomTypes(c *gin.Context) {
	var types []models.RoomType
	config.DB.Preload("Conveniences").Preload("Tariffs").Order("id").Find(&types)
	c.JSON(http.StatusOK, types)
}

func CreateRoomType(c *gin.Context) {
	var rt models.RoomType
	if err := c.ShouldBindJSON(&rt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if rt.Capacity < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "capacity must be at least 1"})
		return
	}

	if err := config.DB.Create(&rt).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create room type"})
		return
	}
	c.JSON(http.StatusCreated, rt)
}

func DeleteRoomType(c *gin.Context) {
	id := c.Param("id")
	config.DB.Delete(&models.RoomType{}, id)
	c.JSON(http.StatusOK, gin.H{"message": "Room type deleted"})
}
