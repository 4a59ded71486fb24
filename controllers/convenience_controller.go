package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-booking/config"
	"hotel-booking/models"
)

func GetConveniences(c *gin.Context) {
	var conveniences []models.Convenience
	config.DB.Order("id").Find(&conveniences)
	c.JSON(http.StatusOK, conveniences)
}

func CreateConvenience(c *gin.Context) {
	var conv models.Convenience
	if err := c.ShouldBindJSON(&conv); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if conv.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must not be negative"})
		return
	}

	if err := config.DB.Create(&conv).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create convenience"})
		return
	}
	c.JSON(http.StatusCreated, conv)
}

func DeleteConvenience(c *gin.Context) {
	id := c.Param("id")
	config.DB.Delete(&models.Convenience{}, id)
	c.JSON(http.StatusOK, gin.H{"message": "Convenience deleted"})
}
