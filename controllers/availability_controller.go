package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"hotel-booking/services"
	"hotel-booking/utils"
)

type AvailabilityController struct {
	Service *services.AvailabilityService
}

func NewAvailabilityController(service *services.AvailabilityService) *AvailabilityController {
	return &AvailabilityController{Service: service}
}

// Search handles GET /api/availability?check_in&check_out&guests. Dates are
// optional; when absent the service falls back to the nearest free night.
func (ac *AvailabilityController) Search(c *gin.Context) {
	var checkIn, checkOut *time.Time

	if raw := c.Query("check_in"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid check_in, expected YYYY-MM-DD")
			return
		}
		checkIn = &t
	}
	if raw := c.Query("check_out"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid check_out, expected YYYY-MM-DD")
			return
		}
		checkOut = &t
	}
	if checkIn != nil && checkOut != nil && !checkOut.After(*checkIn) {
		utils.JSONError(c, http.StatusBadRequest, "check_out must be after check_in")
		return
	}

	var guests uint
	if raw := c.Query("guests"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid guests")
			return
		}
		guests = uint(n)
	}

	result, err := ac.Service.FindAvailableRoomTypes(checkIn, checkOut, guests)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "availability search failed")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, result)
}
