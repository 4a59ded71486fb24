package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"hotel-booking/services"
	"hotel-booking/utils"
)

type OrderController struct {
	Service *services.OrderService
}

func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{Service: service}
}

type createOrderRequest struct {
	ProfileID      uint                   `json:"profileId"`
	Guest          *services.GuestDetails `json:"guest"`
	RoomTypeID     uint                   `json:"roomTypeId"`
	TariffID       uint                   `json:"tariffId" binding:"required"`
	CheckIn        string                 `json:"checkIn" binding:"required"`
	CheckOut       string                 `json:"checkOut" binding:"required"`
	ArrivalTime    *string                `json:"arrivalTime"`
	Wishes         string                 `json:"wishes"`
	ConvenienceIDs []uint                 `json:"convenienceIds"`
}

type updateOrderRequest struct {
	CheckIn        *string `json:"checkIn"`
	CheckOut       *string `json:"checkOut"`
	ArrivalTime    *string `json:"arrivalTime"`
	Wishes         *string `json:"wishes"`
	ConvenienceIDs *[]uint `json:"convenienceIds"`
}

func parseDate(raw string) (time.Time, error) {
	return time.Parse("2006-01-02", raw)
}

// CreateOrder handles POST /api/orders.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("❌ JSON BINDING ERROR (400): %v", err)
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid checkIn, expected YYYY-MM-DD")
		return
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid checkOut, expected YYYY-MM-DD")
		return
	}

	order, err := oc.Service.CreateOrder(services.CreateOrderInput{
		ProfileID:      req.ProfileID,
		Guest:          req.Guest,
		RoomTypeID:     req.RoomTypeID,
		TariffID:       req.TariffID,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		ArrivalTime:    req.ArrivalTime,
		Wishes:         req.Wishes,
		ConvenienceIDs: req.ConvenienceIDs,
	})
	switch {
	case err == nil:
		utils.JSONSuccess(c, http.StatusCreated, order)
	case errors.Is(err, services.ErrReceiptWrite):
		// the order persisted; only the derived artifact is missing
		utils.JSONWarning(c, http.StatusCreated, order, "receipt could not be generated")
	case errors.Is(err, services.ErrInvalidDateRange):
		utils.JSONError(c, http.StatusBadRequest, "check_out must be after check_in")
	case errors.Is(err, services.ErrNotAvailable):
		utils.JSONError(c, http.StatusConflict, "no rooms of this type are available for the selected dates")
	case errors.Is(err, services.ErrProfileNotFound):
		utils.JSONError(c, http.StatusNotFound, "profile not found")
	default:
		log.Printf("❌ CreateOrder failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to create order")
	}
}

// GetOrder handles GET /api/orders/:id.
func (oc *OrderController) GetOrder(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	order, err := oc.Service.GetOrder(id)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			utils.JSONError(c, http.StatusNotFound, "order not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load order")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, order)
}

// UpdateOrder handles PUT /api/orders/:id.
func (oc *OrderController) UpdateOrder(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req updateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	input := services.UpdateOrderInput{
		ArrivalTime:    req.ArrivalTime,
		Wishes:         req.Wishes,
		ConvenienceIDs: req.ConvenienceIDs,
	}
	if req.CheckIn != nil {
		t, err := parseDate(*req.CheckIn)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid checkIn, expected YYYY-MM-DD")
			return
		}
		input.CheckIn = &t
	}
	if req.CheckOut != nil {
		t, err := parseDate(*req.CheckOut)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid checkOut, expected YYYY-MM-DD")
			return
		}
		input.CheckOut = &t
	}

	order, err := oc.Service.UpdateOrder(id, input)
	switch {
	case err == nil:
		utils.JSONSuccess(c, http.StatusOK, order)
	case errors.Is(err, services.ErrReceiptWrite):
		utils.JSONWarning(c, http.StatusOK, order, "receipt could not be regenerated")
	case errors.Is(err, services.ErrInvalidDateRange):
		utils.JSONError(c, http.StatusBadRequest, "check_out must be after check_in")
	case errors.Is(err, services.ErrNotAvailable):
		utils.JSONError(c, http.StatusConflict, "the room is already booked for the new dates")
	case errors.Is(err, services.ErrOrderNotFound):
		utils.JSONError(c, http.StatusNotFound, "order not found")
	default:
		log.Printf("❌ UpdateOrder failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to update order")
	}
}

// DeleteOrder handles DELETE /api/orders/:id.
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := oc.Service.DeleteOrder(id); err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			utils.JSONError(c, http.StatusNotFound, "order not found")
			return
		}
		log.Printf("❌ DeleteOrder failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete order")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}

// DownloadReceipt handles GET /api/orders/:id/receipt, streaming the text
// artifact as an attachment.
func (oc *OrderController) DownloadReceipt(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	order, err := oc.Service.GetOrder(id)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "order not found")
		return
	}
	if order.ReceiptFile == "" {
		utils.JSONError(c, http.StatusNotFound, "receipt not available")
		return
	}

	filename := fmt.Sprintf("receipt_%s.txt", order.OrderNumber)
	c.FileAttachment(oc.Service.Receipts.Store.Path(order.ReceiptFile), filename)
}

// paramID parses the :id route parameter, writing the 400 itself on
// failure.
func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}
