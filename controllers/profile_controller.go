package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-booking/services"
	"hotel-booking/utils"
)

type ProfileController struct {
	Profiles *services.ProfileService
	Orders   *services.OrderService
}

func NewProfileController(profiles *services.ProfileService, orders *services.OrderService) *ProfileController {
	return &ProfileController{Profiles: profiles, Orders: orders}
}

// Register handles POST /api/profiles/register.
func (pc *ProfileController) Register(c *gin.Context) {
	var req services.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	profile, err := pc.Profiles.Register(req)
	switch {
	case err == nil:
		utils.JSONSuccess(c, http.StatusCreated, profile)
	case errors.Is(err, services.ErrEmailTaken):
		utils.JSONError(c, http.StatusConflict, "email is already registered")
	case errors.Is(err, services.ErrEmailSendFailed):
		// profile exists, mail did not go out
		utils.JSONWarning(c, http.StatusCreated, profile, "confirmation email could not be sent")
	default:
		log.Printf("❌ Register failed: %v", err)
		utils.JSONError(c, http.StatusBadRequest, err.Error())
	}
}

// ConfirmEmail handles GET /api/profiles/confirm?token=...
func (pc *ProfileController) ConfirmEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		utils.JSONError(c, http.StatusBadRequest, "missing token")
		return
	}

	profile, err := pc.Profiles.ConfirmEmail(token)
	switch {
	case err == nil:
		utils.JSONSuccess(c, http.StatusOK, profile)
	case errors.Is(err, services.ErrTokenExpired):
		utils.JSONError(c, http.StatusBadRequest, "confirmation link has expired")
	case errors.Is(err, services.ErrBadSignature):
		utils.JSONError(c, http.StatusBadRequest, "invalid confirmation link")
	case errors.Is(err, services.ErrProfileNotFound):
		utils.JSONError(c, http.StatusNotFound, "profile not found")
	default:
		utils.JSONError(c, http.StatusInternalServerError, "confirmation failed")
	}
}

// GetProfile handles GET /api/profiles/:id.
func (pc *ProfileController) GetProfile(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	profile, err := pc.Profiles.GetProfile(id)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			utils.JSONError(c, http.StatusNotFound, "profile not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load profile")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, profile)
}

// UpdateProfile handles PUT /api/profiles/:id.
func (pc *ProfileController) UpdateProfile(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	profile, err := pc.Profiles.UpdateProfile(id, updates)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			utils.JSONError(c, http.StatusNotFound, "profile not found")
			return
		}
		log.Printf("❌ UpdateProfile failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to update profile")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, profile)
}

// ListOrders handles GET /api/profiles/:id/orders?sort=...
func (pc *ProfileController) ListOrders(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if _, err := pc.Profiles.GetProfile(id); err != nil {
		utils.JSONError(c, http.StatusNotFound, "profile not found")
		return
	}

	orders, err := pc.Orders.OrdersByProfile(id, c.DefaultQuery("sort", "-check_in"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list orders")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, orders)
}
