package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"reservation-backend/models"
	"reservation-backend/services"
	"reservation-backend/utils"
)

// AdminController serves the admin oversight views: every user's
// reservations and the account list.
type AdminController struct {
	Reservations *services.ReservationService
	DB           *gorm.DB
}

func NewAdminController(reservations *services.ReservationService, db *gorm.DB) *AdminController {
	return &AdminController{Reservations: reservations, DB: db}
}

// GET /api/admin/reservations?page=1&size=20
func (ac *AdminController) ListReservations(c *gin.Context) {
	page, size := parsePageParams(c)

	result, err := ac.Reservations.FindPage(page, size)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPage) {
			utils.JSONError(c, http.StatusBadRequest, "page and size must be at least 1")
			return
		}
		log.Printf("admin list reservations failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Database error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, result)
}

// GET /api/admin/users
func (ac *AdminController) ListUsers(c *gin.Context) {
	var users []models.User
	if err := ac.DB.Order("id ASC").Find(&users).Error; err != nil {
		log.Printf("admin list users failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Database error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, users)
}
