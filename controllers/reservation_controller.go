package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"reservation-backend/middleware"
	"reservation-backend/services"
)

type ReservationController struct {
	Workflow     *services.ReservationWorkflow
	Reservations *services.ReservationService
}

func NewReservationController(workflow *services.ReservationWorkflow, reservations *services.ReservationService) *ReservationController {
	return &ReservationController{Workflow: workflow, Reservations: reservations}
}

type reservationPayload struct {
	Date    string `json:"date" binding:"required"` // YYYY-MM-DD
	City    string `json:"city" binding:"required"`
	Address string `json:"address" binding:"required"`
	Owner   string `json:"owner" binding:"required"`
	Nights  int    `json:"numberOfNights" binding:"required"`
	People  int    `json:"numberOfPeople" binding:"required"`
}

func (p reservationPayload) toInput() (services.ReservationInput, error) {
	day, err := time.Parse("2006-01-02", p.Date)
	if err != nil {
		return services.ReservationInput{}, err
	}
	return services.ReservationInput{
		CheckIn: day,
		City:    p.City,
		Address: p.Address,
		Owner:   p.Owner,
		Nights:  p.Nights,
		People:  p.People,
	}, nil
}

func requireActor(c *gin.Context) (services.ActorContext, bool) {
	actor, ok := middleware.Actor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
	}
	return actor, ok
}

// writeWorkflowError maps domain errors to responses. NoRoomForOccupancy and
// DateRangeConflict come back as field-keyed messages so the client can
// re-display the form without losing the rest of the input.
func writeWorkflowError(c *gin.Context, err error) {
	var ferr *services.FieldError
	switch {
	case errors.As(err, &ferr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": "error",
			"errors": gin.H{ferr.Field: ferr.Message},
		})
	case errors.Is(err, services.ErrNoRoomForOccupancy):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": "error",
			"errors": gin.H{"numberOfPeople": "No rooms to accommodate this number of people. Please split your reservation."},
		})
	case errors.Is(err, services.ErrDateRangeConflict):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": "error",
			"errors": gin.H{"date": "No rooms are available for the selected period."},
		})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Reservation not found."})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"status": "error", "message": "You may only manage your own reservations."})
	default:
		log.Printf("reservation workflow error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Database error"})
	}
}

// POST /api/reservations
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var payload reservationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request payload",
			"details": err.Error(),
		})
		return
	}
	input, err := payload.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "error",
			"errors": gin.H{"date": "Date must be in YYYY-MM-DD format"},
		})
		return
	}

	result, err := rc.Workflow.Create(actor, input)
	if err != nil {
		writeWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":      "success",
		"reservation": result.Reservation,
		"redirect":    result.RedirectTo,
	})
}

// GET /api/reservations — the acting user's own reservations.
func (rc *ReservationController) ListMyReservations(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	reservations, err := rc.Reservations.FindByUserID(actor.UserID)
	if err != nil {
		log.Printf("list reservations for user %d failed: %v", actor.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Database error"})
		return
	}
	c.JSON(http.StatusOK, reservations)
}

// GET /api/reservations/:id
func (rc *ReservationController) GetReservation(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	reservation, err := rc.Reservations.FindByID(id)
	if err != nil {
		writeWorkflowError(c, err)
		return
	}
	if !actor.IsAdmin() && reservation.UserID != actor.UserID {
		writeWorkflowError(c, services.ErrForbidden)
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// PUT /api/reservations/:id
func (rc *ReservationController) UpdateReservation(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var payload reservationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request payload",
			"details": err.Error(),
		})
		return
	}
	input, err := payload.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "error",
			"errors": gin.H{"date": "Date must be in YYYY-MM-DD format"},
		})
		return
	}

	result, err := rc.Workflow.Update(actor, id, input)
	if err != nil {
		writeWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "success",
		"reservation": result.Reservation,
		"redirect":    result.RedirectTo,
	})
}

// DELETE /api/reservations/:id — confirmed cancellation.
func (rc *ReservationController) CancelReservation(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := rc.Workflow.Cancel(actor, id); err != nil {
		writeWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Reservation cancelled"})
}
