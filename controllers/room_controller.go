package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"reservation-backend/models"
	"reservation-backend/services"
)

type RoomController struct {
	Rooms *services.RoomService
}

func NewRoomController(rooms *services.RoomService) *RoomController {
	return &RoomController{Rooms: rooms}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}

func parsePageParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 0 // rejected by the service
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "20"))
	if err != nil {
		size = 0
	}
	return page, size
}

// GetRooms returns one page of rooms ordered by room number.
// GET /api/rooms?page=1&size=20
func (rc *RoomController) GetRooms(c *gin.Context) {
	page, size := parsePageParams(c)

	result, err := rc.Rooms.FindPage(page, size)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPage) {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "page and size must be at least 1"})
			return
		}
		log.Printf("list rooms failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Database error"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// GET /api/rooms/:id
func (rc *RoomController) GetRoom(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	room, err := rc.Rooms.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": fmt.Sprintf("Room with ID %d not found.", id)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Database error"})
		return
	}
	c.JSON(http.StatusOK, room)
}

// POST /api/rooms (admin)
func (rc *RoomController) CreateRoom(c *gin.Context) {
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request payload",
			"details": err.Error(),
		})
		return
	}

	if err := rc.Rooms.Create(&room); err != nil {
		if services.IsDuplicateKey(err) {
			c.JSON(http.StatusConflict, gin.H{
				"status":  "error",
				"message": fmt.Sprintf("Room number %d already exists.", room.RoomNumber),
			})
			return
		}
		log.Printf("create room failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Database error"})
		return
	}

	c.JSON(http.StatusCreated, room)
}

// PATCH /api/rooms/:id (admin)
func (rc *RoomController) UpdateRoom(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request payload",
			"details": err.Error(),
		})
		return
	}
	room.ID = id

	if err := rc.Rooms.Update(&room); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": fmt.Sprintf("Room with ID %d not found.", id)})
		case services.IsDuplicateKey(err):
			c.JSON(http.StatusConflict, gin.H{
				"status":  "error",
				"message": fmt.Sprintf("Room number %d already exists.", room.RoomNumber),
			})
		default:
			log.Printf("update room %d failed: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Update failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Room updated successfully"})
}

// DELETE /api/rooms/:id (admin)
func (rc *RoomController) DeleteRoom(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := rc.Rooms.Delete(id); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": fmt.Sprintf("Room with ID %d not found.", id)})
		case errors.Is(err, services.ErrRoomHasReservations):
			c.JSON(http.StatusConflict, gin.H{
				"status":  "error",
				"message": "Room still has active reservations; cancel them first.",
			})
		default:
			log.Printf("delete room %d failed: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to delete room."})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Room deleted successfully"})
}
