package services

import (
	"errors"

	"gorm.io/gorm"

	"reservation-backend/models"
)

// RoomService owns the room inventory: CRUD, paged listing and the
// capacity query used by the booking workflow.
type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

// RoomPage is one page of rooms ordered by room number ascending, plus the
// total count for pagination UIs.
type RoomPage struct {
	Items []models.Room `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Size  int           `json:"size"`
}

func (s *RoomService) Create(room *models.Room) error {
	return s.DB.Create(room).Error
}

func (s *RoomService) GetAll() ([]models.Room, error) {
	var rooms []models.Room
	err := s.DB.Order("room_number ASC").Find(&rooms).Error
	return rooms, err
}

func (s *RoomService) GetByID(id uint) (models.Room, error) {
	var room models.Room
	if err := s.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return room, ErrNotFound
		}
		return room, err
	}
	return room, nil
}

func (s *RoomService) Update(room *models.Room) error {
	// explicit column map so zero values (e.g. price corrections) stick
	result := s.DB.Model(&models.Room{}).Where("id = ?", room.ID).Updates(map[string]interface{}{
		"room_number":   room.RoomNumber,
		"price":         room.Price,
		"max_occupancy": room.MaxOccupancy,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a room outright, so its number becomes available for a new
// room. Rooms still referenced by active reservations are not deletable;
// cancel the reservations first.
func (s *RoomService) Delete(id uint) error {
	var count int64
	if err := s.DB.Model(&models.Reservation{}).Where("room_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrRoomHasReservations
	}

	result := s.DB.Delete(&models.Room{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindPage returns the page-th page (1-based) of rooms ordered by room
// number. Page or size below 1 is a caller error.
func (s *RoomService) FindPage(page, size int) (RoomPage, error) {
	if page < 1 || size < 1 {
		return RoomPage{}, ErrInvalidPage
	}

	var total int64
	if err := s.DB.Model(&models.Room{}).Count(&total).Error; err != nil {
		return RoomPage{}, err
	}

	var rooms []models.Room
	err := s.DB.Order("room_number ASC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&rooms).Error
	if err != nil {
		return RoomPage{}, err
	}
	return RoomPage{Items: rooms, Total: total, Page: page, Size: size}, nil
}

// FindRoomForOccupancy returns the best-fit room for the requested party
// size: the smallest max occupancy still covering it, lowest room number on
// a tie. Returns ErrNoRoomForOccupancy when no room qualifies.
func (s *RoomService) FindRoomForOccupancy(people int) (models.Room, error) {
	return s.findRoomForOccupancy(s.DB, people)
}

func (s *RoomService) findRoomForOccupancy(tx *gorm.DB, people int) (models.Room, error) {
	var room models.Room
	err := tx.Where("max_occupancy >= ?", people).
		Order("max_occupancy ASC").
		Order("room_number ASC").
		First(&room).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return room, ErrNoRoomForOccupancy
	}
	return room, err
}
