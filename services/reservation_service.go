package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"reservation-backend/models"
)

// ReservationService is the persistence layer for reservations. The booking
// rules live in ReservationWorkflow; this service only stores, loads and
// lists.
type ReservationService struct {
	DB *gorm.DB
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{DB: db}
}

// ReservationPage is one page of reservations ordered by check-in date, for
// the admin overview.
type ReservationPage struct {
	Items []models.Reservation `json:"items"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Size  int                  `json:"size"`
}

func (s *ReservationService) Create(tx *gorm.DB, r *models.Reservation) error {
	if tx == nil {
		tx = s.DB
	}
	if r.ReferenceCode == "" {
		r.ReferenceCode = uuid.NewString()
	}
	return tx.Omit(clause.Associations).Create(r).Error
}

// Update replaces the stored reservation with r by id. Associations are
// written through RoomID/UserID only, never upserted.
func (s *ReservationService) Update(tx *gorm.DB, r *models.Reservation) error {
	if tx == nil {
		tx = s.DB
	}
	return tx.Omit(clause.Associations).Save(r).Error
}

func (s *ReservationService) Delete(id uint) error {
	result := s.DB.Delete(&models.Reservation{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindByID loads one reservation with its room for display.
func (s *ReservationService) FindByID(id uint) (models.Reservation, error) {
	var r models.Reservation
	if err := s.DB.Preload("Room").First(&r, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return r, ErrNotFound
		}
		return r, err
	}
	return r, nil
}

// findByID is the bare in-transaction lookup used by the workflow; no
// preloads, so the loaded row can be mutated and saved back directly.
func (s *ReservationService) findByID(tx *gorm.DB, id uint) (models.Reservation, error) {
	if tx == nil {
		tx = s.DB
	}
	var r models.Reservation
	if err := tx.First(&r, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return r, ErrNotFound
		}
		return r, err
	}
	return r, nil
}

// FindByUserID lists a user's own reservations, soonest check-in first.
func (s *ReservationService) FindByUserID(userID uint) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := s.DB.Where("user_id = ?", userID).
		Order("check_in ASC").
		Preload("Room").
		Find(&reservations).Error
	return reservations, err
}

// FindPage lists all users' reservations page by page for the admin
// overview, soonest check-in first.
func (s *ReservationService) FindPage(page, size int) (ReservationPage, error) {
	if page < 1 || size < 1 {
		return ReservationPage{}, ErrInvalidPage
	}

	var total int64
	if err := s.DB.Model(&models.Reservation{}).Count(&total).Error; err != nil {
		return ReservationPage{}, err
	}

	var reservations []models.Reservation
	err := s.DB.Order("check_in ASC").
		Offset((page - 1) * size).
		Limit(size).
		Preload("Room").
		Find(&reservations).Error
	if err != nil {
		return ReservationPage{}, err
	}
	return ReservationPage{Items: reservations, Total: total, Page: page, Size: size}, nil
}
