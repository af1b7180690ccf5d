package services

import (
	"time"

	"gorm.io/gorm"

	"reservation-backend/models"
)

// overlaps reports whether the half-open stay intervals [s1, s1+n1) and
// [s2, s2+n2) share at least one night. Both comparisons are strict, so a
// checkout day equal to the next booking's check-in day is not a conflict.
func overlaps(s1 time.Time, n1 int, s2 time.Time, n2 int) bool {
	e1 := s1.AddDate(0, 0, n1)
	e2 := s2.AddDate(0, 0, n2)
	return s1.Before(e2) && s2.Before(e1)
}

// AvailabilityService decides whether a candidate reservation's stay is free
// of conflicts with other reservations on the same room.
type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// IsDateRangeValid scans the active reservations on the candidate's room and
// reports whether none of them overlaps the candidate's stay. excludeID is
// the id of the reservation being replaced on update (0 on create); a
// reservation never conflicts with itself.
func (s *AvailabilityService) IsDateRangeValid(tx *gorm.DB, candidate *models.Reservation, excludeID uint) (bool, error) {
	if tx == nil {
		tx = s.DB
	}

	var existing []models.Reservation
	q := tx.Where("room_id = ?", candidate.RoomID)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Find(&existing).Error; err != nil {
		return false, err
	}

	start := time.Time(candidate.CheckIn)
	for _, r := range existing {
		if overlaps(start, candidate.Nights, time.Time(r.CheckIn), r.Nights) {
			return false, nil
		}
	}
	return true, nil
}
