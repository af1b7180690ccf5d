package services

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var (
	// ErrNoRoomForOccupancy means no room's capacity covers the requested
	// party size; the user can recover by splitting the reservation.
	ErrNoRoomForOccupancy = errors.New("no_room_for_occupancy")

	// ErrDateRangeConflict means the requested stay overlaps an existing
	// reservation on the matched room.
	ErrDateRangeConflict = errors.New("date_range_conflict")

	ErrNotFound            = errors.New("not_found")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidPage         = errors.New("invalid_page")
	ErrRoomHasReservations = errors.New("room_has_reservations")
)

// FieldError is a user-facing validation failure keyed by the input field
// that caused it, so the presentation layer can re-display the form with the
// message attached.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Message }

// IsDuplicateKey reports whether err is a unique-constraint violation.
func IsDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// SQLite (tests) reports unique violations as plain errors
	return strings.Contains(err.Error(), "Duplicate entry") ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}
