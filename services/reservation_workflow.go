package services

import (
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"reservation-backend/models"
)

const (
	adminRedirect = "/admin/reservations"
	userRedirect  = "/my/reservations"
)

// ReservationInput is the caller-supplied part of a reservation. The room
// and price are always assigned by the workflow, never by the caller.
type ReservationInput struct {
	CheckIn time.Time
	City    string
	Address string
	Owner   string
	Nights  int
	People  int
}

// ReservationResult pairs the persisted reservation with the view the caller
// should land on next: admins go back to the admin overview, everyone else
// to their own reservation list.
type ReservationResult struct {
	Reservation models.Reservation
	RedirectTo  string
}

// ReservationWorkflow sequences the booking rules: pick the best-fit room,
// snapshot its price, validate the date range, persist. Create and Update
// both run the full sequence; an update re-resolves the room and price
// rather than keeping the assignment made at creation.
type ReservationWorkflow struct {
	DB           *gorm.DB
	rooms        *RoomService
	reservations *ReservationService
	availability *AvailabilityService
}

func NewReservationWorkflow(db *gorm.DB, rooms *RoomService, reservations *ReservationService, availability *AvailabilityService) *ReservationWorkflow {
	return &ReservationWorkflow{
		DB:           db,
		rooms:        rooms,
		reservations: reservations,
		availability: availability,
	}
}

func validateInput(in ReservationInput) *FieldError {
	if in.CheckIn.IsZero() {
		return &FieldError{Field: "date", Message: "You must provide the check-in date"}
	}
	if strings.TrimSpace(in.City) == "" {
		return &FieldError{Field: "city", Message: "You must provide the city"}
	}
	if strings.TrimSpace(in.Address) == "" {
		return &FieldError{Field: "address", Message: "You must provide the address"}
	}
	if strings.TrimSpace(in.Owner) == "" {
		return &FieldError{Field: "owner", Message: "You must provide the owner"}
	}
	if in.Nights < 1 {
		return &FieldError{Field: "numberOfNights", Message: "Number of nights must be at least 1"}
	}
	if in.People < 1 {
		return &FieldError{Field: "numberOfPeople", Message: "Number of people must be at least 1"}
	}
	return nil
}

// lockForBooking serializes concurrent bookings: the best-fit room lookup and
// the overlap scan both run as locking reads, so a booking committed by a
// competing transaction is seen even when this transaction's read snapshot
// predates it. The room lock alone is not enough on the update path, where
// the reservation lookup pins the snapshot before the lock is taken. SQLite
// (tests) has no FOR UPDATE and serializes writers on its own.
func lockForBooking(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "mysql" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// Create books a new reservation for the acting user.
func (w *ReservationWorkflow) Create(actor ActorContext, in ReservationInput) (ReservationResult, error) {
	if ferr := validateInput(in); ferr != nil {
		return ReservationResult{}, ferr
	}

	var reservation models.Reservation
	err := w.DB.Transaction(func(tx *gorm.DB) error {
		room, err := w.rooms.findRoomForOccupancy(lockForBooking(tx), in.People)
		if err != nil {
			return err
		}

		reservation = models.Reservation{
			CheckIn: datatypes.Date(in.CheckIn),
			City:    in.City,
			Address: in.Address,
			Owner:   in.Owner,
			Nights:  in.Nights,
			People:  in.People,
			RoomID:  room.ID,
			Price:   room.Price,
			UserID:  actor.UserID,
		}

		ok, err := w.availability.IsDateRangeValid(lockForBooking(tx), &reservation, 0)
		if err != nil {
			return err
		}
		if !ok {
			return ErrDateRangeConflict
		}
		return w.reservations.Create(tx, &reservation)
	})
	if err != nil {
		return ReservationResult{}, err
	}
	return ReservationResult{Reservation: reservation, RedirectTo: redirectFor(actor)}, nil
}

// Update replaces the caller-editable fields of an existing reservation and
// re-runs the booking rules. The reservation being updated is excluded from
// the overlap set so it cannot conflict with itself. Non-admins may only
// update their own reservations.
func (w *ReservationWorkflow) Update(actor ActorContext, id uint, in ReservationInput) (ReservationResult, error) {
	if ferr := validateInput(in); ferr != nil {
		return ReservationResult{}, ferr
	}

	var updated models.Reservation
	err := w.DB.Transaction(func(tx *gorm.DB) error {
		existing, err := w.reservations.findByID(tx, id)
		if err != nil {
			return err
		}
		if !actor.IsAdmin() && existing.UserID != actor.UserID {
			return ErrForbidden
		}

		room, err := w.rooms.findRoomForOccupancy(lockForBooking(tx), in.People)
		if err != nil {
			return err
		}

		existing.CheckIn = datatypes.Date(in.CheckIn)
		existing.City = in.City
		existing.Address = in.Address
		existing.Owner = in.Owner
		existing.Nights = in.Nights
		existing.People = in.People
		existing.RoomID = room.ID
		existing.Price = room.Price

		ok, err := w.availability.IsDateRangeValid(lockForBooking(tx), &existing, existing.ID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrDateRangeConflict
		}
		if err := w.reservations.Update(tx, &existing); err != nil {
			return err
		}
		updated = existing
		return nil
	})
	if err != nil {
		return ReservationResult{}, err
	}
	return ReservationResult{Reservation: updated, RedirectTo: redirectFor(actor)}, nil
}

// Cancel deletes the reservation. Non-admins may only cancel their own.
func (w *ReservationWorkflow) Cancel(actor ActorContext, id uint) error {
	existing, err := w.reservations.findByID(nil, id)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() && existing.UserID != actor.UserID {
		return ErrForbidden
	}
	return w.reservations.Delete(existing.ID)
}

func redirectFor(actor ActorContext) string {
	if actor.IsAdmin() {
		return adminRedirect
	}
	return userRedirect
}
