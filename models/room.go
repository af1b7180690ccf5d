package models

import (
	"time"
)

// Room is a bookable room. Capacity lives on the room itself; reservations
// reference the room they were assigned to. Deletion is a real delete, not a
// soft delete: the room number must stay unique across active rooms only,
// and a deleted room's number has to be reusable.
type Room struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RoomNumber   int     `json:"roomNumber" gorm:"column:room_number;uniqueIndex" binding:"required,min=1"`
	Price        float64 `json:"price" gorm:"column:price;type:decimal(8,2)" binding:"required,gt=0"`
	MaxOccupancy int     `json:"maxOccupancy" gorm:"column:max_occupancy" binding:"required,min=1,max=10"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Reservations []Reservation `gorm:"foreignKey:RoomID" json:"reservations,omitempty"`
}
