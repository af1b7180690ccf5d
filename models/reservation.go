package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Reservation is a stay of Nights nights starting on CheckIn. RoomID and
// Price are assigned by the booking workflow, never by the caller: the price
// is a snapshot of the room's price at assignment time and does not follow
// later price changes.
type Reservation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ReferenceCode string         `gorm:"column:reference_code;size:64;uniqueIndex" json:"referenceCode,omitempty"`
	CheckIn       datatypes.Date `gorm:"column:check_in" json:"checkIn"`
	City          string         `gorm:"size:120" json:"city"`
	Address       string         `gorm:"size:255" json:"address"`
	Owner         string         `gorm:"size:255" json:"owner"`
	Nights        int            `gorm:"column:nights" json:"numberOfNights"`
	People        int            `gorm:"column:people" json:"numberOfPeople"`

	RoomID uint    `gorm:"column:room_id;index" json:"roomId"`
	Price  float64 `gorm:"type:decimal(8,2)" json:"price"`

	UserID uint `gorm:"column:user_id;index" json:"userId"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Room Room `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
	User User `gorm:"foreignKey:UserID;references:ID" json:"-"`
}
