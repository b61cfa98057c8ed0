package models

import (
	"time"

	"gorm.io/datatypes"
)

// Room is a bookable study room. Availability is derived from its
// reservations at query time and never stored on the row.
//
// No soft delete here: removing a room must cascade to its reservations,
// and gorm.DeletedAt would leave the child rows behind.
type Room struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name     string `json:"name" gorm:"column:name;uniqueIndex;type:varchar(100)"`
	Capacity int    `json:"capacity" gorm:"column:capacity"`

	// No default tag: with one, GORM omits false (the zero value) on
	// insert and the column default would flip a disabled room to
	// enabled. Callers decide the default instead.
	Active bool `json:"active" gorm:"column:active"`

	// Display metadata managed by admins, e.g. ["whiteboard","hdmi"].
	Amenities datatypes.JSON `json:"amenities,omitempty" gorm:"column:amenities"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Reservations []Reservation `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE" json:"-"`
}
