package models

import (
	"time"
)

// Reservation is a time-boxed claim on a Room. StartsAt/EndsAt are set by
// the booking service at creation time and never updated afterwards.
type Reservation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RoomID        uint   `gorm:"column:room_id;index;not null" json:"room_id"`
	PersonID      string `gorm:"column:person_id;type:varchar(12)" json:"person_id"`
	ReferenceCode string `gorm:"column:reference_code;uniqueIndex;size:64" json:"reference_code"`

	StartsAt time.Time `gorm:"column:starts_at" json:"starts_at"`
	EndsAt   time.Time `gorm:"column:ends_at;index" json:"ends_at"`

	CreatedAt time.Time `json:"created_at"`

	// Cascade is declared on Room.Reservations; declaring it here too
	// would emit a second FK on the same column.
	Room Room `gorm:"foreignKey:RoomID;references:ID" json:"-"`
}

// ActiveAt reports whether the reservation still holds the room at the
// given instant.
func (r Reservation) ActiveAt(now time.Time) bool {
	return r.EndsAt.After(now)
}
