// services/reservation_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"studyroom-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxReservationDuration caps every booking. The end time is always
// computed server-side from it; client-supplied end times are ignored.
const MaxReservationDuration = 2 * time.Hour

// MinPersonIDLength applies after trimming surrounding whitespace.
const MinPersonIDLength = 5

type ReservationService struct {
	DB    *gorm.DB
	Rooms *RoomService
}

func NewReservationService(db *gorm.DB, rooms *RoomService) *ReservationService {
	return &ReservationService{DB: db, Rooms: rooms}
}

// Create books the room for personID starting at now, for exactly
// MaxReservationDuration. Validations run in order and stop at the first
// failure: room exists and is active (ErrRoomNotFound), person id is long
// enough after trimming (ErrInvalidPersonID), room is still free
// (ErrRoomUnavailable — re-checked here because the state the caller saw
// may have gone stale between page load and submit).
//
// The availability check and the insert are not serialized against
// concurrent callers; two requests racing on the same room can both pass
// the check. That window is accepted — see GetRoomDetail consumers.
func (s *ReservationService) Create(roomID uint, personID string, now time.Time) (models.Reservation, error) {
	var room models.Room
	if err := s.DB.Where("id = ? AND active = ?", roomID, true).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Reservation{}, ErrRoomNotFound
		}
		return models.Reservation{}, fmt.Errorf("failed to load room: %w", err)
	}

	personID = strings.TrimSpace(personID)
	if len(personID) < MinPersonIDLength {
		return models.Reservation{}, ErrInvalidPersonID
	}

	available, err := s.Rooms.IsAvailable(&room, now)
	if err != nil {
		return models.Reservation{}, err
	}
	if !available {
		return models.Reservation{}, ErrRoomUnavailable
	}

	reservation := models.Reservation{
		RoomID:        room.ID,
		PersonID:      personID,
		ReferenceCode: uuid.NewString(),
		StartsAt:      now,
		EndsAt:        now.Add(MaxReservationDuration),
	}
	if err := s.DB.Create(&reservation).Error; err != nil {
		return models.Reservation{}, fmt.Errorf("failed to create reservation: %w", err)
	}
	return reservation, nil
}
