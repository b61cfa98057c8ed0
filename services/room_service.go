// services/room_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"studyroom-backend/models"

	"gorm.io/gorm"
)

// RoomService answers the read-only questions the public pages need:
// which rooms exist, whether each is free right now, and the detail view
// for a single room.
type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

// RoomStatus is the list-view model: the room plus its availability at the
// instant the list was built. Status/StatusClass are presentation tags the
// frontend renders directly.
type RoomStatus struct {
	Room        models.Room `json:"room"`
	Available   bool        `json:"available"`
	Status      string      `json:"status"`
	StatusClass string      `json:"status_class"`
}

// RoomDetail is the detail-view model: the active reservation ending
// soonest (if any) and up to the next five upcoming ones.
type RoomDetail struct {
	Room                 models.Room          `json:"room"`
	Available            bool                 `json:"available"`
	CurrentReservation   *models.Reservation  `json:"current_reservation,omitempty"`
	UpcomingReservations []models.Reservation `json:"upcoming_reservations"`
}

// IsAvailable reports whether the room can be booked at the given instant:
// it must be active and have no reservation whose end lies in the future.
// Always hits the database; reservations expire continuously as real time
// advances, so a cached answer would go stale immediately.
func (s *RoomService) IsAvailable(room *models.Room, now time.Time) (bool, error) {
	if !room.Active {
		return false, nil
	}
	var count int64
	err := s.DB.Model(&models.Reservation{}).
		Where("room_id = ? AND ends_at > ?", room.ID, now).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to count active reservations: %w", err)
	}
	return count == 0, nil
}

// ListActiveRooms returns every active room ordered by name, each annotated
// with its availability at now.
func (s *RoomService) ListActiveRooms(now time.Time) ([]RoomStatus, error) {
	var rooms []models.Room
	if err := s.DB.Where("active = ?", true).Order("name ASC").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	statuses := make([]RoomStatus, 0, len(rooms))
	for i := range rooms {
		available, err := s.IsAvailable(&rooms[i], now)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, annotate(rooms[i], available))
	}
	return statuses, nil
}

func annotate(room models.Room, available bool) RoomStatus {
	status := RoomStatus{Room: room, Available: available}
	if available {
		status.Status = "Available"
		status.StatusClass = "bg-green-500"
	} else {
		status.Status = "Reserved"
		status.StatusClass = "bg-red-500"
	}
	return status
}

// GetRoomDetail builds the detail view for an active room. A missing or
// disabled room is ErrRoomNotFound: disabling a room takes its page down.
func (s *RoomService) GetRoomDetail(roomID uint, now time.Time) (*RoomDetail, error) {
	var room models.Room
	err := s.DB.Where("id = ? AND active = ?", roomID, true).First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to load room: %w", err)
	}

	detail := &RoomDetail{Room: room, UpcomingReservations: []models.Reservation{}}

	// Current = the active reservation that finishes soonest.
	var current models.Reservation
	err = s.DB.Where("room_id = ? AND ends_at > ?", room.ID, now).
		Order("ends_at ASC").
		First(&current).Error
	switch {
	case err == nil:
		detail.CurrentReservation = &current
	case errors.Is(err, gorm.ErrRecordNotFound):
		// room is free right now
	default:
		return nil, fmt.Errorf("failed to load current reservation: %w", err)
	}

	// Next five reservations that start in the future, skipping the one
	// already shown as current.
	upcoming := s.DB.Where("room_id = ? AND starts_at > ?", room.ID, now)
	if detail.CurrentReservation != nil {
		upcoming = upcoming.Where("id <> ?", detail.CurrentReservation.ID)
	}
	if err := upcoming.Order("starts_at ASC").Limit(5).Find(&detail.UpcomingReservations).Error; err != nil {
		return nil, fmt.Errorf("failed to load upcoming reservations: %w", err)
	}

	detail.Available = room.Active && detail.CurrentReservation == nil
	return detail, nil
}
