// services/admin_service.go
package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"studyroom-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const adminTokenTTL = 24 * time.Hour

// AdminService backs the privileged API: room management, bulk actions and
// reservation housekeeping.
type AdminService struct {
	DB    *gorm.DB
	Rooms *RoomService
}

func NewAdminService(db *gorm.DB, rooms *RoomService) *AdminService {
	return &AdminService{DB: db, Rooms: rooms}
}

// ReservationRecord is the admin changelist row: the reservation, the name
// of its room and whether it is still holding the room.
type ReservationRecord struct {
	models.Reservation
	RoomName string `json:"room_name"`
	Active   bool   `json:"active"`
}

func generateTokenHex(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Login checks the credentials and issues an opaque session token that
// expires after adminTokenTTL.
func (s *AdminService) Login(username, password string, now time.Time) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	var admin models.Admin
	if err := s.DB.Where("username = ?", username).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to load admin: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	token, err := generateTokenHex(32)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	record := models.AdminToken{
		AdminID:   admin.ID,
		Token:     token,
		ExpiresAt: now.Add(adminTokenTTL),
	}
	if err := s.DB.Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}
	return token, nil
}

// CreateRoom validates and inserts a new room. Name must be non-empty
// after trimming and capacity positive; uniqueness of the name is left to
// the database index.
func (s *AdminService) CreateRoom(room *models.Room) error {
	room.Name = strings.TrimSpace(room.Name)
	if room.Name == "" || room.Capacity <= 0 {
		return ErrInvalidRoom
	}
	return s.DB.Create(room).Error
}

// UpdateRoom applies a partial update. Identity and timestamps are never
// client-writable.
func (s *AdminService) UpdateRoom(roomID uint, updates map[string]interface{}) (models.Room, error) {
	delete(updates, "id")
	delete(updates, "created_at")
	delete(updates, "updated_at")

	if name, ok := updates["name"].(string); ok {
		name = strings.TrimSpace(name)
		if name == "" {
			return models.Room{}, ErrInvalidRoom
		}
		updates["name"] = name
	}
	if capacity, ok := updates["capacity"]; ok {
		// JSON numbers decode as float64; service callers may pass ints.
		var value float64
		switch v := capacity.(type) {
		case float64:
			value = v
		case int:
			value = float64(v)
		case int64:
			value = float64(v)
		default:
			return models.Room{}, ErrInvalidRoom
		}
		if value <= 0 {
			return models.Room{}, ErrInvalidRoom
		}
	}

	var room models.Room
	if err := s.DB.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Room{}, ErrRoomNotFound
		}
		return models.Room{}, fmt.Errorf("failed to load room: %w", err)
	}
	if len(updates) == 0 {
		return room, nil
	}
	if err := s.DB.Model(&room).Updates(updates).Error; err != nil {
		return models.Room{}, err
	}
	return room, nil
}

// DeleteRoom removes the room and, through the association, every
// reservation that belongs to it.
func (s *AdminService) DeleteRoom(roomID uint) error {
	result := s.DB.Select(clause.Associations).Delete(&models.Room{ID: roomID})
	if result.Error != nil {
		return fmt.Errorf("failed to delete room: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// ListRooms returns every room, disabled ones included, annotated with
// availability at now.
func (s *AdminService) ListRooms(now time.Time) ([]RoomStatus, error) {
	var rooms []models.Room
	if err := s.DB.Order("name ASC").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	statuses := make([]RoomStatus, 0, len(rooms))
	for i := range rooms {
		available, err := s.Rooms.IsAvailable(&rooms[i], now)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, annotate(rooms[i], available))
	}
	return statuses, nil
}

// SetRoomsActive bulk-flips the active flag and reports how many rows
// changed.
func (s *AdminService) SetRoomsActive(roomIDs []uint, active bool) (int64, error) {
	if len(roomIDs) == 0 {
		return 0, nil
	}
	result := s.DB.Model(&models.Room{}).Where("id IN ?", roomIDs).Update("active", active)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to update rooms: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// ListReservations returns every reservation, newest start first, with the
// room name joined in and the active flag computed at now.
func (s *AdminService) ListReservations(now time.Time) ([]ReservationRecord, error) {
	var reservations []models.Reservation
	if err := s.DB.Preload("Room").Order("starts_at DESC").Find(&reservations).Error; err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	records := make([]ReservationRecord, 0, len(reservations))
	for _, r := range reservations {
		records = append(records, ReservationRecord{
			Reservation: r,
			RoomName:    r.Room.Name,
			Active:      r.ActiveAt(now),
		})
	}
	return records, nil
}

// PurgeExpiredReservations deletes, among the candidate ids, only the
// reservations already finished at now. The time filter is applied here
// rather than trusted from the caller's selection, so a still-active
// reservation survives even when its id was submitted.
func (s *AdminService) PurgeExpiredReservations(reservationIDs []uint, now time.Time) (int64, error) {
	if len(reservationIDs) == 0 {
		return 0, nil
	}
	result := s.DB.Where("id IN ? AND ends_at < ?", reservationIDs, now).Delete(&models.Reservation{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to purge reservations: %w", result.Error)
	}
	return result.RowsAffected, nil
}
