// controllers/admin_controller.go
package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"studyroom-backend/models"
	"studyroom-backend/services"
	"studyroom-backend/utils"

	mysql "github.com/go-sql-driver/mysql"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

// ---------------------------
// Payloads
// ---------------------------

type loginPayload struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// createRoomPayload keeps the enabled flag a pointer so "not sent"
// (defaults to enabled, like the original admin form) is distinguishable
// from an explicit false.
type createRoomPayload struct {
	Name      string         `json:"name"`
	Capacity  int            `json:"capacity"`
	Active    *bool          `json:"active"`
	Amenities datatypes.JSON `json:"amenities"`
}

type roomIDsPayload struct {
	IDs []uint `json:"ids" binding:"required"`
}

type purgePayload struct {
	IDs []uint `json:"ids" binding:"required"`
}

// ---------------------------
// Controller
// ---------------------------

type AdminController struct {
	AdminSvc *services.AdminService
}

func NewAdminController(svc *services.AdminService) *AdminController {
	return &AdminController{AdminSvc: svc}
}

func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

// Login handles POST /api/admin/login.
func (ctrl *AdminController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "username and password required")
		return
	}

	token, err := ctrl.AdminSvc.Login(payload.Username, payload.Password, time.Now())
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.JSONError(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		log.Printf("❌ Login error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "login failed")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"token": token})
}

// ListRooms handles GET /api/admin/rooms — disabled rooms included.
func (ctrl *AdminController) ListRooms(c *gin.Context) {
	rooms, err := ctrl.AdminSvc.ListRooms(time.Now())
	if err != nil {
		log.Printf("❌ Admin ListRooms error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to list rooms")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

// CreateRoom handles POST /api/admin/rooms.
func (ctrl *AdminController) CreateRoom(c *gin.Context) {
	var payload createRoomPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	room := models.Room{
		Name:      payload.Name,
		Capacity:  payload.Capacity,
		Active:    true,
		Amenities: payload.Amenities,
	}
	if payload.Active != nil {
		room.Active = *payload.Active
	}

	if err := ctrl.AdminSvc.CreateRoom(&room); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRoom):
			utils.JSONError(c, http.StatusBadRequest, "name is required and capacity must be positive")
		case isDuplicateEntry(err):
			utils.JSONError(c, http.StatusConflict, fmt.Sprintf("room %q already exists", room.Name))
		default:
			log.Printf("❌ CreateRoom error: %v", err)
			utils.JSONError(c, http.StatusInternalServerError, "failed to create room")
		}
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

// UpdateRoom handles PUT/PATCH /api/admin/rooms/:id.
func (ctrl *AdminController) UpdateRoom(c *gin.Context) {
	roomID, ok := parseRoomID(c)
	if !ok {
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	room, err := ctrl.AdminSvc.UpdateRoom(roomID, updates)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRoomNotFound):
			utils.JSONError(c, http.StatusNotFound, "room not found")
		case errors.Is(err, services.ErrInvalidRoom):
			utils.JSONError(c, http.StatusBadRequest, "name cannot be empty")
		case isDuplicateEntry(err):
			utils.JSONError(c, http.StatusConflict, "room name already exists")
		default:
			log.Printf("❌ UpdateRoom error for room %d: %v", roomID, err)
			utils.JSONError(c, http.StatusInternalServerError, "failed to update room")
		}
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// DeleteRoom handles DELETE /api/admin/rooms/:id. Reservations on the room
// go with it.
func (ctrl *AdminController) DeleteRoom(c *gin.Context) {
	roomID, ok := parseRoomID(c)
	if !ok {
		return
	}

	if err := ctrl.AdminSvc.DeleteRoom(roomID); err != nil {
		if errors.Is(err, services.ErrRoomNotFound) {
			utils.JSONError(c, http.StatusNotFound, "room not found")
			return
		}
		log.Printf("❌ DeleteRoom error for room %d: %v", roomID, err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete room")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "room deleted"})
}

func (ctrl *AdminController) setRoomsActive(c *gin.Context, active bool) {
	var payload roomIDsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "ids required")
		return
	}

	count, err := ctrl.AdminSvc.SetRoomsActive(payload.IDs, active)
	if err != nil {
		log.Printf("❌ SetRoomsActive error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to update rooms")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"updated": count})
}

// EnableRooms handles PATCH /api/admin/rooms/enable.
func (ctrl *AdminController) EnableRooms(c *gin.Context) {
	ctrl.setRoomsActive(c, true)
}

// DisableRooms handles PATCH /api/admin/rooms/disable.
func (ctrl *AdminController) DisableRooms(c *gin.Context) {
	ctrl.setRoomsActive(c, false)
}

// ListReservations handles GET /api/admin/reservations.
func (ctrl *AdminController) ListReservations(c *gin.Context) {
	records, err := ctrl.AdminSvc.ListReservations(time.Now())
	if err != nil {
		log.Printf("❌ ListReservations error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to list reservations")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, records)
}

// PurgeReservations handles POST /api/admin/reservations/purge. Only the
// candidates already finished at execution time are deleted.
func (ctrl *AdminController) PurgeReservations(c *gin.Context) {
	var payload purgePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "ids required")
		return
	}

	count, err := ctrl.AdminSvc.PurgeExpiredReservations(payload.IDs, time.Now())
	if err != nil {
		log.Printf("❌ PurgeReservations error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to purge reservations")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": count})
}
