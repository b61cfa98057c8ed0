// controllers/room_controller.go
package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"studyroom-backend/services"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	RoomSvc *services.RoomService
}

func NewRoomController(svc *services.RoomService) *RoomController {
	return &RoomController{RoomSvc: svc}
}

func parseRoomID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return 0, false
	}
	return uint(id), true
}

// Index handles GET / — every active room with its availability at the
// moment of the request.
func (ctrl *RoomController) Index(c *gin.Context) {
	now := time.Now()
	rooms, err := ctrl.RoomSvc.ListActiveRooms(now)
	if err != nil {
		log.Printf("❌ Index error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list rooms"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title":   "Study Room Management",
		"message": "Check room availability. Open a room to see details and reserve.",
		"now":     now.Format("2006-01-02 15:04:05"),
		"rooms":   rooms,
	})
}

// Detail handles GET /room/:id. The reserve flow redirects back here with
// a success or error query parameter; it is echoed into the payload so the
// message surfaces inline on the page.
func (ctrl *RoomController) Detail(c *gin.Context) {
	roomID, ok := parseRoomID(c)
	if !ok {
		return
	}

	detail, err := ctrl.RoomSvc.GetRoomDetail(roomID, time.Now())
	if err != nil {
		if errors.Is(err, services.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		log.Printf("❌ Detail error for room %d: %v", roomID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load room"})
		return
	}

	payload := gin.H{
		"title":  "Room Detail: " + detail.Room.Name,
		"detail": detail,
	}
	if msg := c.Query("success"); msg != "" {
		payload["success"] = msg
	}
	if msg := c.Query("error"); msg != "" {
		payload["error"] = msg
	}
	c.JSON(http.StatusOK, payload)
}

// Contact handles GET /contact.
func (ctrl *RoomController) Contact(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"title":   "Contact Us",
		"message": "Please use this page to send us your questions.",
	})
}
