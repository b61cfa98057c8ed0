// controllers/reservation_controller.go
package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"studyroom-backend/services"

	"github.com/gin-gonic/gin"
)

type ReservationController struct {
	ReservationSvc *services.ReservationService
}

func NewReservationController(svc *services.ReservationService) *ReservationController {
	return &ReservationController{ReservationSvc: svc}
}

func detailRedirect(c *gin.Context, roomID uint, key, message string) {
	c.Redirect(http.StatusFound, fmt.Sprintf("/room/%d?%s=%s", roomID, key, url.QueryEscape(message)))
}

// Reserve handles POST /room/:id/reserve. The person id comes from the
// form field person_id; start is the server clock and the end time is
// fixed at two hours later whatever the client sent. Outcomes are carried
// back to the detail page as a query parameter, matching how the page
// shows them inline.
func (ctrl *ReservationController) Reserve(c *gin.Context) {
	roomID, ok := parseRoomID(c)
	if !ok {
		return
	}

	personID := c.PostForm("person_id")
	reservation, err := ctrl.ReservationSvc.Create(roomID, personID, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		case errors.Is(err, services.ErrInvalidPersonID):
			detailRedirect(c, roomID, "error", "Invalid person ID")
		case errors.Is(err, services.ErrRoomUnavailable):
			detailRedirect(c, roomID, "error", "Room already reserved")
		default:
			log.Printf("❌ Reserve error for room %d: %v", roomID, err)
			detailRedirect(c, roomID, "error", "Internal error while reserving")
		}
		return
	}

	message := fmt.Sprintf("Reservation confirmed until %s (ref %s)",
		reservation.EndsAt.Format("15:04"), reservation.ReferenceCode)
	detailRedirect(c, roomID, "success", message)
}
