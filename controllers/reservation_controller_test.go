package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"studyroom-backend/controllers"
	"studyroom-backend/models"
	"studyroom-backend/routes"
	"studyroom-backend/services"
	"studyroom-backend/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.OpenDB(t)
	roomSvc := services.NewRoomService(db)
	reservationSvc := services.NewReservationService(db, roomSvc)
	adminSvc := services.NewAdminService(db, roomSvc)

	router := routes.SetupRouter(
		controllers.NewRoomController(roomSvc),
		controllers.NewReservationController(reservationSvc),
		controllers.NewAdminController(adminSvc),
		db,
	)
	return router, db
}

func postReserve(router *gin.Engine, path, personID string) *httptest.ResponseRecorder {
	form := url.Values{"person_id": {personID}}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestReserveRedirectContract(t *testing.T) {
	router, db := newTestRouter(t)

	room := models.Room{Name: "Lab A", Capacity: 4, Active: true}
	require.NoError(t, db.Create(&room).Error)

	t.Run("successful booking redirects with success message", func(t *testing.T) {
		w := postReserve(router, "/room/1/reserve", "12345678-9")
		require.Equal(t, http.StatusFound, w.Code)

		location := w.Header().Get("Location")
		assert.True(t, strings.HasPrefix(location, "/room/1?success="), "got %q", location)
		assert.Contains(t, location, "Reservation+confirmed")
	})

	t.Run("occupied room redirects with conflict message", func(t *testing.T) {
		w := postReserve(router, "/room/1/reserve", "98765432-1")
		require.Equal(t, http.StatusFound, w.Code)
		assert.Contains(t, w.Header().Get("Location"), "error=Room+already+reserved")
	})

	t.Run("short person id redirects with validation message", func(t *testing.T) {
		w := postReserve(router, "/room/1/reserve", "abc")
		require.Equal(t, http.StatusFound, w.Code)
		assert.Contains(t, w.Header().Get("Location"), "error=Invalid+person+ID")

		var count int64
		require.NoError(t, db.Model(&models.Reservation{}).Count(&count).Error)
		assert.EqualValues(t, 1, count, "only the first booking may exist")
	})

	t.Run("unknown room is a 404, not a redirect", func(t *testing.T) {
		w := postReserve(router, "/room/999/reserve", "12345678-9")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDetailEchoesRedirectMessages(t *testing.T) {
	router, db := newTestRouter(t)

	room := models.Room{Name: "Lab A", Capacity: 4, Active: true}
	require.NoError(t, db.Create(&room).Error)

	req := httptest.NewRequest(http.MethodGet, "/room/1?error=Room+already+reserved", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, "Room already reserved", payload["error"])
}

func TestDetailOfDisabledRoomIs404(t *testing.T) {
	router, db := newTestRouter(t)

	room := models.Room{Name: "Closed Room", Capacity: 2, Active: false}
	require.NoError(t, db.Create(&room).Error)

	req := httptest.NewRequest(http.MethodGet, "/room/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestIndexListsOnlyActiveRooms(t *testing.T) {
	router, db := newTestRouter(t)

	require.NoError(t, db.Create(&models.Room{Name: "Lab A", Capacity: 4, Active: true}).Error)
	require.NoError(t, db.Create(&models.Room{Name: "Basement", Capacity: 2, Active: false}).Error)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		Rooms []services.RoomStatus `json:"rooms"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	require.Len(t, payload.Rooms, 1)
	assert.Equal(t, "Lab A", payload.Rooms[0].Room.Name)
	assert.True(t, payload.Rooms[0].Available)
}

// Two submits racing on the same instant: the second one lands after the
// first insert and must observe the conflict.
func TestSequentialReservesConflict(t *testing.T) {
	router, db := newTestRouter(t)

	require.NoError(t, db.Create(&models.Room{Name: "Lab A", Capacity: 4, Active: true}).Error)

	first := postReserve(router, "/room/1/reserve", "12345678-9")
	second := postReserve(router, "/room/1/reserve", "12345678-9")

	assert.Contains(t, first.Header().Get("Location"), "success=")
	assert.Contains(t, second.Header().Get("Location"), "error=Room+already+reserved")

	var count int64
	require.NoError(t, db.Model(&models.Reservation{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
