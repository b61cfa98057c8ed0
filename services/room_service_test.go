package services

import (
	"testing"
	"time"

	"studyroom-backend/models"
	"studyroom-backend/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAvailable(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := NewRoomService(db)
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	room := models.Room{Name: "Lab A", Capacity: 4, Active: true}
	require.NoError(t, db.Create(&room).Error)

	t.Run("active room with no reservations", func(t *testing.T) {
		available, err := svc.IsAvailable(&room, now)
		require.NoError(t, err)
		assert.True(t, available)
	})

	t.Run("reservation still running", func(t *testing.T) {
		res := models.Reservation{
			RoomID: room.ID, PersonID: "12345678-9", ReferenceCode: "ref-1",
			StartsAt: now, EndsAt: now.Add(2 * time.Hour),
		}
		require.NoError(t, db.Create(&res).Error)

		available, err := svc.IsAvailable(&room, now.Add(time.Hour))
		require.NoError(t, err)
		assert.False(t, available)
	})

	t.Run("reservation just expired", func(t *testing.T) {
		available, err := svc.IsAvailable(&room, now.Add(2*time.Hour+time.Second))
		require.NoError(t, err)
		assert.True(t, available)
	})

	t.Run("disabled room is never available", func(t *testing.T) {
		disabled := models.Room{Name: "Closed Room", Capacity: 2, Active: false}
		require.NoError(t, db.Create(&disabled).Error)

		available, err := svc.IsAvailable(&disabled, now)
		require.NoError(t, err)
		assert.False(t, available)
	})
}

func TestListActiveRooms(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := NewRoomService(db)
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	roomB := models.Room{Name: "Lab B", Capacity: 6, Active: true}
	roomA := models.Room{Name: "Lab A", Capacity: 4, Active: true}
	hidden := models.Room{Name: "Basement", Capacity: 2, Active: false}
	require.NoError(t, db.Create(&roomB).Error)
	require.NoError(t, db.Create(&roomA).Error)
	require.NoError(t, db.Create(&hidden).Error)

	// Lab B is occupied right now.
	require.NoError(t, db.Create(&models.Reservation{
		RoomID: roomB.ID, PersonID: "12345678-9", ReferenceCode: "ref-b",
		StartsAt: now.Add(-time.Hour), EndsAt: now.Add(time.Hour),
	}).Error)

	statuses, err := svc.ListActiveRooms(now)
	require.NoError(t, err)
	require.Len(t, statuses, 2, "disabled rooms must not appear")

	assert.Equal(t, "Lab A", statuses[0].Room.Name, "ordered by name")
	assert.True(t, statuses[0].Available)
	assert.Equal(t, "Available", statuses[0].Status)
	assert.Equal(t, "bg-green-500", statuses[0].StatusClass)

	assert.Equal(t, "Lab B", statuses[1].Room.Name)
	assert.False(t, statuses[1].Available)
	assert.Equal(t, "Reserved", statuses[1].Status)
	assert.Equal(t, "bg-red-500", statuses[1].StatusClass)
}

func TestGetRoomDetail(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := NewRoomService(db)
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	room := models.Room{Name: "Lab A", Capacity: 4, Active: true}
	require.NoError(t, db.Create(&room).Error)

	t.Run("unknown room", func(t *testing.T) {
		_, err := svc.GetRoomDetail(9999, now)
		assert.ErrorIs(t, err, ErrRoomNotFound)
	})

	t.Run("disabled room behaves like a missing one", func(t *testing.T) {
		disabled := models.Room{Name: "Closed Room", Capacity: 2, Active: false}
		require.NoError(t, db.Create(&disabled).Error)

		_, err := svc.GetRoomDetail(disabled.ID, now)
		assert.ErrorIs(t, err, ErrRoomNotFound)
	})

	t.Run("free room", func(t *testing.T) {
		detail, err := svc.GetRoomDetail(room.ID, now)
		require.NoError(t, err)
		assert.True(t, detail.Available)
		assert.Nil(t, detail.CurrentReservation)
		assert.Empty(t, detail.UpcomingReservations)
	})

	t.Run("current plus upcoming, capped at five", func(t *testing.T) {
		// Active booking finishing soonest becomes the current one.
		current := models.Reservation{
			RoomID: room.ID, PersonID: "11111111-1", ReferenceCode: "ref-cur",
			StartsAt: now.Add(-time.Hour), EndsAt: now.Add(time.Hour),
		}
		require.NoError(t, db.Create(&current).Error)

		// Seven future bookings; only the first five should be listed.
		for i := 0; i < 7; i++ {
			start := now.Add(time.Duration(i+2) * time.Hour)
			require.NoError(t, db.Create(&models.Reservation{
				RoomID: room.ID, PersonID: "22222222-2",
				ReferenceCode: "ref-up-" + string(rune('a'+i)),
				StartsAt:      start, EndsAt: start.Add(2 * time.Hour),
			}).Error)
		}

		detail, err := svc.GetRoomDetail(room.ID, now)
		require.NoError(t, err)
		assert.False(t, detail.Available)
		require.NotNil(t, detail.CurrentReservation)
		assert.Equal(t, current.ID, detail.CurrentReservation.ID)

		require.Len(t, detail.UpcomingReservations, 5)
		for i := 1; i < len(detail.UpcomingReservations); i++ {
			prev := detail.UpcomingReservations[i-1].StartsAt
			assert.False(t, detail.UpcomingReservations[i].StartsAt.Before(prev), "upcoming must be ascending")
		}
		for _, r := range detail.UpcomingReservations {
			assert.NotEqual(t, current.ID, r.ID, "current reservation must not repeat in upcoming")
		}
	})

	t.Run("current starting in the future is excluded from upcoming", func(t *testing.T) {
		other := models.Room{Name: "Lab Z", Capacity: 4, Active: true}
		require.NoError(t, db.Create(&other).Error)

		future := models.Reservation{
			RoomID: other.ID, PersonID: "33333333-3", ReferenceCode: "ref-fut",
			StartsAt: now.Add(30 * time.Minute), EndsAt: now.Add(150 * time.Minute),
		}
		require.NoError(t, db.Create(&future).Error)

		detail, err := svc.GetRoomDetail(other.ID, now)
		require.NoError(t, err)
		require.NotNil(t, detail.CurrentReservation)
		assert.Equal(t, future.ID, detail.CurrentReservation.ID)
		assert.Empty(t, detail.UpcomingReservations)
	})
}
