package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"reservation-backend/models"
)

func TestFindRoomForOccupancy_BestFit(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)

	mustCreateRoom(t, db, 201, 150, 10)
	mustCreateRoom(t, db, 101, 50, 2)
	mustCreateRoom(t, db, 102, 80, 4)

	tests := []struct {
		people     int
		wantNumber int
	}{
		{1, 101},
		{2, 101},
		{3, 102}, // never the cap-10 room
		{4, 102},
		{5, 201},
		{10, 201},
	}
	for _, tt := range tests {
		room, err := svc.FindRoomForOccupancy(tt.people)
		require.NoError(t, err)
		assert.Equal(t, tt.wantNumber, room.RoomNumber, "people=%d", tt.people)
	}
}

func TestFindRoomForOccupancy_NoRoomQualifies(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)

	mustCreateRoom(t, db, 101, 50, 2)
	mustCreateRoom(t, db, 102, 80, 4)

	_, err := svc.FindRoomForOccupancy(5)
	assert.ErrorIs(t, err, ErrNoRoomForOccupancy)
}

func TestFindRoomForOccupancy_TieBreakLowestRoomNumber(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)

	mustCreateRoom(t, db, 305, 90, 4)
	mustCreateRoom(t, db, 104, 80, 4)

	room, err := svc.FindRoomForOccupancy(3)
	require.NoError(t, err)
	assert.Equal(t, 104, room.RoomNumber)
}

func TestFindPage(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)

	for _, n := range []int{303, 101, 202, 404, 105} {
		mustCreateRoom(t, db, n, 60, 2)
	}

	t.Run("ordered by room number, total carried", func(t *testing.T) {
		page, err := svc.FindPage(1, 3)
		require.NoError(t, err)
		assert.EqualValues(t, 5, page.Total)
		require.Len(t, page.Items, 3)
		assert.Equal(t, 101, page.Items[0].RoomNumber)
		assert.Equal(t, 105, page.Items[1].RoomNumber)
		assert.Equal(t, 202, page.Items[2].RoomNumber)

		rest, err := svc.FindPage(2, 3)
		require.NoError(t, err)
		require.Len(t, rest.Items, 2)
		assert.Equal(t, 303, rest.Items[0].RoomNumber)
		assert.Equal(t, 404, rest.Items[1].RoomNumber)
	})

	t.Run("identical arguments return identical results", func(t *testing.T) {
		first, err := svc.FindPage(1, 2)
		require.NoError(t, err)
		second, err := svc.FindPage(1, 2)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("page and size below 1 are rejected", func(t *testing.T) {
		_, err := svc.FindPage(0, 10)
		assert.ErrorIs(t, err, ErrInvalidPage)
		_, err = svc.FindPage(1, 0)
		assert.ErrorIs(t, err, ErrInvalidPage)
	})
}

func TestRoomCRUD(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)

	room := mustCreateRoom(t, db, 101, 50, 2)

	t.Run("duplicate room number is reported as such", func(t *testing.T) {
		err := svc.Create(&models.Room{RoomNumber: 101, Price: 70, MaxOccupancy: 3})
		require.Error(t, err)
		assert.True(t, IsDuplicateKey(err))
	})

	t.Run("update persists new values", func(t *testing.T) {
		room.Price = 55
		room.MaxOccupancy = 3
		require.NoError(t, svc.Update(&room))

		got, err := svc.GetByID(room.ID)
		require.NoError(t, err)
		assert.Equal(t, 55.0, got.Price)
		assert.Equal(t, 3, got.MaxOccupancy)
	})

	t.Run("update of a missing room is NotFound", func(t *testing.T) {
		missing := models.Room{ID: 9999, RoomNumber: 999, Price: 10, MaxOccupancy: 1}
		assert.ErrorIs(t, svc.Update(&missing), ErrNotFound)
	})

	t.Run("delete refuses while reservations reference the room", func(t *testing.T) {
		res := models.Reservation{
			CheckIn: datatypes.Date(day(10)),
			Nights:  2,
			People:  2,
			RoomID:  room.ID,
			Price:   room.Price,
			UserID:  1,
		}
		require.NoError(t, db.Create(&res).Error)

		assert.ErrorIs(t, svc.Delete(room.ID), ErrRoomHasReservations)

		require.NoError(t, db.Delete(&models.Reservation{}, res.ID).Error)
		require.NoError(t, svc.Delete(room.ID))

		_, err := svc.GetByID(room.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete of a missing room is NotFound", func(t *testing.T) {
		assert.ErrorIs(t, svc.Delete(4242), ErrNotFound)
	})

	t.Run("room number is reusable after deletion", func(t *testing.T) {
		replacement := models.Room{RoomNumber: 101, Price: 65, MaxOccupancy: 4}
		require.NoError(t, svc.Create(&replacement))

		got, err := svc.GetByID(replacement.ID)
		require.NoError(t, err)
		assert.Equal(t, 101, got.RoomNumber)
	})
}
