package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"reservation-backend/models"
)

// newTestDB opens a per-test in-memory SQLite database. The shared-cache DSN
// keeps every pooled connection on the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Room{}, &models.Reservation{}))
	return db
}

// day returns a fixed calendar day in an arbitrary reference month, so test
// cases can talk about "day 10" the way the booking scenarios do.
func day(d int) time.Time {
	return time.Date(2030, time.January, d, 0, 0, 0, 0, time.UTC)
}

func mustCreateRoom(t *testing.T, db *gorm.DB, number int, price float64, capacity int) models.Room {
	t.Helper()
	room := models.Room{RoomNumber: number, Price: price, MaxOccupancy: capacity}
	require.NoError(t, db.Create(&room).Error)
	return room
}
