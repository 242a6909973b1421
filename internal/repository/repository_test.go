package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/iliyamo/meeting-room-booking/internal/model"
)

// newTestDB opens a fresh in-memory SQLite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&model.User{}, &model.Room{}, &model.Booking{}))
	return gdb
}

func seedUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()
	u := &model.User{Email: email, Name: "Test User", PasswordHash: "x", Role: model.RoleUser}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedRoom(t *testing.T, db *gorm.DB, name, status string) *model.Room {
	t.Helper()
	r := &model.Room{Name: name, Capacity: 6, Location: "Floor 1", Status: status, Facilities: []string{"whiteboard"}}
	require.NoError(t, db.Create(r).Error)
	return r
}

func seedBooking(t *testing.T, db *gorm.DB, userID, roomID uint, start time.Time) *model.Booking {
	t.Helper()
	b := &model.Booking{
		UserID: userID, RoomID: roomID,
		StartTime: start, EndTime: start.Add(time.Hour),
		MeetingTitle: "Standup", Attendees: 3,
		Location: "Floor 1", BookedBy: "Test User",
		Status: model.BookingPending,
	}
	require.NoError(t, db.Create(b).Error)
	return b
}

func ctx() context.Context { return context.Background() }
