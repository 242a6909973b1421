package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/meeting-room-booking/internal/model"
)

func TestBookingRepo_CreatePreloadsRelations(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db, "alice@example.com")
	r := seedRoom(t, db, "Aurora", model.RoomAvailable)
	repo := NewBookingRepo(db)

	b := &model.Booking{
		UserID: u.ID, RoomID: r.ID,
		StartTime:    time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local),
		EndTime:      time.Date(2026, 3, 10, 10, 0, 0, 0, time.Local),
		MeetingTitle: "Kickoff", Attendees: 4,
		Location: "Floor 1", BookedBy: "Alice", Status: model.BookingPending,
	}
	require.NoError(t, repo.Create(ctx(), b))

	assert.NotZero(t, b.ID)
	assert.Equal(t, "alice@example.com", b.User.Email)
	assert.Equal(t, "Aurora", b.Room.Name)
}

func TestBookingRepo_GetByID_NotFound(t *testing.T) {
	repo := NewBookingRepo(newTestDB(t))

	_, err := repo.GetByID(ctx(), 999)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestBookingRepo_ListFilters(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice@example.com")
	bob := seedUser(t, db, "bob@example.com")
	aurora := seedRoom(t, db, "Aurora", model.RoomAvailable)
	dune := seedRoom(t, db, "Dune", model.RoomAvailable)
	repo := NewBookingRepo(db)

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)
	seedBooking(t, db, alice.ID, aurora.ID, day.Add(14*time.Hour)) // Mar 10, 14:00
	seedBooking(t, db, alice.ID, dune.ID, day.Add(9*time.Hour))    // Mar 10, 09:00
	seedBooking(t, db, bob.ID, aurora.ID, day.AddDate(0, 0, 1))    // Mar 11

	t.Run("by user", func(t *testing.T) {
		got, err := repo.List(ctx(), BookingFilter{UserID: &alice.ID})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("by room", func(t *testing.T) {
		got, err := repo.List(ctx(), BookingFilter{RoomID: &aurora.ID})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("by user and room", func(t *testing.T) {
		got, err := repo.List(ctx(), BookingFilter{UserID: &alice.ID, RoomID: &aurora.ID})
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("single day inclusive, ordered ascending", func(t *testing.T) {
		got, err := repo.List(ctx(), BookingFilter{Date: &day})
		require.NoError(t, err)
		require.Len(t, got, 2)
		// Both bookings fall inside [day 00:00, next day); earliest first.
		assert.True(t, got[0].StartTime.Before(got[1].StartTime))
	})

	t.Run("date wins over range", func(t *testing.T) {
		from := day.AddDate(0, 0, -30)
		got, err := repo.List(ctx(), BookingFilter{Date: &day, From: &from})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("open range from", func(t *testing.T) {
		from := day.AddDate(0, 0, 1)
		got, err := repo.List(ctx(), BookingFilter{From: &from})
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("open range to", func(t *testing.T) {
		to := day.Add(12 * time.Hour)
		got, err := repo.List(ctx(), BookingFilter{To: &to})
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("no filter returns everything", func(t *testing.T) {
		got, err := repo.List(ctx(), BookingFilter{})
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})
}

func TestBookingRepo_PartialUpdate(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db, "alice@example.com")
	r := seedRoom(t, db, "Aurora", model.RoomAvailable)
	repo := NewBookingRepo(db)

	b := seedBooking(t, db, u.ID, r.ID, time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local))

	got, err := repo.Update(ctx(), b.ID, map[string]any{"status": model.BookingConfirmed})
	require.NoError(t, err)

	assert.Equal(t, model.BookingConfirmed, got.Status)
	// Untouched fields survive the update.
	assert.Equal(t, "Standup", got.MeetingTitle)
	assert.Equal(t, 3, got.Attendees)
	assert.True(t, got.StartTime.Equal(b.StartTime))
}

func TestBookingRepo_Update_NotFound(t *testing.T) {
	repo := NewBookingRepo(newTestDB(t))

	_, err := repo.Update(ctx(), 12345, map[string]any{"status": model.BookingCancelled})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestBookingRepo_Delete(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db, "alice@example.com")
	r := seedRoom(t, db, "Aurora", model.RoomAvailable)
	repo := NewBookingRepo(db)

	b := seedBooking(t, db, u.ID, r.ID, time.Now())
	require.NoError(t, repo.Delete(ctx(), b.ID))

	_, err := repo.GetByID(ctx(), b.ID)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	assert.ErrorIs(t, repo.Delete(ctx(), b.ID), ErrBookingNotFound)
}

func TestBookingRepo_OverlapsAreAllowed(t *testing.T) {
	// Two bookings on the same room over the same hour both persist;
	// there is no overlap constraint at any layer.
	db := newTestDB(t)
	u := seedUser(t, db, "alice@example.com")
	r := seedRoom(t, db, "Aurora", model.RoomAvailable)
	repo := NewBookingRepo(db)

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	seedBooking(t, db, u.ID, r.ID, start)
	seedBooking(t, db, u.ID, r.ID, start.Add(30*time.Minute))

	got, err := repo.List(ctx(), BookingFilter{RoomID: &r.ID})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestBookingRepo_StatsForUser(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db, "alice@example.com")
	other := seedUser(t, db, "bob@example.com")
	r := seedRoom(t, db, "Aurora", model.RoomAvailable)
	repo := NewBookingRepo(db)

	// Wednesday mid-week keeps the whole test week inside one calendar week.
	now := time.Date(2026, 3, 11, 12, 0, 0, 0, time.Local)

	seedBooking(t, db, u.ID, r.ID, now.Add(-48*time.Hour))   // Monday, past, this week
	seedBooking(t, db, u.ID, r.ID, now.Add(2*time.Hour))     // today, upcoming
	seedBooking(t, db, u.ID, r.ID, now.Add(48*time.Hour))    // Friday, upcoming, this week
	seedBooking(t, db, u.ID, r.ID, now.AddDate(0, 1, 0))     // next month
	seedBooking(t, db, other.ID, r.ID, now.Add(2*time.Hour)) // somebody else

	stats, err := repo.StatsForUser(ctx(), u.ID, now)
	require.NoError(t, err)

	assert.Equal(t, int64(4), stats.Total)
	assert.Equal(t, int64(3), stats.Upcoming)
	assert.Equal(t, int64(1), stats.Today)
	assert.Equal(t, int64(3), stats.Week)
}

func TestStartOfWeek(t *testing.T) {
	cases := []struct {
		in   time.Time
		want time.Time
	}{
		{time.Date(2026, 3, 11, 15, 30, 0, 0, time.Local), time.Date(2026, 3, 9, 0, 0, 0, 0, time.Local)},  // Wednesday
		{time.Date(2026, 3, 9, 0, 0, 1, 0, time.Local), time.Date(2026, 3, 9, 0, 0, 0, 0, time.Local)},     // Monday
		{time.Date(2026, 3, 15, 23, 59, 0, 0, time.Local), time.Date(2026, 3, 9, 0, 0, 0, 0, time.Local)},  // Sunday
	}
	for _, tc := range cases {
		assert.True(t, startOfWeek(tc.in).Equal(tc.want), "in=%v", tc.in)
	}
}
