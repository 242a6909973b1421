package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/meeting-room-booking/internal/model"
)

func TestRoomRepo_ListOrdersByName(t *testing.T) {
	db := newTestDB(t)
	repo := NewRoomRepo(db)
	seedRoom(t, db, "Zenith", model.RoomAvailable)
	seedRoom(t, db, "Atlas", model.RoomOccupied)

	rooms, err := repo.List(ctx())
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, "Atlas", rooms[0].Name)
	assert.Equal(t, "Zenith", rooms[1].Name)
}

func TestRoomRepo_GetByID_NotFound(t *testing.T) {
	repo := NewRoomRepo(newTestDB(t))
	_, err := repo.GetByID(ctx(), 99)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestRoomRepo_StatusCounts(t *testing.T) {
	db := newTestDB(t)
	repo := NewRoomRepo(db)
	seedRoom(t, db, "A", model.RoomAvailable)
	seedRoom(t, db, "B", model.RoomAvailable)
	seedRoom(t, db, "C", model.RoomOccupied)
	seedRoom(t, db, "D", model.RoomMaintenance)

	counts, err := repo.StatusCounts(ctx())
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[model.RoomAvailable])
	assert.Equal(t, int64(1), counts[model.RoomOccupied])
	assert.Equal(t, int64(1), counts[model.RoomMaintenance])
}

func TestRoomRepo_FacilitiesRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewRoomRepo(db)

	room := &model.Room{
		Name:       "Echo",
		Capacity:   10,
		Location:   "Floor 3",
		Status:     model.RoomAvailable,
		Facilities: []string{"projector", "whiteboard", "video"},
	}
	require.NoError(t, repo.Create(ctx(), room))

	got, err := repo.GetByID(ctx(), room.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"projector", "whiteboard", "video"}, got.Facilities)
}
