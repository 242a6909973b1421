package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/iliyamo/meeting-room-booking/internal/model"
)

// RoomRepo provides read access to the rooms table. Rooms are created by
// the seeder; the HTTP surface only lists and fetches them (update and
// delete remain placeholders, matching the system this replaces).
type RoomRepo struct {
	db *gorm.DB
}

// NewRoomRepo returns a repository bound to the given database handle.
func NewRoomRepo(db *gorm.DB) *RoomRepo { return &RoomRepo{db: db} }

// List returns every room ordered by name.
func (r *RoomRepo) List(ctx context.Context) ([]model.Room, error) {
	var rooms []model.Room
	err := r.db.WithContext(ctx).Order("name").Find(&rooms).Error
	return rooms, err
}

// GetByID looks a room up by primary key.
func (r *RoomRepo) GetByID(ctx context.Context, id uint) (*model.Room, error) {
	var room model.Room
	if err := r.db.WithContext(ctx).First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

// Create inserts a room. Only the seeder calls this today.
func (r *RoomRepo) Create(ctx context.Context, room *model.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

// Count returns the total number of rooms.
func (r *RoomRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Room{}).Count(&n).Error
	return n, err
}

// StatusCounts returns the number of rooms per status value. Statuses
// with no rooms are absent from the map.
func (r *RoomRepo) StatusCounts(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		N      int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&model.Room{}).
		Select("status, count(*) as n").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Status] = rw.N
	}
	return counts, nil
}
