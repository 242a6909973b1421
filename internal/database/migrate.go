package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/iliyamo/meeting-room-booking/internal/model"
	"github.com/iliyamo/meeting-room-booking/internal/repository"
	"github.com/iliyamo/meeting-room-booking/internal/utils"
)

// Migrate creates or updates the schema for all persisted models.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(&model.User{}, &model.Room{}, &model.Booking{})
}

// EnsureAdmin creates the admin account if no user holds the given email.
// Idempotent across restarts.
func EnsureAdmin(ctx context.Context, users *repository.UserRepo, email, name, password string, bcryptCost int) error {
	count, err := users.CountByEmail(ctx, email)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	hash, err := utils.HashPassword(password, bcryptCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	return users.Create(ctx, &model.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	})
}

// SeedRooms inserts a starter room inventory when the table is empty, so
// a fresh install has something to book against.
func SeedRooms(ctx context.Context, rooms *repository.RoomRepo) error {
	n, err := rooms.Count(ctx)
	if err != nil || n > 0 {
		return err
	}
	starter := []model.Room{
		{Name: "Aurora", Capacity: 4, Location: "Floor 1", Status: model.RoomAvailable, Facilities: []string{"whiteboard", "tv"}},
		{Name: "Borealis", Capacity: 8, Location: "Floor 1", Status: model.RoomAvailable, Facilities: []string{"projector", "video-conference"}},
		{Name: "Cascade", Capacity: 12, Location: "Floor 2", Status: model.RoomOccupied, Facilities: []string{"projector", "whiteboard", "video-conference"}},
		{Name: "Dune", Capacity: 2, Location: "Floor 2", Status: model.RoomMaintenance, Facilities: []string{"whiteboard"}},
	}
	for i := range starter {
		if err := rooms.Create(ctx, &starter[i]); err != nil {
			return err
		}
	}
	return nil
}
