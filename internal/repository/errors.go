// Package repository implements database access for users, rooms and
// bookings on top of GORM. Repositories translate gorm.ErrRecordNotFound
// and driver-level failures into the sentinel errors below so that
// handlers can map them to HTTP status codes without inspecting SQL
// details.
package repository

import "errors"

var (
	// ErrEmailExists is returned when creating a user whose email is
	// already registered.
	ErrEmailExists = errors.New("email already exists")
	// ErrUserNotFound is returned when no user matches the given id or email.
	ErrUserNotFound = errors.New("user not found")
	// ErrRoomNotFound is returned when no room matches the given id.
	ErrRoomNotFound = errors.New("room not found")
	// ErrBookingNotFound is returned when no booking matches the given id.
	ErrBookingNotFound = errors.New("booking not found")
)
