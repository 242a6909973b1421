package handler // handler contains the HTTP handlers for the booking API

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/meeting-room-booking/internal/repository"
)

// RoomHandler exposes the room inventory. Rooms are managed by the
// seeder; update and delete are placeholders kept so the routes exist,
// matching the admin tooling stub in the system this replaces.
type RoomHandler struct {
	Rooms *repository.RoomRepo
}

func NewRoomHandler(rooms *repository.RoomRepo) *RoomHandler {
	return &RoomHandler{Rooms: rooms}
}

// ListRooms handles GET /api/rooms and returns every room.
func (h *RoomHandler) ListRooms(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rooms, err := h.Rooms.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, rooms)
}

// GetRoom handles GET /api/rooms/:id.
func (h *RoomHandler) GetRoom(c echo.Context) error {
	id, err := parseID(c) // numeric :id or 400
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	room, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, room)
}

// UpdateRoom handles PUT /api/rooms/:id. Room editing never shipped; the
// route answers 501 so clients get an explicit signal instead of a 404.
func (h *RoomHandler) UpdateRoom(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, echo.Map{"error": "room update not implemented"})
}

// DeleteRoom handles DELETE /api/rooms/:id. Same placeholder as UpdateRoom.
func (h *RoomHandler) DeleteRoom(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, echo.Map{"error": "room delete not implemented"})
}

// parseID parses the :id route parameter as an unsigned integer.
func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
