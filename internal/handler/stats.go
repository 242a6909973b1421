package handler

import (
	"context"
	"math"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/meeting-room-booking/internal/middleware"
	"github.com/iliyamo/meeting-room-booking/internal/model"
	"github.com/iliyamo/meeting-room-booking/internal/repository"
)

// StatsHandler serves the read-only aggregates behind the dashboards.
type StatsHandler struct {
	Rooms    *repository.RoomRepo
	Bookings *repository.BookingRepo

	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

func NewStatsHandler(rooms *repository.RoomRepo, bookings *repository.BookingRepo) *StatsHandler {
	return &StatsHandler{Rooms: rooms, Bookings: bookings, Now: time.Now}
}

type dashboardResp struct {
	TotalRooms       int64 `json:"totalRooms"`
	AvailableRooms   int64 `json:"availableRooms"`
	OccupiedRooms    int64 `json:"occupiedRooms"`
	MaintenanceRooms int64 `json:"maintenanceRooms"`
	BookingsToday    int64 `json:"bookingsToday"`
	Utilization      int   `json:"utilization"`
}

// DashboardStats handles GET /api/dashboard-stats: room counts by status,
// bookings starting within the current server-local day, and utilization
// as round(occupied/total*100), defined as 0 for an empty inventory.
func (h *StatsHandler) DashboardStats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	counts, err := h.Rooms.StatusCounts(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	var total int64
	for _, n := range counts {
		total += n
	}

	now := h.Now()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	today, err := h.Bookings.CountStartingBetween(ctx, day, day.AddDate(0, 0, 1))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	resp := dashboardResp{
		TotalRooms:       total,
		AvailableRooms:   counts[model.RoomAvailable],
		OccupiedRooms:    counts[model.RoomOccupied],
		MaintenanceRooms: counts[model.RoomMaintenance],
		BookingsToday:    today,
		Utilization:      utilization(counts[model.RoomOccupied], total),
	}
	return c.JSON(http.StatusOK, resp)
}

// UserBookingStats handles GET /api/user/booking-stats for the caller.
func (h *StatsHandler) UserBookingStats(c echo.Context) error {
	claims, err := middleware.Claims(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	stats, err := h.Bookings.StatsForUser(ctx, claims.UserID, h.Now())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, stats)
}

// utilization is the share of occupied rooms as a rounded percentage.
func utilization(occupied, total int64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(occupied) / float64(total) * 100))
}
