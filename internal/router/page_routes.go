package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/meeting-room-booking/internal/handler"
	"github.com/iliyamo/meeting-room-booking/internal/middleware"
)

// RegisterPages mounts the browser-facing page shells behind PageGuard.
// The guard redirects anonymous visitors on protected paths to
// /login?from=<path> and applies the advisory admin/user dashboard
// redirects.
func RegisterPages(e *echo.Echo, jwtSecret string) {
	guard := middleware.PageGuard(jwtSecret)

	e.GET("/login", handler.PageShell("Sign in"), guard)
	e.GET("/dashboard", handler.PageShell("Dashboard"), guard)
	e.GET("/calendar", handler.PageShell("Calendar"), guard)
	e.GET("/rooms", handler.PageShell("Rooms"), guard)
	e.GET("/my-bookings", handler.PageShell("My bookings"), guard)
	e.GET("/admin/dashboard", handler.PageShell("Admin dashboard"), guard)
}
