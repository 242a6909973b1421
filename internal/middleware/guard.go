package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/meeting-room-booking/internal/model"
	"github.com/iliyamo/meeting-room-booking/internal/utils"
)

// ProtectedPagePrefixes are the page paths that require a session. A
// request matching one of these without a valid token cookie is sent to
// the login page with the original path preserved in ?from=.
var ProtectedPagePrefixes = []string{"/dashboard", "/calendar", "/rooms", "/my-bookings", "/admin"}

// PageGuard returns a middleware for browser-facing page routes. Unlike
// CookieAuth it redirects rather than returning 401, and it applies the
// advisory role redirects: an admin landing on a regular page is sent to
// the admin dashboard, a regular user landing under /admin is sent back
// to the user dashboard. The role redirect is navigation guidance only,
// not access control; mutation endpoints carry their own auth.
func PageGuard(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			if !pageIsProtected(path) {
				return next(c)
			}
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return redirectToLogin(c, path)
			}
			claims, err := utils.VerifySessionToken(secret, cookie.Value)
			if err != nil {
				return redirectToLogin(c, path)
			}

			onAdminPath := strings.HasPrefix(path, "/admin")
			if claims.Role == model.RoleAdmin && !onAdminPath {
				return c.Redirect(http.StatusFound, "/admin/dashboard")
			}
			if claims.Role != model.RoleAdmin && onAdminPath {
				return c.Redirect(http.StatusFound, "/dashboard")
			}
			c.Set("claims", claims)
			return next(c)
		}
	}
}

func pageIsProtected(path string) bool {
	for _, prefix := range ProtectedPagePrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

func redirectToLogin(c echo.Context, from string) error {
	return c.Redirect(http.StatusFound, "/login?from="+url.QueryEscape(from))
}
