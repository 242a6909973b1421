package middleware // middleware contains reusable HTTP middleware for the API

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/meeting-room-booking/internal/utils"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "token"

// CookieAuth returns an Echo middleware that validates the session token
// cookie and injects the verified identity into the request context.
// Handlers behind it can read the caller via Claims(c). API routes use
// this middleware; page routes use PageGuard, which redirects instead of
// returning 401.
func CookieAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
			}
			claims, err := utils.VerifySessionToken(secret, cookie.Value)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			c.Set("claims", claims)
			return next(c)
		}
	}
}

// Claims returns the verified session claims stored by CookieAuth. It
// errors when the middleware did not run or verification never happened;
// handlers translate that into a 401.
func Claims(c echo.Context) (*utils.SessionClaims, error) {
	claims, ok := c.Get("claims").(*utils.SessionClaims)
	if !ok || claims == nil {
		return nil, errors.New("no session in context")
	}
	return claims, nil
}

// RequireRole returns a middleware enforcing that the authenticated user
// holds one of the given roles. It assumes CookieAuth ran earlier in the
// chain. Requests without a matching role are rejected with 403.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := Claims(c)
			if err != nil || !allowed[claims.Role] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
