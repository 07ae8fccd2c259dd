package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Actions checked by the authorization gate.  They mirror the two
// operations the API exposes.
const (
	ActionViewReservations   = "reservations.view"
	ActionCreateReservations = "reservations.create"
)

// Authorizer decides whether the current request may perform an action.
// The booking core never embeds policy; the gate is consulted at the
// routing layer and swapped per deployment.
type Authorizer interface {
	Allow(c echo.Context, action string) bool
}

// AllowAll grants every action.  This matches the default policy of the
// service: listing and booking are open, even to anonymous callers.
type AllowAll struct{}

// Allow always returns true.
func (AllowAll) Allow(echo.Context, string) bool { return true }

// RoleBased grants an action when the request's "role" context value
// (set by JWTAuth) is in the action's allowed set.  Actions absent from
// the map are denied for everyone.
type RoleBased struct {
	Roles map[string][]string // action -> allowed roles
}

// Allow reports whether the request's role may perform the action.
func (r RoleBased) Allow(c echo.Context, action string) bool {
	v, ok := c.Get("role").(string)
	if !ok || v == "" {
		return false
	}
	for _, role := range r.Roles[action] {
		if role == v {
			return true
		}
	}
	return false
}

// Authorize returns a middleware that consults az for the given action
// and aborts with 403 Forbidden when denied.
func Authorize(az Authorizer, action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !az.Allow(c, action) {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
