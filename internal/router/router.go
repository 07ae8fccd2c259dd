package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/vacancy-booking/internal/handler"
	"github.com/iliyamo/vacancy-booking/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterReservations registers the booking API under /v1.  When
// jwtSecret is non-empty the routes require a Bearer token and the
// authorizer sees the token's role claim; with an empty secret the
// routes are open and the authorizer decides on anonymous requests
// (the default AllowAll grants everything, matching the service's
// open policy).  cache may be nil; when present it wraps the listing
// endpoint only, since the booking endpoint must never serve stale
// state.
func RegisterReservations(e *echo.Echo, h *handler.ReservationHandler, az middleware.Authorizer, jwtSecret string, cache echo.MiddlewareFunc) {
	g := e.Group("/v1")
	if jwtSecret != "" {
		g.Use(middleware.JWTAuth(jwtSecret))
	}

	index := []echo.MiddlewareFunc{middleware.Authorize(az, middleware.ActionViewReservations)}
	if cache != nil {
		index = append(index, cache)
	}
	g.GET("/reservations", h.Index, index...)
	g.POST("/reservations", h.Store, middleware.Authorize(az, middleware.ActionCreateReservations))
}

// RegisterAdmin registers the vacancy seeding endpoints under
// /v1/vacancies, protected by basic auth.  When adminUser is empty the
// endpoints are not registered at all.
func RegisterAdmin(e *echo.Echo, h *handler.VacancyHandler, adminUser, adminPassHash string) {
	if adminUser == "" {
		return
	}
	g := e.Group("/v1/vacancies", middleware.AdminBasicAuth(adminUser, adminPassHash))
	g.PUT("", h.Upsert)
	g.GET("", h.List)
}
