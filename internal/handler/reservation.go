package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/vacancy-booking/internal/model"
	"github.com/iliyamo/vacancy-booking/internal/service"
)

// defaultPerPage is the listing page size when the client does not ask
// for one.
const defaultPerPage = 15

// maxPerPage caps client-requested page sizes.
const maxPerPage = 100

// ReservationHandler exposes the booking API: a paginated listing and
// the booking operation itself.  Field-level validation (formats,
// ordering, positivity, not-in-the-past) happens here; the service
// re-derives the date range and fails defensively on anything this
// layer lets through.
type ReservationHandler struct {
	Svc     *service.BookingService
	PerPage int // default page size; falls back to defaultPerPage when zero
}

// NewReservationHandler constructs a ReservationHandler.  svc must be
// non-nil.
func NewReservationHandler(svc *service.BookingService, perPage int) *ReservationHandler {
	if svc == nil {
		panic("nil service passed to NewReservationHandler")
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	return &ReservationHandler{Svc: svc, PerPage: perPage}
}

// storeRequest is the POST /v1/reservations body.
type storeRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Count     int    `json:"count"`
}

// parseDate accepts either a full RFC3339 instant or a bare
// YYYY-MM-DD day.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// Store handles POST /v1/reservations.  It validates the fields, asks
// the booking service to reserve, and maps the service's outcome onto
// stable client-visible error codes: 422 invalid_range and
// insufficient_capacity are expected client errors, 503
// transaction_conflict is transient, anything else is a 500 with a
// guaranteed full rollback behind it.
func (h *ReservationHandler) Store(c echo.Context) error {
	var body storeRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	fields := map[string]string{}
	var start, end time.Time
	var err error
	if body.StartDate == "" {
		fields["start_date"] = "is required"
	} else if start, err = parseDate(body.StartDate); err != nil {
		fields["start_date"] = "must be a valid date"
	}
	if body.EndDate == "" {
		fields["end_date"] = "is required"
	} else if end, err = parseDate(body.EndDate); err != nil {
		fields["end_date"] = "must be a valid date"
	}
	if body.Count < 1 {
		fields["count"] = "must be a positive integer"
	}
	if len(fields) == 0 {
		today := time.Now().UTC().Truncate(24 * time.Hour)
		if start.Before(today) {
			fields["start_date"] = "must not be in the past"
		}
		if !end.After(start) {
			fields["end_date"] = "must be after start_date"
		}
	}
	if len(fields) > 0 {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"error":  "validation_failed",
			"fields": fields,
		})
	}

	result, err := h.Svc.Book(c.Request().Context(), start, end, body.Count)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidRange):
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "invalid_range"})
		case errors.Is(err, service.ErrInsufficientCapacity):
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{
				"error":   "insufficient_capacity",
				"message": "there are not enough vacancies for the selected period",
			})
		case errors.Is(err, service.ErrTransactionConflict):
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "transaction_conflict"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"created":    result.Created,
		"start_date": result.Range.Start().Format("2006-01-02"),
		"end_date":   result.Range.End().Format("2006-01-02"),
	})
}

// Index handles GET /v1/reservations.  Reservations are returned newest
// first, paginated with ?page= and ?per_page= query parameters.
func (h *ReservationHandler) Index(c echo.Context) error {
	page := queryInt(c, "page", 1)
	if page < 1 {
		page = 1
	}
	perPage := queryInt(c, "per_page", h.PerPage)
	if perPage < 1 {
		perPage = h.PerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	items, total, err := h.Svc.List(c.Request().Context(), perPage, page)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items":    items,
		"page":     page,
		"per_page": perPage,
		"total":    total,
	})
}

// queryInt reads an integer query parameter with a fallback.
func queryInt(c echo.Context, name string, def int) int {
	v := c.QueryParam(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
