package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/vacancy-booking/internal/repository"
)

// VacancyHandler exposes the administrative surface for seeding and
// inspecting per-day capacity.  The booking core never creates vacancy
// rows; this is the only write path for them.  Routes using this
// handler are expected to sit behind the admin basic-auth middleware.
type VacancyHandler struct {
	Repo *repository.VacancyRepo
}

// NewVacancyHandler constructs a VacancyHandler.  repo must be non-nil.
func NewVacancyHandler(repo *repository.VacancyRepo) *VacancyHandler {
	if repo == nil {
		panic("nil repository passed to NewVacancyHandler")
	}
	return &VacancyHandler{Repo: repo}
}

// Upsert handles PUT /v1/vacancies.  The body carries a single day and
// its capacity; an existing row for the day is overwritten.
func (h *VacancyHandler) Upsert(c echo.Context) error {
	var body struct {
		Date  string `json:"date"`
		Count int    `json:"count"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	day, err := time.Parse("2006-01-02", body.Date)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	if body.Count < 0 {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "count must not be negative"})
	}
	if err := h.Repo.Upsert(c.Request().Context(), day, body.Count); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"date":  day.Format("2006-01-02"),
		"count": body.Count,
	})
}

// List handles GET /v1/vacancies?from=&to=.  Without parameters it
// covers today through thirty days out.  Days with no row are absent
// from the result.
func (h *VacancyHandler) List(c echo.Context) error {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	from, to := today, today.AddDate(0, 0, 30)
	if v := c.QueryParam("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "from must be YYYY-MM-DD"})
		}
		from = t
	}
	if v := c.QueryParam("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "to must be YYYY-MM-DD"})
		}
		to = t
	}
	if to.Before(from) {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "to must not be before from"})
	}

	vacancies, err := h.Repo.ListRange(c.Request().Context(), from, to)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	items := make([]echo.Map, 0, len(vacancies))
	for _, v := range vacancies {
		items = append(items, echo.Map{
			"date":  v.Date.Format("2006-01-02"),
			"count": v.Count,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
