package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func runAuthorize(t *testing.T, az Authorizer, action, role string) int {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set("role", role)
	}
	h := Authorize(az, action)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	return rec.Code
}

func TestAllowAll(t *testing.T) {
	if code := runAuthorize(t, AllowAll{}, ActionCreateReservations, ""); code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for anonymous request under AllowAll", code)
	}
}

func TestRoleBased(t *testing.T) {
	az := RoleBased{Roles: map[string][]string{
		ActionViewReservations:   {"ADMIN", "CUSTOMER"},
		ActionCreateReservations: {"ADMIN"},
	}}

	cases := []struct {
		name   string
		action string
		role   string
		want   int
	}{
		{"allowed role", ActionViewReservations, "CUSTOMER", http.StatusOK},
		{"role not in set", ActionCreateReservations, "CUSTOMER", http.StatusForbidden},
		{"missing role", ActionViewReservations, "", http.StatusForbidden},
		{"unknown action denied", "reservations.delete", "ADMIN", http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if code := runAuthorize(t, az, tc.action, tc.role); code != tc.want {
				t.Fatalf("status = %d, want %d", code, tc.want)
			}
		})
	}
}
