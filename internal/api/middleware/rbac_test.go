package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/usermgmt/users-api/internal/core/domain"
)

func TestRoleAtLeast_AdminPassesUserRoute(t *testing.T) {
	e := echo.New()
	access, issuer := newTestAccess(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TokenHeader, issue(t, issuer, "mike", domain.RoleAdmin))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	h := access.RoleAtLeast(domain.RoleUser)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
}

func TestDenialOutcome(t *testing.T) {
	if got := denialOutcome(domain.ErrForbidden); got != "forbidden" {
		t.Fatalf("expected forbidden, got %s", got)
	}
	if got := denialOutcome(domain.ErrUnauthenticated); got != "unauthenticated" {
		t.Fatalf("expected unauthenticated, got %s", got)
	}
	if denialOutcome(errors.New("other")) != "unauthenticated" {
		t.Fatalf("unknown denials count as unauthenticated")
	}
}
