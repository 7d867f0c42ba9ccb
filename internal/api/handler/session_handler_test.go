package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/usermgmt/users-api/internal/core/domain"
)

type stubSessionService struct {
	createFn func(ctx context.Context, name, password string) (string, error)
}

func (s *stubSessionService) CreateSession(ctx context.Context, name, password string) (string, error) {
	return s.createFn(ctx, name, password)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func postJSON(e *echo.Echo, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSessionHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubSessionService{
		createFn: func(ctx context.Context, name, password string) (string, error) {
			if name != "john" || password != "pass" {
				t.Fatalf("unexpected args: %s %s", name, password)
			}
			return "token123", nil
		},
	}
	handler := NewSessionHandler(stub)

	c, rec := postJSON(e, "/session", `{"name":"john","password":"pass"}`)
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
}

func TestSessionHandler_Create_MissingField(t *testing.T) {
	e := newTestEcho()
	stub := &stubSessionService{
		createFn: func(ctx context.Context, name, password string) (string, error) {
			t.Fatalf("should not be called")
			return "", nil
		},
	}
	handler := NewSessionHandler(stub)

	for _, body := range []string{`{"name":"john"}`, `{"password":"pass"}`, `{}`} {
		c, _ := postJSON(e, "/session", body)
		if err := handler.Create(c); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("body %s: expected ErrValidation, got %v", body, err)
		}
	}
}

func TestSessionHandler_Create_InvalidPayload(t *testing.T) {
	e := newTestEcho()
	stub := &stubSessionService{
		createFn: func(ctx context.Context, name, password string) (string, error) {
			t.Fatalf("should not be called")
			return "", nil
		},
	}
	handler := NewSessionHandler(stub)

	c, _ := postJSON(e, "/session", "{")
	if err := handler.Create(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestSessionHandler_Create_PropagatesServiceErrors(t *testing.T) {
	e := newTestEcho()
	for _, want := range []error{domain.ErrInvalidCredentials, domain.ErrSigning, domain.ErrVerification} {
		stub := &stubSessionService{
			createFn: func(ctx context.Context, name, password string) (string, error) {
				return "", want
			},
		}
		handler := NewSessionHandler(stub)

		c, rec := postJSON(e, "/session", `{"name":"john","password":"bad"}`)
		if err := handler.Create(c); !errors.Is(err, want) {
			t.Fatalf("expected %v, got %v", want, err)
		}
		if rec.Body.Len() != 0 {
			t.Fatalf("handler must not write a body on error")
		}
	}
}

func TestSessionResult(t *testing.T) {
	cases := map[string]error{
		"issued":              nil,
		"invalid_credentials": domain.ErrInvalidCredentials,
		"error":               domain.ErrSigning,
	}
	for want, err := range cases {
		if got := sessionResult(err); got != want {
			t.Fatalf("sessionResult(%v) = %s, want %s", err, got, want)
		}
	}
}
