package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/usermgmt/users-api/internal/core/domain"
	"github.com/usermgmt/users-api/internal/core/ports"
)

type stubUserService struct {
	registerFn func(ctx context.Context, in ports.RegisterUserInput) (*domain.User, error)
	users      []*domain.User
}

func (s *stubUserService) Register(ctx context.Context, in ports.RegisterUserInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubUserService) List(context.Context) ([]*domain.User, error) {
	return s.users, nil
}

func (s *stubUserService) Get(_ context.Context, id string) (*domain.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubUserService) Delete(ctx context.Context, id string) (*domain.User, error) {
	return s.Get(ctx, id)
}

func TestUserHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		registerFn: func(ctx context.Context, in ports.RegisterUserInput) (*domain.User, error) {
			if in.Name != "alice" || in.Password != "secret" || in.Role != domain.RoleUser || in.Caller != nil {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: "u1", Name: in.Name, Role: in.Role, PasswordHash: "$2a$10$hash"}, nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := postJSON(e, "/users", `{"name":"alice","password":"secret","role":"user"}`)
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["name"] != "alice" || resp["role"] != "user" || resp["id"] != "u1" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if strings.Contains(rec.Body.String(), "$2a$") {
		t.Fatalf("password hash leaked in response: %s", rec.Body.String())
	}
}

func TestUserHandler_Create_PassesCallerClaims(t *testing.T) {
	e := newTestEcho()
	caller := &domain.Claims{UserID: "u2", Name: "mike", Role: domain.RoleAdmin}
	stub := &stubUserService{
		registerFn: func(ctx context.Context, in ports.RegisterUserInput) (*domain.User, error) {
			if in.Caller != caller {
				t.Fatalf("caller claims not forwarded")
			}
			return &domain.User{ID: "u3", Name: in.Name, Role: in.Role}, nil
		},
	}
	handler := NewUserHandler(stub)

	c, _ := postJSON(e, "/users", `{"name":"root","password":"pass","role":"admin"}`)
	c.Set(ClaimsKey, caller)
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestUserHandler_Create_Validation(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		registerFn: func(ctx context.Context, in ports.RegisterUserInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewUserHandler(stub)

	for _, body := range []string{`{"name":"bob","role":"admin"}`, `{"name":"bob","password":"p","role":"root"}`, "not-json"} {
		c, _ := postJSON(e, "/users", body)
		if err := handler.Create(c); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("body %s: expected ErrValidation, got %v", body, err)
		}
	}
}

func TestUserHandler_ListGetDelete(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{users: []*domain.User{
		{ID: "u1", Name: "john", Role: domain.RoleUser},
		{ID: "u2", Name: "mike", Role: domain.RoleAdmin},
	}}
	handler := NewUserHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rec := httptest.NewRecorder()
	if err := handler.List(e.NewContext(req, rec)); err != nil {
		t.Fatalf("List error: %v", err)
	}
	var list []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil || len(list) != 2 {
		t.Fatalf("unexpected list payload %s (%v)", rec.Body.String(), err)
	}

	req = httptest.NewRequest(http.MethodDelete, "/users/u2", nil)
	rec = httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("u2")
	if err := handler.Delete(c); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"name":"mike"`) {
		t.Fatalf("unexpected delete response %d %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/users/1234", nil)
	c = e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("1234")
	if err := handler.Get(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
