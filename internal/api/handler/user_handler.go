package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/usermgmt/users-api/internal/core/domain"
	"github.com/usermgmt/users-api/internal/core/ports"
)

// UserHandler exposes account management. Access control is applied by the
// route middleware; handlers only read the resulting claims.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type createUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
}

type userResponse struct {
	ID   string      `json:"id"`
	Name string      `json:"name"`
	Role domain.Role `json:"role"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Role: u.Role}
}

// Create registers a new account. Creating an admin requires an admin token.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        x-access-token  header    string             false  "Session token (required to create an admin)"
// @Param        body            body      createUserRequest  true   "New user"
// @Success      201             {object}  userResponse
// @Failure      400             {object}  emptyResponse
// @Failure      403             {object}  emptyResponse
// @Failure      409             {object}  emptyResponse
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.users.Register(c.Request().Context(), ports.RegisterUserInput{
		Name:     req.Name,
		Password: req.Password,
		Role:     domain.Role(req.Role),
		Caller:   ClaimsFrom(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// List returns every account.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     AccessToken
// @Success      200  {array}   userResponse
// @Failure      403  {object}  emptyResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns a single account.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     AccessToken
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  userResponse
// @Failure      403  {object}  emptyResponse
// @Failure      404  {object}  emptyResponse
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.users.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Delete removes an account and returns the deleted record.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     AccessToken
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  userResponse
// @Failure      403  {object}  emptyResponse
// @Failure      404  {object}  emptyResponse
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	user, err := h.users.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}
