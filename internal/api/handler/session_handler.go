package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/usermgmt/users-api/internal/api/metrics"
	"github.com/usermgmt/users-api/internal/core/domain"
	"github.com/usermgmt/users-api/internal/core/ports"
)

type SessionHandler struct {
	sessions ports.SessionService
}

func NewSessionHandler(sessions ports.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

type sessionRequest struct {
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	// HS256 JWT with payload {userId, name, role, iat}; iat is the issuedAt time in Unix seconds.
	Token string `json:"token"`
}

// Create exchanges a name and password for a session token.
//
// @Summary      Create a session
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      sessionRequest  true  "Credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  emptyResponse
// @Failure      403   {object}  emptyResponse
// @Failure      500   {object}  emptyResponse
// @Router       /session [post]
func (h *SessionHandler) Create(c echo.Context) error {
	var req sessionRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	start := time.Now()
	token, err := h.sessions.CreateSession(c.Request().Context(), req.Name, req.Password)
	result := sessionResult(err)
	metrics.SessionsTotal.WithLabelValues(result).Inc()
	metrics.SessionDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, sessionResponse{Token: token})
}

func sessionResult(err error) string {
	switch {
	case err == nil:
		return "issued"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	default:
		return "error"
	}
}
