package middleware

import (
	"errors"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/usermgmt/users-api/internal/api/handler"
	"github.com/usermgmt/users-api/internal/api/metrics"
	"github.com/usermgmt/users-api/internal/core/domain"
	"github.com/usermgmt/users-api/internal/core/ports"
)

// TokenHeader carries the session token. Lookup is case-insensitive.
const TokenHeader = "x-access-token"

// Access builds per-route middleware around the access gate.
type Access struct {
	gate  ports.AccessGate
	audit ports.AuditSink
	log   zerolog.Logger
}

// NewAccess returns an Access. audit may be nil.
func NewAccess(gate ports.AccessGate, audit ports.AuditSink, log zerolog.Logger) *Access {
	return &Access{gate: gate, audit: audit, log: log}
}

// Require admits requests that satisfy policy and stores their claims on the
// context under handler.ClaimsKey. Denied requests end with the denial error
// (domain.ErrUnauthenticated or domain.ErrForbidden) for the error handler.
func (a *Access) Require(policy domain.Policy) echo.MiddlewareFunc {
	label := policy.String()
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			decision := a.gate.Authorize(policy, c.Request().Header.Get(TokenHeader))

			if !decision.Allowed {
				outcome := denialOutcome(decision.Denial)
				metrics.AccessDecisionsTotal.WithLabelValues(label, outcome).Inc()
				a.denied(c, decision, outcome)
				return decision.Denial
			}

			if !policy.IsPublic() {
				metrics.AccessDecisionsTotal.WithLabelValues(label, "admitted").Inc()
			}
			if decision.Claims != nil {
				c.Set(handler.ClaimsKey, decision.Claims)
			}
			return next(c)
		}
	}
}

func (a *Access) denied(c echo.Context, d domain.AccessDecision, outcome string) {
	var name string
	if d.Claims != nil {
		name = d.Claims.Name
	}
	requestID := c.Response().Header().Get(echo.HeaderXRequestID)

	a.log.Info().
		Str("request_id", requestID).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("name", name).
		Str("outcome", outcome).
		Msg("access denied")

	if a.audit == nil {
		return
	}
	a.audit.Record(domain.AuthEvent{
		Kind:      domain.EventAccessDenied,
		Name:      name,
		Role:      d.SubjectRole(),
		Reason:    outcome,
		Route:     c.Request().Method + " " + c.Path(),
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
	})
}

func denialOutcome(err error) string {
	if errors.Is(err, domain.ErrForbidden) {
		return "forbidden"
	}
	return "unauthenticated"
}
