package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/usermgmt/users-api/internal/core/domain"
	"github.com/usermgmt/users-api/internal/core/ports"
)

// Verifier checks a user's credentials.
type Verifier interface {
	Verify(ctx context.Context, name, password string) (*domain.User, error)
}

// Issuer mints session tokens.
type Issuer interface {
	Issue(user *domain.User) (string, error)
}

type sessionService struct {
	verifier Verifier
	issuer   Issuer
	audit    ports.AuditSink
	log      zerolog.Logger
}

// NewSessionService returns a SessionService. audit may be nil.
func NewSessionService(verifier Verifier, issuer Issuer, audit ports.AuditSink, log zerolog.Logger) ports.SessionService {
	return &sessionService{
		verifier: verifier,
		issuer:   issuer,
		audit:    audit,
		log:      log,
	}
}

// CreateSession verifies name and password and returns a signed token.
func (s *sessionService) CreateSession(ctx context.Context, name, password string) (string, error) {
	if name == "" || password == "" {
		return "", domain.ErrValidation
	}

	user, err := s.verifier.Verify(ctx, name, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			s.log.Info().Str("name", name).Msg("login rejected")
			s.record(domain.AuthEvent{Kind: domain.EventLoginRejected, Name: name, Reason: "invalid_credentials"})
		}
		return "", err
	}

	token, err := s.issuer.Issue(user)
	if err != nil {
		return "", err
	}

	s.log.Info().Str("name", user.Name).Str("role", user.Role.String()).Msg("session issued")
	s.record(domain.AuthEvent{Kind: domain.EventSessionIssued, Name: user.Name, Role: user.Role})
	return token, nil
}

func (s *sessionService) record(ev domain.AuthEvent) {
	if s.audit == nil {
		return
	}
	ev.Timestamp = time.Now().UTC()
	s.audit.Record(ev)
}
