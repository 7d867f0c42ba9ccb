package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/usermgmt/users-api/internal/core/domain"
	"github.com/usermgmt/users-api/internal/core/ports"
)

// Verification results reported to a VerifyObserver.
const (
	VerifyOK                = "ok"
	VerifyInvalidCredential = "invalid_credentials"
	VerifyError             = "verification_error"
	VerifyStoreError        = "store_error"
)

// VerifyObserver receives the result and duration of every Verify call.
type VerifyObserver func(result string, elapsed time.Duration)

// VerifierOption customises a CredentialVerifier.
type VerifierOption func(*CredentialVerifier)

// WithVerifyObserver reports each verification to observe.
func WithVerifyObserver(observe VerifyObserver) VerifierOption {
	return func(v *CredentialVerifier) { v.observe = observe }
}

// CredentialVerifier checks a plaintext password against the stored bcrypt
// hash of a named user.
type CredentialVerifier struct {
	repo ports.UserRepository
	// dummyHash is compared against when the user does not exist so that
	// unknown names cost the same bcrypt work as wrong passwords.
	dummyHash []byte
	observe   VerifyObserver
	now       func() time.Time
}

// NewCredentialVerifier builds a verifier. cost must match the cost used when
// storing hashes; values outside bcrypt's range fall back to bcrypt.DefaultCost.
func NewCredentialVerifier(repo ports.UserRepository, cost int, opts ...VerifierOption) (*CredentialVerifier, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("users-api/dummy-password"), cost)
	if err != nil {
		return nil, fmt.Errorf("credential verifier: dummy hash: %w", err)
	}
	v := &CredentialVerifier{repo: repo, dummyHash: dummy, now: time.Now}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// Verify returns the user when password matches. Unknown users and wrong
// passwords both yield domain.ErrInvalidCredentials; a stored hash that
// cannot be compared yields domain.ErrVerification.
func (v *CredentialVerifier) Verify(ctx context.Context, name, password string) (*domain.User, error) {
	start := v.now()
	user, err := v.verify(ctx, name, password)
	if v.observe != nil {
		v.observe(verifyResult(err), v.now().Sub(start))
	}
	return user, err
}

func (v *CredentialVerifier) verify(ctx context.Context, name, password string) (*domain.User, error) {
	user, err := v.repo.FindByName(ctx, name)
	if errors.Is(err, domain.ErrUserNotFound) {
		_ = bcrypt.CompareHashAndPassword(v.dummyHash, []byte(password))
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("verify credentials: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	switch {
	case err == nil:
		return user, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return nil, domain.ErrInvalidCredentials
	default:
		return nil, fmt.Errorf("%w: %v", domain.ErrVerification, err)
	}
}

func verifyResult(err error) string {
	switch {
	case err == nil:
		return VerifyOK
	case errors.Is(err, domain.ErrInvalidCredentials):
		return VerifyInvalidCredential
	case errors.Is(err, domain.ErrVerification):
		return VerifyError
	default:
		return VerifyStoreError
	}
}
