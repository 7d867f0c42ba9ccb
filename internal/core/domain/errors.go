package domain

import "errors"

// Client-facing outcomes.
var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("access forbidden")
)

// Server faults. Never rendered with detail.
var (
	ErrVerification = errors.New("credential verification failed")
	ErrSigning      = errors.New("token signing failed")
)

// Store outcomes.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)
