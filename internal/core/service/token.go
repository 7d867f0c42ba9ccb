package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/usermgmt/users-api/internal/core/domain"
)

// ErrEmptySigningKey is returned when the process secret is missing or blank.
var ErrEmptySigningKey = errors.New("signing key is empty")

// SigningKey is the process-wide HMAC secret shared by TokenIssuer and
// TokenValidator. It is set once at startup and never mutated.
type SigningKey []byte

// NewSigningKey validates the configured secret.
func NewSigningKey(secret string) (SigningKey, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrEmptySigningKey
	}
	return SigningKey(secret), nil
}

// sessionClaims is the JWT payload. The password hash is deliberately absent:
// the token is integrity-protected only, and the client can read it.
type sessionClaims struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer signs session tokens with HS256.
type TokenIssuer struct {
	key SigningKey
	now func() time.Time
}

// IssuerOption customises a TokenIssuer.
type IssuerOption func(*TokenIssuer)

// WithClock overrides the time source used for the iat claim.
func WithClock(now func() time.Time) IssuerOption {
	return func(i *TokenIssuer) { i.now = now }
}

func NewTokenIssuer(key SigningKey, opts ...IssuerOption) *TokenIssuer {
	i := &TokenIssuer{key: key, now: time.Now}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Issue mints a token for a verified user. Failures are server faults and
// wrap domain.ErrSigning.
func (i *TokenIssuer) Issue(user *domain.User) (string, error) {
	if len(i.key) == 0 {
		return "", fmt.Errorf("%w: %v", domain.ErrSigning, ErrEmptySigningKey)
	}
	if user == nil {
		return "", fmt.Errorf("%w: nil user", domain.ErrSigning)
	}

	claims := sessionClaims{
		UserID: user.ID,
		Name:   user.Name,
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(i.now()),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(i.key))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrSigning, err)
	}
	return signed, nil
}

// TokenValidator verifies and decodes session tokens.
type TokenValidator struct {
	key    SigningKey
	parser *jwt.Parser
}

func NewTokenValidator(key SigningKey) *TokenValidator {
	return &TokenValidator{
		key: key,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithStrictDecoding(),
		),
	}
}

// Validate returns the claims of a well-formed token signed with the process
// key. Every failure wraps domain.ErrInvalidToken. Tokens carry no expiry.
func (v *TokenValidator) Validate(token string) (*domain.Claims, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: empty token", domain.ErrInvalidToken)
	}
	if len(v.key) == 0 {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, ErrEmptySigningKey)
	}

	claims := &sessionClaims{}
	parsed, err := v.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return []byte(v.key), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}

	role := domain.Role(claims.Role)
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidToken, claims.Role)
	}
	if claims.UserID == "" || claims.Name == "" {
		return nil, fmt.Errorf("%w: missing identity", domain.ErrInvalidToken)
	}

	out := &domain.Claims{
		UserID: claims.UserID,
		Name:   claims.Name,
		Role:   role,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	return out, nil
}
