package domain

import "time"

// AuthEventKind classifies an entry in the authentication audit trail.
type AuthEventKind string

const (
	EventSessionIssued AuthEventKind = "session_issued"
	EventLoginRejected AuthEventKind = "login_rejected"
	EventAccessDenied  AuthEventKind = "access_denied"
)

// AuthEvent is an audit record. It never holds a password or token.
type AuthEvent struct {
	Kind      AuthEventKind
	Name      string // user name; empty for anonymous callers
	Role      Role
	Reason    string
	Route     string
	RequestID string
	Timestamp time.Time
}
