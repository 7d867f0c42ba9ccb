package domain

import "time"

// Claims is the decoded payload of a session token. It carries identity and
// role only; the password hash never leaves the store.
type Claims struct {
	UserID   string
	Name     string
	Role     Role
	IssuedAt time.Time
}

type policyKind int

const (
	policyPublic policyKind = iota
	policyAuthenticated
	policyRole
)

// Policy is the access requirement a route declares.
type Policy struct {
	kind policyKind
	role Role
}

// Public routes admit every request, with or without a token.
func Public() Policy { return Policy{kind: policyPublic} }

// AnyAuthenticated routes require a valid token of any role.
func AnyAuthenticated() Policy { return Policy{kind: policyAuthenticated} }

// RoleAtLeast routes require a valid token whose role meets min.
func RoleAtLeast(min Role) Policy { return Policy{kind: policyRole, role: min} }

// IsPublic reports whether the policy needs no token.
func (p Policy) IsPublic() bool { return p.kind == policyPublic }

// MinRole returns the threshold of a RoleAtLeast policy and false otherwise.
func (p Policy) MinRole() (Role, bool) {
	if p.kind != policyRole {
		return "", false
	}
	return p.role, true
}

func (p Policy) String() string {
	switch p.kind {
	case policyAuthenticated:
		return "authenticated"
	case policyRole:
		return "role:" + string(p.role)
	default:
		return "public"
	}
}

// AccessDecision is the per-request outcome of the access gate.
//
// Denial is nil when Allowed is true, otherwise ErrUnauthenticated or
// ErrForbidden. Claims is nil for anonymous requests.
type AccessDecision struct {
	Allowed bool
	Claims  *Claims
	Denial  error
}

// SubjectRole returns the caller's role, or "" when anonymous.
func (d AccessDecision) SubjectRole() Role {
	if d.Claims == nil {
		return ""
	}
	return d.Claims.Role
}
