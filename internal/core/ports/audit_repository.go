package ports

import (
	"context"

	"github.com/usermgmt/users-api/internal/core/domain"
)

// AuditRepository persists authentication audit events.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.AuthEvent) error
}

// AuditSink accepts audit events without blocking the request path.
type AuditSink interface {
	Record(event domain.AuthEvent)
}
