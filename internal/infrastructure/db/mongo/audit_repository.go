package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/usermgmt/users-api/internal/core/domain"
)

const auditCollection = "auth_events"

// AuditRepository appends authentication events to the auth_events collection.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type auditDoc struct {
	Kind      string    `bson:"kind"`
	Name      string    `bson:"name,omitempty"`
	Role      string    `bson:"role,omitempty"`
	Reason    string    `bson:"reason,omitempty"`
	Route     string    `bson:"route,omitempty"`
	RequestID string    `bson:"request_id,omitempty"`
	Timestamp time.Time `bson:"timestamp"`
}

func (r *AuditRepository) InsertEvent(ctx context.Context, event *domain.AuthEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, auditDoc{
		Kind:      string(event.Kind),
		Name:      event.Name,
		Role:      string(event.Role),
		Reason:    event.Reason,
		Route:     event.Route,
		RequestID: event.RequestID,
		Timestamp: event.Timestamp,
	})
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// EnsureIndexes indexes events by user and time for audit queries.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}, {Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "kind", Value: 1}}},
	})
	return err
}
