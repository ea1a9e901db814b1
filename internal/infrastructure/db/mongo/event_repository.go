package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lifedrop/blood-donation-api/internal/core/domain"
	"github.com/lifedrop/blood-donation-api/internal/core/ports"
)

const collectionRequestEvents = "donationRequestEvents"

// EventRepository implements ports.EventRepository using MongoDB.
type EventRepository struct {
	db *mongo.Database
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db *mongo.Database) ports.EventRepository {
	return &EventRepository{db: db}
}

// InsertEvent persists a lifecycle event to the donationRequestEvents audit collection.
func (r *EventRepository) InsertEvent(ctx context.Context, event *domain.LifecycleEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"requestId":   event.RequestID,
		"operation":   string(event.Operation),
		"to":          string(event.To),
		"actorEmail":  event.ActorEmail,
		"at":          event.At.UTC(),
		"processedAt": time.Now().UTC(),
	}
	if event.From != "" {
		doc["from"] = string(event.From)
	}

	_, err := r.db.Collection(collectionRequestEvents).InsertOne(ctx, doc)
	return err
}
