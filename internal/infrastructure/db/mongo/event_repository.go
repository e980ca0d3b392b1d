package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/veicsys/veicsys/internal/core/domain"
	"github.com/veicsys/veicsys/internal/core/ports"
)

const collectionProcessEvents = "process_events"

// EventRepository implements ports.EventRepository using MongoDB.
type EventRepository struct {
	db *mongo.Database
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db *mongo.Database) ports.EventRepository {
	return &EventRepository{db: db}
}

// UpdateProcessStatus atomically sets the process status and appends a history entry.
func (r *EventRepository) UpdateProcessStatus(ctx context.Context, event *domain.ProcessEvent) error {
	entry := domain.StatusHistoryEntry{
		Status:    event.Status,
		Timestamp: event.Timestamp.UTC(),
		Source:    event.Source,
		Notes:     event.Notes,
	}

	filter := bson.M{"protocol": event.Protocol}
	update := bson.M{
		"$set":  bson.M{"status": string(event.Status), "updated_at": time.Now().UTC()},
		"$push": bson.M{"status_history": entry},
	}

	res, err := r.db.Collection(collectionProcesses).UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrProcessNotFound
	}
	return nil
}

// InsertEvent persists a process event to the audit collection.
func (r *EventRepository) InsertEvent(ctx context.Context, event *domain.ProcessEvent) error {
	doc := bson.M{
		"protocol":     event.Protocol,
		"status":       string(event.Status),
		"timestamp":    event.Timestamp.UTC(),
		"source":       event.Source,
		"processed_at": time.Now().UTC(),
	}
	if event.Notes != "" {
		doc["notes"] = event.Notes
	}

	_, err := r.db.Collection(collectionProcessEvents).InsertOne(ctx, doc)
	return err
}
