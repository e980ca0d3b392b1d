package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/veicsys/veicsys/internal/core/domain"
	"github.com/veicsys/veicsys/internal/core/ports"
)

const collectionProcesses = "service_processes"

type ProcessRepository struct {
	col *mongo.Collection
}

func NewProcessRepository(db *mongo.Database) *ProcessRepository {
	return &ProcessRepository{col: db.Collection(collectionProcesses)}
}

// Create inserts a new process document.
func (r *ProcessRepository) Create(ctx context.Context, p *domain.ServiceProcess) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, p); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateProcess
		}
		return err
	}
	return nil
}

// FindByProtocol retrieves a process by protocol.
// When clientID is non-empty, an additional filter by client_id is applied.
func (r *ProcessRepository) FindByProtocol(ctx context.Context, protocol, clientID string) (*domain.ServiceProcess, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"protocol": protocol}
	if clientID != "" {
		filter["client_id"] = clientID
	}
	return r.findOne(ctx, filter)
}

// FindByIdempotencyKey retrieves the process clientID created with the given
// key. Keys are scoped per client; the same key from another client is unrelated.
func (r *ProcessRepository) FindByIdempotencyKey(ctx context.Context, key, clientID string) (*domain.ServiceProcess, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.findOne(ctx, idempotencyFilter(key, clientID))
}

func idempotencyFilter(key, clientID string) bson.M {
	return bson.M{"client_id": clientID, "idempotency_key": key}
}

func (r *ProcessRepository) findOne(ctx context.Context, filter bson.M) (*domain.ServiceProcess, error) {
	var p domain.ServiceProcess
	if err := r.col.FindOne(ctx, filter).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProcessNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List returns one page of processes, newest first, plus the total match count.
func (r *ProcessRepository) List(ctx context.Context, f ports.ListProcessesFilter) ([]*domain.ServiceProcess, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := listFilter(f)

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((f.Page - 1) * f.Limit)).
		SetLimit(int64(f.Limit))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	items := make([]*domain.ServiceProcess, 0, f.Limit)
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func listFilter(f ports.ListProcessesFilter) bson.M {
	filter := bson.M{}
	if f.ClientID != "" {
		filter["client_id"] = f.ClientID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Type != "" {
		filter["type"] = f.Type
	}
	if f.Search != "" {
		pattern := primitiveRegex(f.Search)
		filter["$or"] = bson.A{
			bson.M{"protocol": pattern},
			bson.M{"vehicle_plate": pattern},
			bson.M{"client_name": pattern},
		}
	}
	created := bson.M{}
	if !f.DateFrom.IsZero() {
		created["$gte"] = f.DateFrom.UTC()
	}
	if !f.DateTo.IsZero() {
		created["$lte"] = f.DateTo.UTC()
	}
	if len(created) > 0 {
		filter["created_at"] = created
	}
	return filter
}

// primitiveRegex builds a case-insensitive substring match with the user's
// input escaped.
func primitiveRegex(search string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(search), "$options": "i"}
}

// EnsureIndexes creates necessary indexes on the processes collection.
func (r *ProcessRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "protocol", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "client_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{
			Keys:    bson.D{{Key: "client_id", Value: 1}, {Key: "idempotency_key", Value: 1}},
			Options: idempotencyIndexOptions(),
		},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// Keys are unique per client; processes created without one are not indexed.
func idempotencyIndexOptions() *options.IndexOptions {
	return options.Index().
		SetUnique(true).
		SetPartialFilterExpression(bson.M{"idempotency_key": bson.M{"$exists": true}})
}
