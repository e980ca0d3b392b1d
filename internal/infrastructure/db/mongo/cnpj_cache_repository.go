package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/veicsys/veicsys/internal/core/domain"
)

const collectionCNPJCache = "cnpj_cache"

// CNPJCacheRepository implements ports.CNPJCache. Rows are keyed by the
// normalized 14 digit CNPJ and never expire.
type CNPJCacheRepository struct {
	col *mongo.Collection
}

func NewCNPJCacheRepository(db *mongo.Database) *CNPJCacheRepository {
	return &CNPJCacheRepository{col: db.Collection(collectionCNPJCache)}
}

// The registry document is stored verbatim as a string so that the
// response body can be replayed byte for byte.
type mongoCNPJRecord struct {
	CNPJ      string    `bson:"_id"`
	Payload   string    `bson:"payload"`
	FetchedAt time.Time `bson:"fetched_at"`
}

func (r *CNPJCacheRepository) Get(ctx context.Context, cnpj string) (*domain.CNPJRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoCNPJRecord
	if err := r.col.FindOne(ctx, bson.M{"_id": cnpj}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCNPJCacheMiss
		}
		return nil, fmt.Errorf("find cnpj: %w", err)
	}
	return &domain.CNPJRecord{CNPJ: doc.CNPJ, Payload: []byte(doc.Payload), FetchedAt: doc.FetchedAt}, nil
}

// Save replaces the row for the record's CNPJ.
func (r *CNPJCacheRepository) Save(ctx context.Context, rec *domain.CNPJRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoCNPJRecord{CNPJ: rec.CNPJ, Payload: string(rec.Payload), FetchedAt: rec.FetchedAt.UTC()}
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": rec.CNPJ}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save cnpj: %w", err)
	}
	return nil
}
