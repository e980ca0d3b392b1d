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

const collectionProfiles = "profiles"

// ProfileRepository implements ports.ProfileRepository using MongoDB. The
// document id is the owning user's id.
type ProfileRepository struct {
	col *mongo.Collection
	now func() time.Time
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{col: db.Collection(collectionProfiles), now: time.Now}
}

type mongoProfile struct {
	UserID    string    `bson:"_id"`
	Email     string    `bson:"email"`
	Name      string    `bson:"name"`
	Role      string    `bson:"role"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// toDomain keeps whatever role string is stored; callers parse it, so a
// value outside the known set degrades to the unknown role.
func (m mongoProfile) toDomain() *domain.Profile {
	return &domain.Profile{
		UserID:    m.UserID,
		Email:     m.Email,
		Name:      m.Name,
		Role:      domain.Role(m.Role),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (r *ProfileRepository) FindByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mp mongoProfile
	if err := r.col.FindOne(ctx, bson.M{"_id": userID}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return mp.toDomain(), nil
}

// Upsert writes the whole profile, keeping the original created_at.
func (r *ProfileRepository) Upsert(ctx context.Context, p *domain.Profile) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := r.now().UTC()
	created := p.CreatedAt.UTC()
	if created.IsZero() {
		created = now
	}

	update := bson.M{
		"$set": bson.M{
			"email":      p.Email,
			"name":       p.Name,
			"role":       string(p.Role),
			"updated_at": now,
		},
		"$setOnInsert": bson.M{"created_at": created},
	}
	if _, err := r.col.UpdateByID(ctx, p.UserID, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) SetRole(ctx context.Context, userID string, role domain.Role) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"role": string(role), "updated_at": r.now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var mp mongoProfile
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": userID}, update, opts).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("set role: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *ProfileRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "role", Value: 1}}})
	return err
}
