package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/inkwell/publishing-api/internal/core/domain"
)

const interestsCollection = "interests"

type InterestRepository struct {
	coll *mongo.Collection
}

func NewInterestRepository(db *mongo.Database) *InterestRepository {
	return &InterestRepository{coll: db.Collection(interestsCollection)}
}

type mongoInterest struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (r *InterestRepository) Create(ctx context.Context, i *domain.Interest) (*domain.Interest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, mongoInterest{
		Name:        i.Name,
		Description: i.Description,
		CreatedAt:   i.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("insert interest: %w", err)
	}

	created := *i
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *InterestRepository) FindByID(ctx context.Context, id string) (*domain.Interest, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInterestNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mi mongoInterest
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mi); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInterestNotFound
		}
		return nil, fmt.Errorf("find interest: %w", err)
	}
	return mi.toDomain(), nil
}

// FindByIDs returns the interests whose ids exist; unknown or malformed ids
// are simply omitted so callers can detect dangling references by length.
func (r *InterestRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Interest, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("find interests: %w", err)
	}
	defer cur.Close(ctx)

	return decodeInterests(ctx, cur)
}

// List returns all interests sorted by name.
func (r *InterestRepository) List(ctx context.Context) ([]*domain.Interest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list interests: %w", err)
	}
	defer cur.Close(ctx)

	return decodeInterests(ctx, cur)
}

func (r *InterestRepository) Update(ctx context.Context, i *domain.Interest) (*domain.Interest, error) {
	oid, err := primitive.ObjectIDFromHex(i.ID)
	if err != nil {
		return nil, domain.ErrInterestNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mi mongoInterest
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"name": i.Name, "description": i.Description}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mi)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInterestNotFound
		}
		return nil, fmt.Errorf("update interest: %w", err)
	}
	return mi.toDomain(), nil
}

func (r *InterestRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInterestNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete interest: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrInterestNotFound
	}
	return nil
}

func decodeInterests(ctx context.Context, cur *mongo.Cursor) ([]*domain.Interest, error) {
	var interests []*domain.Interest
	for cur.Next(ctx) {
		var mi mongoInterest
		if err := cur.Decode(&mi); err != nil {
			return nil, fmt.Errorf("decode interest: %w", err)
		}
		interests = append(interests, mi.toDomain())
	}
	return interests, cur.Err()
}

func (mi *mongoInterest) toDomain() *domain.Interest {
	return &domain.Interest{
		ID:          mi.ID.Hex(),
		Name:        mi.Name,
		Description: mi.Description,
		CreatedAt:   mi.CreatedAt,
	}
}
