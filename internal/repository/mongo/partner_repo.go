package mongo

import (
	"alcyxob/gymbuddy/internal/domain"
	"alcyxob/gymbuddy/internal/repository"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoPartnerRepository implements repository.PartnerRepository
type mongoPartnerRepository struct {
	collection *mongo.Collection
}

// NewMongoPartnerRepository creates a new partner link repository backed by MongoDB.
func NewMongoPartnerRepository(db *mongo.Database) repository.PartnerRepository {
	return &mongoPartnerRepository{
		collection: db.Collection(partnerCollectionName),
	}
}

// Create inserts a new partner link. The unique (requesterId, targetId) index
// turns a second invite for the same pair into repository.ErrDuplicate.
func (r *mongoPartnerRepository) Create(ctx context.Context, link *domain.PartnerLink) error {
	if link.RequesterID == "" || link.TargetID == "" {
		return errors.New("partner link requires requesterId and targetId")
	}

	if link.ID == "" {
		link.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	link.CreatedAt = now
	link.UpdatedAt = now
	if link.Status == "" {
		link.Status = domain.PartnerPending
	}

	_, err := r.collection.InsertOne(ctx, link)
	return insertErr(err)
}

// GetByID retrieves a partner link by its ID.
func (r *mongoPartnerRepository) GetByID(ctx context.Context, id string) (*domain.PartnerLink, error) {
	var link domain.PartnerLink
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&link)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &link, nil
}

func (r *mongoPartnerRepository) list(ctx context.Context, filter bson.M) ([]domain.PartnerLink, error) {
	links := make([]domain.PartnerLink, 0)
	// Oldest first, so "first accepted link" is stable.
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	if err := findAll(ctx, r.collection, filter, &links, findOptions); err != nil {
		return nil, err
	}
	return links, nil
}

// FindBetween returns the links between a and b, in either direction.
func (r *mongoPartnerRepository) FindBetween(ctx context.Context, a, b string) ([]domain.PartnerLink, error) {
	return r.list(ctx, bson.M{"$or": bson.A{
		bson.M{"requesterId": a, "targetId": b},
		bson.M{"requesterId": b, "targetId": a},
	}})
}

func (r *mongoPartnerRepository) ListByRequester(ctx context.Context, requesterID string) ([]domain.PartnerLink, error) {
	return r.list(ctx, bson.M{"requesterId": requesterID})
}

func (r *mongoPartnerRepository) ListByTarget(ctx context.Context, targetID string) ([]domain.PartnerLink, error) {
	return r.list(ctx, bson.M{"targetId": targetID})
}

func (r *mongoPartnerRepository) ListAccepted(ctx context.Context, userID string) ([]domain.PartnerLink, error) {
	return r.list(ctx, bson.M{
		"status": domain.PartnerAccepted,
		"$or": bson.A{
			bson.M{"requesterId": userID},
			bson.M{"targetId": userID},
		},
	})
}

// UpdateStatus moves a link out of the from status and reports how many links matched.
func (r *mongoPartnerRepository) UpdateStatus(ctx context.Context, id string, from, to domain.PartnerStatus) (int64, error) {
	// Filter on the current status too, so a concurrent answer cannot be overwritten
	filter := bson.M{"_id": id, "status": from}
	update := bson.M{
		"$set": bson.M{
			"status":    to,
			"updatedAt": time.Now().UTC(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return result.MatchedCount, nil
}

func (r *mongoPartnerRepository) Delete(ctx context.Context, id string) (int64, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// EnsurePartnerIndexes creates necessary indexes. Call during startup.
func EnsurePartnerIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// At most one link per ordered pair
			Keys:    bson.D{{Key: "requesterId", Value: 1}, {Key: "targetId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "targetId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
