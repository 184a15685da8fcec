package mongo

import (
	"alcyxob/gymbuddy/internal/domain"
	"alcyxob/gymbuddy/internal/repository"
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoUserRepository implements the repository.UserRepository interface using MongoDB.
type mongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new instance of mongoUserRepository.
// It expects a connected *mongo.Database instance.
func NewMongoUserRepository(db *mongo.Database) repository.UserRepository {
	return &mongoUserRepository{
		collection: db.Collection(userCollectionName),
	}
}

// Create inserts a new user into the database.
func (r *mongoUserRepository) Create(ctx context.Context, user *domain.User) error {
	// Ensure essential fields are set (basic validation, more robust validation belongs in service layer)
	if user.Email == "" || user.Username == "" || user.PasswordHash == "" {
		return errors.New("user email, username, and password hash are required")
	}

	if user.ID == "" {
		user.ID = uuid.NewString() // Generate new id
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, user)
	// Check for duplicate key error (email and username are unique indexes)
	return insertErr(err)
}

// GetByEmail retrieves a user by their email address.
func (r *mongoUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// GetByID retrieves a user by id.
func (r *mongoUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoUserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var user domain.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Return the custom repository error for not found
			return nil, repository.ErrNotFound
		}
		return nil, err // Return other errors
	}
	return &user, nil
}

// GetProfiles loads the public profiles of ids with a single $in query.
func (r *mongoUserRepository) GetProfiles(ctx context.Context, ids []string) (map[string]domain.PublicProfile, error) {
	profiles := make(map[string]domain.PublicProfile, len(ids))
	if len(ids) == 0 {
		return profiles, nil
	}

	var found []domain.PublicProfile
	// Only project the public fields, never the password hash
	findOptions := options.Find().SetProjection(bson.M{"name": 1, "username": 1})
	if err := findAll(ctx, r.collection, bson.M{"_id": bson.M{"$in": ids}}, &found, findOptions); err != nil {
		return nil, err
	}
	for _, p := range found {
		profiles[p.ID] = p
	}
	return profiles, nil
}

// Search matches name, username or email with a case-insensitive regex.
func (r *mongoUserRepository) Search(ctx context.Context, query, excludeID string, limit int) ([]domain.PublicProfile, error) {
	// Escape the query so user input is matched literally
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{
		"_id": bson.M{"$ne": excludeID},
		"$or": bson.A{
			bson.M{"name": pattern},
			bson.M{"username": pattern},
			bson.M{"email": pattern},
		},
	}
	findOptions := options.Find().
		SetProjection(bson.M{"name": 1, "username": 1}).
		SetSort(bson.D{{Key: "username", Value: 1}}).
		SetLimit(int64(limit))

	profiles := make([]domain.PublicProfile, 0)
	if err := findAll(ctx, r.collection, filter, &profiles, findOptions); err != nil {
		return nil, err
	}
	return profiles, nil
}

// EnsureUserIndexes creates necessary indexes for the users collection.
func EnsureUserIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
