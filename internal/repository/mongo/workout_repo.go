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

// mongoWorkoutRepository implements repository.WorkoutRepository
type mongoWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutRepository creates a new daily workout repository.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		collection: db.Collection(workoutCollectionName),
	}
}

// newestFirst is the sort order of every workout listing.
var newestFirst = bson.D{{Key: "date", Value: -1}, {Key: "createdAt", Value: -1}}

// Create inserts a new workout.
func (r *mongoWorkoutRepository) Create(ctx context.Context, workout *domain.DailyWorkout) error {
	if workout.OwnerID == "" || workout.Title == "" {
		return errors.New("workout requires ownerId and title")
	}
	if workout.ID == "" {
		workout.ID = uuid.NewString()
	}
	if workout.SharedWith == nil {
		workout.SharedWith = []string{}
	}
	workout.CreatedAt = time.Now().UTC()

	_, err := r.collection.InsertOne(ctx, workout)
	return insertErr(err)
}

// GetByID retrieves a single workout by its ID.
func (r *mongoWorkoutRepository) GetByID(ctx context.Context, id string) (*domain.DailyWorkout, error) {
	var workout domain.DailyWorkout
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&workout)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &workout, nil
}

func (r *mongoWorkoutRepository) list(ctx context.Context, filter bson.M) ([]domain.DailyWorkout, error) {
	workouts := make([]domain.DailyWorkout, 0)
	if err := findAll(ctx, r.collection, filter, &workouts, options.Find().SetSort(newestFirst)); err != nil {
		return nil, err
	}
	return workouts, nil
}

func (r *mongoWorkoutRepository) ListOwned(ctx context.Context, ownerID string, filter repository.WorkoutFilter) ([]domain.DailyWorkout, error) {
	query := bson.M{"ownerId": ownerID}
	if !filter.IncludeShared {
		query["isShared"] = false
	}
	if filter.FavoritesOnly {
		query["isFavorite"] = true
	}
	if filter.Since != nil {
		query["date"] = bson.M{"$gte": *filter.Since}
	}
	return r.list(ctx, query)
}

func (r *mongoWorkoutRepository) ListVisible(ctx context.Context, userID string, since time.Time) ([]domain.DailyWorkout, error) {
	return r.list(ctx, bson.M{
		"date": bson.M{"$gte": since},
		"$or": bson.A{
			bson.M{"ownerId": userID},
			bson.M{"sharedWith": userID},
			bson.M{"weeklyWorkoutId": nil}, // matches missing and null
		},
	})
}

func (r *mongoWorkoutRepository) ListByWeeklyWorkout(ctx context.Context, weeklyWorkoutIDs ...string) ([]domain.DailyWorkout, error) {
	if len(weeklyWorkoutIDs) == 0 {
		return []domain.DailyWorkout{}, nil
	}
	return r.list(ctx, bson.M{"weeklyWorkoutId": bson.M{"$in": weeklyWorkoutIDs}})
}

// set applies fields to the workout matching filter and reports the match count.
func (r *mongoWorkoutRepository) set(ctx context.Context, filter, fields bson.M) (int64, error) {
	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": fields})
	if err != nil {
		return 0, err
	}
	return result.MatchedCount, nil
}

func (r *mongoWorkoutRepository) MarkCompleted(ctx context.Context, id, ownerID string, at time.Time) (int64, error) {
	return r.set(ctx,
		bson.M{"_id": id, "ownerId": ownerID},
		bson.M{"completed": true, "completedAt": at})
}

func (r *mongoWorkoutRepository) SetFavorite(ctx context.Context, id, ownerID string, favorite bool) (int64, error) {
	return r.set(ctx,
		bson.M{"_id": id, "ownerId": ownerID},
		bson.M{"isFavorite": favorite})
}

// Delete removes the workout only when it belongs to ownerID.
func (r *mongoWorkoutRepository) Delete(ctx context.Context, id, ownerID string) (int64, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "ownerId": ownerID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// EnsureWorkoutIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "sharedWith", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "weeklyWorkoutId", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
