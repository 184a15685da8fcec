package mongo

import (
	"alcyxob/gymbuddy/internal/domain"
	"alcyxob/gymbuddy/internal/repository"
	"context"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoExerciseRepository implements repository.ExerciseRepository
type mongoExerciseRepository struct {
	collection *mongo.Collection
}

// NewMongoExerciseRepository creates a repository for the exercises of daily workouts.
func NewMongoExerciseRepository(db *mongo.Database) repository.ExerciseRepository {
	return &mongoExerciseRepository{
		collection: db.Collection(exerciseCollectionName),
	}
}

func (r *mongoExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) error {
	if exercise.DailyWorkoutID == "" || exercise.Name == "" {
		return errors.New("exercise requires dailyWorkoutId and name")
	}
	if exercise.ID == "" {
		exercise.ID = uuid.NewString()
	}
	_, err := r.collection.InsertOne(ctx, exercise)
	return insertErr(err)
}

func (r *mongoExerciseRepository) GetByID(ctx context.Context, id string) (*domain.Exercise, error) {
	var exercise domain.Exercise
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&exercise)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

func (r *mongoExerciseRepository) ListByWorkouts(ctx context.Context, workoutIDs ...string) ([]domain.Exercise, error) {
	exercises := make([]domain.Exercise, 0)
	if len(workoutIDs) == 0 {
		return exercises, nil
	}
	filter := bson.M{"dailyWorkoutId": bson.M{"$in": workoutIDs}}
	findOptions := options.Find().SetSort(bson.D{{Key: "dailyWorkoutId", Value: 1}, {Key: "position", Value: 1}})
	if err := findAll(ctx, r.collection, filter, &exercises, findOptions); err != nil {
		return nil, err
	}
	return exercises, nil
}

func (r *mongoExerciseRepository) MarkCompleted(ctx context.Context, id string) (int64, error) {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"completed": true}})
	if err != nil {
		return 0, err
	}
	return result.MatchedCount, nil
}

func (r *mongoExerciseRepository) DeleteByWorkout(ctx context.Context, workoutID string) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"dailyWorkoutId": workoutID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// EnsureExerciseIndexes creates necessary indexes. Call during startup.
func EnsureExerciseIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "dailyWorkoutId", Value: 1}, {Key: "position", Value: 1}},
		Options: options.Index(),
	})
	return err
}
