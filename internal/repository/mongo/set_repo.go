package mongo

import (
	"alcyxob/gymbuddy/internal/domain"
	"alcyxob/gymbuddy/internal/repository"
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoExerciseSetRepository implements repository.ExerciseSetRepository
type mongoExerciseSetRepository struct {
	collection *mongo.Collection
}

// NewMongoExerciseSetRepository creates a repository for exercise sets.
func NewMongoExerciseSetRepository(db *mongo.Database) repository.ExerciseSetRepository {
	return &mongoExerciseSetRepository{
		collection: db.Collection(setCollectionName),
	}
}

// CreateMany inserts the sets in one round trip.
func (r *mongoExerciseSetRepository) CreateMany(ctx context.Context, sets []domain.ExerciseSet) error {
	if len(sets) == 0 {
		return nil
	}
	docs := make([]interface{}, len(sets))
	for i := range sets {
		if sets[i].ID == "" {
			sets[i].ID = uuid.NewString()
		}
		docs[i] = sets[i]
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return insertErr(err)
}

// Upsert writes the set keyed by (exerciseId, setNumber). The _id of an
// existing set is preserved; a new set gets a fresh one.
func (r *mongoExerciseSetRepository) Upsert(ctx context.Context, set *domain.ExerciseSet) error {
	filter := bson.M{"exerciseId": set.ExerciseID, "setNumber": set.SetNumber}
	update := bson.M{
		"$set": bson.M{
			"weight":    set.Weight,
			"reps":      set.Reps,
			"completed": set.Completed,
		},
		"$setOnInsert": bson.M{"_id": uuid.NewString()},
	}

	var stored domain.ExerciseSet
	err := r.collection.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&stored)
	if err != nil {
		return insertErr(err)
	}
	set.ID = stored.ID
	return nil
}

func (r *mongoExerciseSetRepository) ListByExercises(ctx context.Context, exerciseIDs ...string) ([]domain.ExerciseSet, error) {
	sets := make([]domain.ExerciseSet, 0)
	if len(exerciseIDs) == 0 {
		return sets, nil
	}
	filter := bson.M{"exerciseId": bson.M{"$in": exerciseIDs}}
	findOptions := options.Find().SetSort(bson.D{{Key: "exerciseId", Value: 1}, {Key: "setNumber", Value: 1}})
	if err := findAll(ctx, r.collection, filter, &sets, findOptions); err != nil {
		return nil, err
	}
	return sets, nil
}

func (r *mongoExerciseSetRepository) DeleteByExercises(ctx context.Context, exerciseIDs ...string) (int64, error) {
	if len(exerciseIDs) == 0 {
		return 0, nil
	}
	result, err := r.collection.DeleteMany(ctx, bson.M{"exerciseId": bson.M{"$in": exerciseIDs}})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// EnsureExerciseSetIndexes creates the unique (exerciseId, setNumber) index
// that Upsert relies on.
func EnsureExerciseSetIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "exerciseId", Value: 1}, {Key: "setNumber", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
