package mongo

import (
	"alcyxob/gymbuddy/internal/domain"
	"alcyxob/gymbuddy/internal/repository"
	"context"
	"sort"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoCatalogRepository implements repository.CatalogRepository
type mongoCatalogRepository struct {
	collection *mongo.Collection
}

// NewMongoCatalogRepository creates a repository for the available exercise catalog.
func NewMongoCatalogRepository(db *mongo.Database) repository.CatalogRepository {
	return &mongoCatalogRepository{
		collection: db.Collection(catalogCollectionName),
	}
}

func (r *mongoCatalogRepository) ListByMuscleGroup(ctx context.Context, muscleGroup string) ([]domain.AvailableExercise, error) {
	exercises := make([]domain.AvailableExercise, 0)
	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	if err := findAll(ctx, r.collection, bson.M{"mainMuscleGroup": muscleGroup}, &exercises, findOptions); err != nil {
		return nil, err
	}
	return exercises, nil
}

func (r *mongoCatalogRepository) ListMuscleGroups(ctx context.Context) ([]string, error) {
	values, err := r.collection.Distinct(ctx, "mainMuscleGroup", bson.M{})
	if err != nil {
		return nil, err
	}
	groups := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			groups = append(groups, s)
		}
	}
	sort.Strings(groups)
	return groups, nil
}

// Upsert writes every entry keyed by (mainMuscleGroup, name) in one bulk write.
func (r *mongoCatalogRepository) Upsert(ctx context.Context, exercises []domain.AvailableExercise) (int, error) {
	if len(exercises) == 0 {
		return 0, nil
	}
	models := make([]mongo.WriteModel, len(exercises))
	for i, e := range exercises {
		models[i] = mongo.NewUpdateOneModel().
			SetFilter(bson.M{"mainMuscleGroup": e.MainMuscleGroup, "name": e.Name}).
			SetUpdate(bson.M{
				"$set": bson.M{
					"primaryEquipment": e.PrimaryEquipment,
					"gripStyle":        e.GripStyle,
				},
				"$setOnInsert": bson.M{"_id": uuid.NewString()},
			}).
			SetUpsert(true)
	}
	result, err := r.collection.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return 0, err
	}
	return int(result.MatchedCount + result.UpsertedCount), nil
}

// EnsureCatalogIndexes creates necessary indexes. Call during startup.
func EnsureCatalogIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "mainMuscleGroup", Value: 1}, {Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
