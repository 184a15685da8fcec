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

// mongoWeeklyWorkoutRepository implements repository.WeeklyWorkoutRepository
type mongoWeeklyWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoWeeklyWorkoutRepository creates a new weekly workout repository.
func NewMongoWeeklyWorkoutRepository(db *mongo.Database) repository.WeeklyWorkoutRepository {
	return &mongoWeeklyWorkoutRepository{
		collection: db.Collection(weekCollectionName),
	}
}

func (r *mongoWeeklyWorkoutRepository) Create(ctx context.Context, week *domain.WeeklyWorkout) error {
	if week.OwnerID == "" {
		return errors.New("weekly workout requires ownerId")
	}
	if week.ID == "" {
		week.ID = uuid.NewString()
	}
	if week.Status == "" {
		week.Status = domain.WeeklyInProgress
	}
	week.CreatedAt = time.Now().UTC()

	_, err := r.collection.InsertOne(ctx, week)
	return insertErr(err)
}

func (r *mongoWeeklyWorkoutRepository) findOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*domain.WeeklyWorkout, error) {
	var week domain.WeeklyWorkout
	err := r.collection.FindOne(ctx, filter, opts...).Decode(&week)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &week, nil
}

func (r *mongoWeeklyWorkoutRepository) GetByID(ctx context.Context, id string) (*domain.WeeklyWorkout, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoWeeklyWorkoutRepository) GetForWeek(ctx context.Context, ownerID string, weekStart time.Time) (*domain.WeeklyWorkout, error) {
	return r.findOne(ctx, bson.M{"ownerId": ownerID, "weekStartDate": weekStart})
}

func (r *mongoWeeklyWorkoutRepository) Latest(ctx context.Context, ownerID string) (*domain.WeeklyWorkout, error) {
	return r.findOne(ctx, bson.M{"ownerId": ownerID},
		options.FindOne().SetSort(bson.D{{Key: "weekStartDate", Value: -1}}))
}

func (r *mongoWeeklyWorkoutRepository) UpdateStatus(ctx context.Context, id string, status domain.WeeklyStatus) (int64, error) {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return 0, err
	}
	return result.MatchedCount, nil
}

// EnsureWeeklyWorkoutIndexes creates necessary indexes. Call during startup.
func EnsureWeeklyWorkoutIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		// One weekly workout per owner and week
		Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "weekStartDate", Value: -1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
