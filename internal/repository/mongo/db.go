package mongo

import (
	"alcyxob/gymbuddy/internal/repository"
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Default connection timeout
const defaultTimeout = 10 * time.Second

// Collection names, one per table.
const (
	userCollectionName     = "users"
	partnerCollectionName  = "partners"
	workoutCollectionName  = "daily_workouts"
	exerciseCollectionName = "exercises"
	setCollectionName      = "exercise_sets"
	weekCollectionName     = "weekly_workouts"
	catalogCollectionName  = "available_exercises"
)

// ConnectDB establishes a connection to MongoDB using the provided URI and
// verifies it with a ping against the primary.
func ConnectDB(ctx context.Context, uri string) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	// The initial connect can succeed against an unresponsive server, so ping too.
	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
		return nil, fmt.Errorf("ping: %w", err)
	}

	return client, nil
}

// DisconnectDB gracefully disconnects the MongoDB client.
func DisconnectDB(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}

// NewStore returns a repository.Store whose repositories share db.
func NewStore(db *mongo.Database) repository.Store {
	return repository.Store{
		Users:    NewMongoUserRepository(db),
		Partners: NewMongoPartnerRepository(db),
		Workouts: NewMongoWorkoutRepository(db),
		Exercise: NewMongoExerciseRepository(db),
		Sets:     NewMongoExerciseSetRepository(db),
		Weeks:    NewMongoWeeklyWorkoutRepository(db),
		Catalog:  NewMongoCatalogRepository(db),
	}
}

// EnsureIndexes creates the indexes of every collection. Call this once during
// application startup. The unique indexes back the ErrDuplicate guarantees of
// the repositories, so a failure here is returned rather than ignored.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ensure := []struct {
		collection string
		fn         func(context.Context, *mongo.Collection) error
	}{
		{userCollectionName, EnsureUserIndexes},
		{partnerCollectionName, EnsurePartnerIndexes},
		{workoutCollectionName, EnsureWorkoutIndexes},
		{exerciseCollectionName, EnsureExerciseIndexes},
		{setCollectionName, EnsureExerciseSetIndexes},
		{weekCollectionName, EnsureWeeklyWorkoutIndexes},
		{catalogCollectionName, EnsureCatalogIndexes},
	}
	for _, e := range ensure {
		if err := e.fn(ctx, db.Collection(e.collection)); err != nil {
			return fmt.Errorf("create indexes for %s: %w", e.collection, err)
		}
	}
	return nil
}

// insertErr maps a duplicate key error onto repository.ErrDuplicate.
func insertErr(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrDuplicate
	}
	return err
}

// findAll runs filter against collection and decodes every document into out.
func findAll(ctx context.Context, collection *mongo.Collection, filter bson.M, out interface{}, opts ...*options.FindOptions) error {
	cursor, err := collection.Find(ctx, filter, opts...)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, out); err != nil {
		return err
	}
	return cursor.Err()
}
