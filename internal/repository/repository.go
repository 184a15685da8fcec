package repository

import (
	"alcyxob/gymbuddy/internal/domain"
	"context"
	"time"
)

// Error constants for repository layer
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// GetProfiles returns the public profiles of the given users, keyed by id.
	// Unknown ids are simply absent from the map.
	GetProfiles(ctx context.Context, ids []string) (map[string]domain.PublicProfile, error)
	// Search matches name, username or email (case-insensitive substring), excluding excludeID.
	Search(ctx context.Context, query, excludeID string, limit int) ([]domain.PublicProfile, error)
}

// PartnerRepository defines the interface for interacting with partner links.
type PartnerRepository interface {
	// Create returns ErrDuplicate when a link for (requester, target) already exists.
	Create(ctx context.Context, link *domain.PartnerLink) error
	GetByID(ctx context.Context, id string) (*domain.PartnerLink, error)
	// FindBetween returns links between a and b in either direction.
	FindBetween(ctx context.Context, a, b string) ([]domain.PartnerLink, error)
	ListByRequester(ctx context.Context, requesterID string) ([]domain.PartnerLink, error)
	ListByTarget(ctx context.Context, targetID string) ([]domain.PartnerLink, error)
	// ListAccepted returns accepted links where userID is either side, oldest first.
	ListAccepted(ctx context.Context, userID string) ([]domain.PartnerLink, error)
	// UpdateStatus moves a link from one status to another. A link that is no
	// longer in the from status is left untouched and not counted.
	UpdateStatus(ctx context.Context, id string, from, to domain.PartnerStatus) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// WorkoutFilter narrows ListOwned.
type WorkoutFilter struct {
	Since         *time.Time // date >= Since
	IncludeShared bool       // include workouts flagged is_shared
	FavoritesOnly bool
}

// WorkoutRepository defines the interface for interacting with daily workouts.
// Returned workouts never carry exercises; callers attach them.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.DailyWorkout) error
	GetByID(ctx context.Context, id string) (*domain.DailyWorkout, error)
	// ListOwned returns the owner's workouts, newest first.
	ListOwned(ctx context.Context, ownerID string, filter WorkoutFilter) ([]domain.DailyWorkout, error)
	// ListVisible returns workouts owned by userID, shared with userID, or not
	// assigned to any weekly workout, dated at or after since, newest first.
	ListVisible(ctx context.Context, userID string, since time.Time) ([]domain.DailyWorkout, error)
	ListByWeeklyWorkout(ctx context.Context, weeklyWorkoutIDs ...string) ([]domain.DailyWorkout, error)
	MarkCompleted(ctx context.Context, id, ownerID string, at time.Time) (int64, error)
	SetFavorite(ctx context.Context, id, ownerID string, favorite bool) (int64, error)
	Delete(ctx context.Context, id, ownerID string) (int64, error)
}

// ExerciseRepository defines the interface for interacting with workout exercises.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) error
	GetByID(ctx context.Context, id string) (*domain.Exercise, error)
	// ListByWorkouts returns exercises ordered by position within their workout.
	ListByWorkouts(ctx context.Context, workoutIDs ...string) ([]domain.Exercise, error)
	MarkCompleted(ctx context.Context, id string) (int64, error)
	DeleteByWorkout(ctx context.Context, workoutID string) (int64, error)
}

// ExerciseSetRepository defines the interface for interacting with exercise sets.
type ExerciseSetRepository interface {
	CreateMany(ctx context.Context, sets []domain.ExerciseSet) error
	// Upsert inserts or replaces the set keyed by (ExerciseID, SetNumber).
	Upsert(ctx context.Context, set *domain.ExerciseSet) error
	// ListByExercises returns sets ordered by exercise and set number.
	ListByExercises(ctx context.Context, exerciseIDs ...string) ([]domain.ExerciseSet, error)
	DeleteByExercises(ctx context.Context, exerciseIDs ...string) (int64, error)
}

// WeeklyWorkoutRepository defines the interface for interacting with weekly workouts.
type WeeklyWorkoutRepository interface {
	Create(ctx context.Context, week *domain.WeeklyWorkout) error
	GetByID(ctx context.Context, id string) (*domain.WeeklyWorkout, error)
	GetForWeek(ctx context.Context, ownerID string, weekStart time.Time) (*domain.WeeklyWorkout, error)
	// Latest returns the owner's weekly workout with the most recent week start.
	Latest(ctx context.Context, ownerID string) (*domain.WeeklyWorkout, error)
	UpdateStatus(ctx context.Context, id string, status domain.WeeklyStatus) (int64, error)
}

// CatalogRepository defines the interface for the read-only exercise catalog.
type CatalogRepository interface {
	ListByMuscleGroup(ctx context.Context, muscleGroup string) ([]domain.AvailableExercise, error)
	ListMuscleGroups(ctx context.Context) ([]string, error)
	// Upsert inserts or replaces catalog entries keyed by (name, muscle group).
	Upsert(ctx context.Context, exercises []domain.AvailableExercise) (int, error)
}

// Store bundles every repository a driver provides.
type Store struct {
	Users    UserRepository
	Partners PartnerRepository
	Workouts WorkoutRepository
	Exercise ExerciseRepository
	Sets     ExerciseSetRepository
	Weeks    WeeklyWorkoutRepository
	Catalog  CatalogRepository
}
