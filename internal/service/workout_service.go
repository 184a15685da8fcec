package service

import (
	"alcyxob/gymbuddy/internal/domain"
	"alcyxob/gymbuddy/internal/metrics"
	"alcyxob/gymbuddy/internal/repository"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// --- Error Definitions ---
var (
	ErrInvalidDuration   = kindError(ErrInvalidArgument, "duration must be a positive number of minutes")
	ErrInvalidDifficulty = kindError(ErrInvalidArgument, "difficulty must be one of easy, medium, hard")
	ErrNoBodyParts       = kindError(ErrInvalidArgument, "at least one body part is required")
)

// SharingOptions controls who besides the owner can read a generated workout.
type SharingOptions struct {
	IsShared   bool     `json:"isShared"`
	SharedWith []string `json:"sharedWith"`
}

// GenerateRequest holds the generator form input.
type GenerateRequest struct {
	DurationMinutes int               `json:"durationMinutes"`
	Difficulty      domain.Difficulty `json:"difficulty"`
	BodyParts       []string          `json:"bodyParts"`
	Sharing         *SharingOptions   `json:"sharing,omitempty"`
}

// --- Service Interface ---
type WorkoutService interface {
	// Generate builds a random workout from the exercise catalog.
	Generate(ctx context.Context, callerID string, req GenerateRequest) (*domain.DailyWorkout, error)
	// AddToWeek copies a workout into the caller's current week with fresh sets.
	AddToWeek(ctx context.Context, callerID, workoutID string) (*domain.DailyWorkout, error)
	GetWorkout(ctx context.Context, callerID, workoutID string) (*domain.DailyWorkout, error)
	ListFavorites(ctx context.Context, callerID string) ([]domain.DailyWorkout, error)
	ListBodyParts(ctx context.Context) ([]string, error)
}

// --- Service Implementation ---

type workoutService struct {
	store    repository.Store
	rnd      RandomSource
	calendar Calendar
	metrics  *metrics.Manager
	now      func() time.Time
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(store repository.Store, rnd RandomSource, calendar Calendar, metricsManager *metrics.Manager) WorkoutService {
	return &workoutService{
		store:    store,
		rnd:      rnd,
		calendar: calendar,
		metrics:  metricsManager,
		now:      time.Now,
	}
}

// Generate picks up to two catalog exercises per distinct body part and
// stores them as a new workout of the caller.
func (s *workoutService) Generate(ctx context.Context, callerID string, req GenerateRequest) (*domain.DailyWorkout, error) {
	// 1. Validate
	if callerID == "" {
		return nil, ErrNoCaller
	}
	if req.DurationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	if !req.Difficulty.Valid() {
		return nil, ErrInvalidDifficulty
	}
	bodyParts := dedupBodyParts(req.BodyParts)
	if len(bodyParts) == 0 {
		return nil, ErrNoBodyParts
	}

	// 2. Select exercises per body part
	var planned []domain.Exercise
	for _, part := range bodyParts {
		candidates, err := s.store.Catalog.ListByMuscleGroup(ctx, part)
		if err != nil {
			return nil, fmt.Errorf("list catalog exercises for %s: %w", part, err)
		}
		if len(candidates) == 0 {
			return nil, fmt.Errorf("no exercises found for %s: %w", part, ErrNotFound)
		}
		for _, picked := range pickExercises(s.rnd, candidates, exercisesPerBodyPart) {
			planned = append(planned, planExercise(s.rnd, picked, part))
		}
	}

	// 3. Build the workout row
	now := s.now()
	workout := &domain.DailyWorkout{
		ID:              uuid.NewString(),
		OwnerID:         callerID,
		Title:           workoutTitle(bodyParts, now),
		DurationMinutes: req.DurationMinutes,
		Difficulty:      req.Difficulty,
		Date:            now.UTC(),
		SharedWith:      []string{},
	}
	if req.Sharing != nil {
		workout.IsShared = req.Sharing.IsShared
		if req.Sharing.SharedWith != nil {
			workout.SharedWith = append([]string{}, req.Sharing.SharedWith...)
		}
	}

	// 4. Persist children first, the workout row last: readers never see a
	// workout whose exercises are still being written.
	if err := insertExercises(ctx, s.store, workout.ID, planned); err != nil {
		return nil, err
	}
	if err := s.store.Workouts.Create(ctx, workout); err != nil {
		return nil, fmt.Errorf("create workout: %w", err)
	}
	s.metrics.CounterWorkoutsGenerated.Inc()
	log.WithFields(log.Fields{"user": callerID, "workout": workout.ID}).Debugf("generated workout %q", workout.Title)

	// 5. Read back the full workout
	return loadWorkout(ctx, s.store, workout.ID)
}

// AddToWeek clones a visible workout for the caller, dated now, and attaches
// it to the caller's weekly workout for the current week.
func (s *workoutService) AddToWeek(ctx context.Context, callerID, workoutID string) (*domain.DailyWorkout, error) {
	if callerID == "" {
		return nil, ErrNoCaller
	}

	source, err := loadWorkout(ctx, s.store, workoutID)
	if err != nil {
		return nil, err
	}
	if !source.IsVisibleTo(callerID) {
		return nil, ErrWorkoutNotFound
	}

	now := s.now()
	week, err := s.currentWeek(ctx, callerID, now)
	if err != nil {
		return nil, err
	}

	clone := &domain.DailyWorkout{
		ID:              uuid.NewString(),
		OwnerID:         callerID,
		Title:           source.Title,
		DurationMinutes: source.DurationMinutes,
		Difficulty:      source.Difficulty,
		Date:            now.UTC(),
		SharedWith:      []string{},
		WeeklyWorkoutID: &week.ID,
	}
	exercises := make([]domain.Exercise, len(source.Exercises))
	for i, e := range source.Exercises {
		exercises[i] = domain.Exercise{
			Name:       e.Name,
			BodyPart:   e.BodyPart,
			TargetSets: e.TargetSets,
			TargetReps: e.TargetReps,
			Notes:      e.Notes,
		}
	}

	if err := insertExercises(ctx, s.store, clone.ID, exercises); err != nil {
		return nil, err
	}
	if err := s.store.Workouts.Create(ctx, clone); err != nil {
		return nil, fmt.Errorf("create workout: %w", err)
	}

	return loadWorkout(ctx, s.store, clone.ID)
}

// currentWeek returns the caller's weekly workout for the week containing now,
// creating it if needed. A completed week is reopened since it is about to
// get an uncompleted day.
func (s *workoutService) currentWeek(ctx context.Context, ownerID string, now time.Time) (*domain.WeeklyWorkout, error) {
	weekStart := s.calendar.StartOfWeek(now).UTC()

	week, err := s.store.Weeks.GetForWeek(ctx, ownerID, weekStart)
	if errors.Is(err, repository.ErrNotFound) {
		week = &domain.WeeklyWorkout{OwnerID: ownerID, WeekStartDate: weekStart, Status: domain.WeeklyInProgress}
		err = s.store.Weeks.Create(ctx, week)
		if errors.Is(err, repository.ErrDuplicate) {
			// Lost a race with a concurrent request, use the winner's row.
			week, err = s.store.Weeks.GetForWeek(ctx, ownerID, weekStart)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("get weekly workout: %w", err)
	}

	if week.Status == domain.WeeklyCompleted {
		if _, err := s.store.Weeks.UpdateStatus(ctx, week.ID, domain.WeeklyInProgress); err != nil {
			return nil, fmt.Errorf("reopen weekly workout: %w", err)
		}
		week.Status = domain.WeeklyInProgress
	}
	return week, nil
}

func (s *workoutService) GetWorkout(ctx context.Context, callerID, workoutID string) (*domain.DailyWorkout, error) {
	if callerID == "" {
		return nil, ErrNoCaller
	}
	workout, err := loadWorkout(ctx, s.store, workoutID)
	if err != nil {
		return nil, err
	}
	if !workout.IsVisibleTo(callerID) {
		return nil, ErrWorkoutNotFound
	}
	return workout, nil
}

// ListFavorites returns the caller's favorite workouts, newest first.
func (s *workoutService) ListFavorites(ctx context.Context, callerID string) ([]domain.DailyWorkout, error) {
	if callerID == "" {
		return nil, ErrNoCaller
	}
	workouts, err := s.store.Workouts.ListOwned(ctx, callerID, repository.WorkoutFilter{
		IncludeShared: true,
		FavoritesOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	if err := attachDetails(ctx, s.store, workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

// ListBodyParts returns the muscle groups the generator can draw from.
func (s *workoutService) ListBodyParts(ctx context.Context) ([]string, error) {
	groups, err := s.store.Catalog.ListMuscleGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("list muscle groups: %w", err)
	}
	return groups, nil
}
