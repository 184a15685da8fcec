package service

import (
	"alcyxob/gymbuddy/internal/domain"
	"alcyxob/gymbuddy/internal/metrics"
	"alcyxob/gymbuddy/internal/repository"
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound = kindError(ErrNotFound, "exercise not found")
	ErrInvalidSetNumber = kindError(ErrInvalidArgument, "set number must be at least 1")
	ErrNegativeSetValue = kindError(ErrInvalidArgument, "weight and reps must not be negative")
)

// SetUpdate holds the editable fields of an exercise set.
type SetUpdate struct {
	Weight    float64 `json:"weight"`
	Reps      int     `json:"reps"`
	Completed bool    `json:"completed"`
}

// --- Service Interface ---
type ProgressService interface {
	// ComputeStats summarizes the caller's current week and, with an accepted
	// partner, the partner's most recent weekly workout.
	ComputeStats(ctx context.Context, callerID string) (*domain.WorkoutStats, error)
	GetCurrentWeekWorkouts(ctx context.Context, callerID string) ([]domain.DailyWorkout, error)
	// UpdateExerciseSet writes one set and reports whether every set of the
	// exercise is now completed.
	UpdateExerciseSet(ctx context.Context, callerID, exerciseID string, setNumber int, update SetUpdate) (bool, error)
	// CompleteWorkout marks a workout completed and reports whether that
	// completed its weekly workout.
	CompleteWorkout(ctx context.Context, callerID, workoutID string) (bool, error)
	ToggleFavorite(ctx context.Context, callerID, workoutID string, favorite bool) error
	DeleteWorkout(ctx context.Context, callerID, workoutID string) error
}

// --- Service Implementation ---

type progressService struct {
	store    repository.Store
	calendar Calendar
	metrics  *metrics.Manager
	now      func() time.Time
}

// NewProgressService creates a new instance of progressService.
func NewProgressService(store repository.Store, calendar Calendar, metricsManager *metrics.Manager) ProgressService {
	return &progressService{
		store:    store,
		calendar: calendar,
		metrics:  metricsManager,
		now:      time.Now,
	}
}

// === Stats ===

func (s *progressService) ComputeStats(ctx context.Context, callerID string) (*domain.WorkoutStats, error) {
	if callerID == "" {
		return nil, ErrNoCaller
	}

	// 1. Caller: own, non-shared workouts of the current week
	weekStart := s.calendar.StartOfWeek(s.now()).UTC()
	own, err := s.store.Workouts.ListOwned(ctx, callerID, repository.WorkoutFilter{Since: &weekStart})
	if err != nil {
		return nil, fmt.Errorf("list own workouts: %w", err)
	}
	summary, err := s.summarize(ctx, own)
	if err != nil {
		return nil, err
	}
	stats := &domain.WorkoutStats{
		WeeklyWorkouts:     summary.WeeklyWorkouts,
		CompletedWorkouts:  summary.CompletedWorkouts,
		CompletionRate:     summary.CompletionRate,
		ExerciseCompletion: summary.ExerciseCompletion,
	}

	// 2. Partner: first accepted link wins
	links, err := s.store.Partners.ListAccepted(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("list accepted partners: %w", err)
	}
	if len(links) == 0 {
		return stats, nil
	}
	if len(links) > 1 {
		log.Warnf("user %s has %d accepted partners, using the first", callerID, len(links))
	}
	stats.Partner, err = s.partnerStats(ctx, links[0].Counterpart(callerID))
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *progressService) partnerStats(ctx context.Context, partnerID string) (*domain.PartnerStats, error) {
	profiles, err := s.store.Users.GetProfiles(ctx, []string{partnerID})
	if err != nil {
		return nil, fmt.Errorf("get partner profile: %w", err)
	}
	partner := &domain.PartnerStats{UserID: partnerID, Name: profiles[partnerID].Name}

	week, err := s.store.Weeks.Latest(ctx, partnerID)
	if errors.Is(err, repository.ErrNotFound) {
		return partner, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get partner weekly workout: %w", err)
	}

	workouts, err := s.store.Workouts.ListByWeeklyWorkout(ctx, week.ID)
	if err != nil {
		return nil, fmt.Errorf("list partner workouts: %w", err)
	}
	summary, err := s.summarize(ctx, workouts)
	if err != nil {
		return nil, err
	}
	partner.WeeklyWorkouts = summary.WeeklyWorkouts
	partner.CompletedWorkouts = summary.CompletedWorkouts
	partner.CompletionRate = summary.CompletionRate
	partner.ExerciseCompletion = summary.ExerciseCompletion
	return partner, nil
}

// summarize counts workouts and the sets of their exercises.
func (s *progressService) summarize(ctx context.Context, workouts []domain.DailyWorkout) (domain.WorkoutStats, error) {
	var summary domain.WorkoutStats
	if err := attachDetails(ctx, s.store, workouts); err != nil {
		return summary, err
	}

	for _, w := range workouts {
		summary.WeeklyWorkouts++
		if w.Completed {
			summary.CompletedWorkouts++
		}
		for _, e := range w.Exercises {
			for _, set := range e.Sets {
				summary.ExerciseCompletion.Total++
				if set.Completed {
					summary.ExerciseCompletion.Completed++
				}
			}
		}
	}
	summary.CompletionRate = percent(summary.CompletedWorkouts, summary.WeeklyWorkouts)
	summary.ExerciseCompletion.Rate = percent(summary.ExerciseCompletion.Completed, summary.ExerciseCompletion.Total)
	return summary, nil
}

// GetCurrentWeekWorkouts returns the workouts visible to the caller dated in
// the current week, newest first.
func (s *progressService) GetCurrentWeekWorkouts(ctx context.Context, callerID string) ([]domain.DailyWorkout, error) {
	if callerID == "" {
		return nil, ErrNoCaller
	}
	weekStart := s.calendar.StartOfWeek(s.now()).UTC()
	workouts, err := s.store.Workouts.ListVisible(ctx, callerID, weekStart)
	if err != nil {
		return nil, fmt.Errorf("list visible workouts: %w", err)
	}
	if err := attachDetails(ctx, s.store, workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

// === Completion ===

func (s *progressService) UpdateExerciseSet(ctx context.Context, callerID, exerciseID string, setNumber int, update SetUpdate) (bool, error) {
	// 1. Validate
	if callerID == "" {
		return false, ErrNoCaller
	}
	if setNumber < 1 {
		return false, ErrInvalidSetNumber
	}
	if update.Weight < 0 || update.Reps < 0 {
		return false, ErrNegativeSetValue
	}

	// 2. The caller must own the workout the exercise belongs to
	exercise, err := s.store.Exercise.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, ErrExerciseNotFound
		}
		return false, fmt.Errorf("get exercise: %w", err)
	}
	workout, err := s.store.Workouts.GetByID(ctx, exercise.DailyWorkoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, ErrExerciseNotFound
		}
		return false, fmt.Errorf("get workout: %w", err)
	}
	if workout.OwnerID != callerID {
		return false, ErrExerciseNotFound
	}

	// 3. Upsert the set
	set := &domain.ExerciseSet{
		ExerciseID: exerciseID,
		SetNumber:  setNumber,
		Weight:     update.Weight,
		Reps:       update.Reps,
		Completed:  update.Completed,
	}
	if err := s.store.Sets.Upsert(ctx, set); err != nil {
		return false, fmt.Errorf("upsert exercise set: %w", err)
	}
	s.metrics.CounterSetsUpdated.Inc()

	// 4. Roll up: all sets completed -> exercise completed. Never reverted.
	sets, err := s.store.Sets.ListByExercises(ctx, exerciseID)
	if err != nil {
		return false, fmt.Errorf("list exercise sets: %w", err)
	}
	for _, st := range sets {
		if !st.Completed {
			return false, nil
		}
	}
	if !exercise.Completed {
		if _, err := s.store.Exercise.MarkCompleted(ctx, exerciseID); err != nil {
			return false, fmt.Errorf("complete exercise: %w", err)
		}
	}
	return true, nil
}

func (s *progressService) CompleteWorkout(ctx context.Context, callerID, workoutID string) (bool, error) {
	if callerID == "" {
		return false, ErrNoCaller
	}

	n, err := s.store.Workouts.MarkCompleted(ctx, workoutID, callerID, s.now().UTC())
	if err != nil {
		return false, fmt.Errorf("complete workout: %w", err)
	}
	if n == 0 {
		return false, ErrWorkoutNotFound
	}
	s.metrics.CounterWorkoutsCompleted.Inc()

	workout, err := s.store.Workouts.GetByID(ctx, workoutID)
	if err != nil {
		return false, fmt.Errorf("get workout: %w", err)
	}
	if workout.WeeklyWorkoutID == nil {
		return false, nil
	}

	siblings, err := s.store.Workouts.ListByWeeklyWorkout(ctx, *workout.WeeklyWorkoutID)
	if err != nil {
		return false, fmt.Errorf("list weekly workouts: %w", err)
	}
	for _, w := range siblings {
		if !w.Completed {
			return false, nil
		}
	}
	if _, err := s.store.Weeks.UpdateStatus(ctx, *workout.WeeklyWorkoutID, domain.WeeklyCompleted); err != nil {
		return false, fmt.Errorf("complete weekly workout: %w", err)
	}
	return true, nil
}

// ToggleFavorite is a no-op for workouts the caller does not own.
func (s *progressService) ToggleFavorite(ctx context.Context, callerID, workoutID string, favorite bool) error {
	if callerID == "" {
		return ErrNoCaller
	}
	if _, err := s.store.Workouts.SetFavorite(ctx, workoutID, callerID, favorite); err != nil {
		return fmt.Errorf("set favorite: %w", err)
	}
	return nil
}

// DeleteWorkout removes sets, exercises and the workout, in that order. It is
// a no-op for workouts the caller does not own.
func (s *progressService) DeleteWorkout(ctx context.Context, callerID, workoutID string) error {
	if callerID == "" {
		return ErrNoCaller
	}

	workout, err := s.store.Workouts.GetByID(ctx, workoutID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("get workout: %w", err)
	}
	if workout.OwnerID != callerID {
		return nil
	}

	exercises, err := s.store.Exercise.ListByWorkouts(ctx, workoutID)
	if err != nil {
		return fmt.Errorf("list exercises: %w", err)
	}
	exerciseIDs := make([]string, len(exercises))
	for i := range exercises {
		exerciseIDs[i] = exercises[i].ID
	}
	if _, err := s.store.Sets.DeleteByExercises(ctx, exerciseIDs...); err != nil {
		return fmt.Errorf("delete exercise sets: %w", err)
	}
	if _, err := s.store.Exercise.DeleteByWorkout(ctx, workoutID); err != nil {
		return fmt.Errorf("delete exercises: %w", err)
	}
	if _, err := s.store.Workouts.Delete(ctx, workoutID, callerID); err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}
	return nil
}
