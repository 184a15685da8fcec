package service

import (
	"alcyxob/gymbuddy/internal/domain"
	"alcyxob/gymbuddy/internal/repository"
	"context"
	"errors"
	"fmt"
)

// attachDetails loads the exercises and sets of workouts in two queries and
// nests them in place.
func attachDetails(ctx context.Context, store repository.Store, workouts []domain.DailyWorkout) error {
	if len(workouts) == 0 {
		return nil
	}

	workoutIDs := make([]string, len(workouts))
	for i := range workouts {
		workoutIDs[i] = workouts[i].ID
	}
	exercises, err := store.Exercise.ListByWorkouts(ctx, workoutIDs...)
	if err != nil {
		return fmt.Errorf("list exercises: %w", err)
	}

	exerciseIDs := make([]string, len(exercises))
	for i := range exercises {
		exerciseIDs[i] = exercises[i].ID
	}
	sets, err := store.Sets.ListByExercises(ctx, exerciseIDs...)
	if err != nil {
		return fmt.Errorf("list exercise sets: %w", err)
	}

	setsByExercise := make(map[string][]domain.ExerciseSet, len(exercises))
	for _, s := range sets {
		setsByExercise[s.ExerciseID] = append(setsByExercise[s.ExerciseID], s)
	}
	exercisesByWorkout := make(map[string][]domain.Exercise, len(workouts))
	for _, e := range exercises {
		e.Sets = setsByExercise[e.ID]
		if e.Sets == nil {
			e.Sets = []domain.ExerciseSet{}
		}
		exercisesByWorkout[e.DailyWorkoutID] = append(exercisesByWorkout[e.DailyWorkoutID], e)
	}
	for i := range workouts {
		workouts[i].Exercises = exercisesByWorkout[workouts[i].ID]
		if workouts[i].Exercises == nil {
			workouts[i].Exercises = []domain.Exercise{}
		}
	}
	return nil
}

// loadWorkout reads one workout with its exercises and sets. A missing
// workout is reported as ErrWorkoutNotFound.
func loadWorkout(ctx context.Context, store repository.Store, id string) (*domain.DailyWorkout, error) {
	workout, err := store.Workouts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, fmt.Errorf("get workout: %w", err)
	}
	workouts := []domain.DailyWorkout{*workout}
	if err := attachDetails(ctx, store, workouts); err != nil {
		return nil, err
	}
	return &workouts[0], nil
}

// insertExercises persists the exercises of workoutID, in order, each followed
// by its zeroed sets. It does not roll back on failure.
func insertExercises(ctx context.Context, store repository.Store, workoutID string, exercises []domain.Exercise) error {
	for i := range exercises {
		e := &exercises[i]
		e.ID = ""
		e.DailyWorkoutID = workoutID
		e.Position = i
		e.Completed = false
		e.Sets = nil
		if err := store.Exercise.Create(ctx, e); err != nil {
			return fmt.Errorf("create exercise %q: %w", e.Name, err)
		}
		if err := store.Sets.CreateMany(ctx, emptySets(e.ID, e.TargetSets)); err != nil {
			return fmt.Errorf("create sets of %q: %w", e.Name, err)
		}
	}
	return nil
}
