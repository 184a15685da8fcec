package memory

import (
	"alcyxob/gymbuddy/internal/domain"
	"alcyxob/gymbuddy/internal/repository"
	"context"
	"sort"

	"github.com/google/uuid"
)

type exerciseRow struct {
	domain.Exercise
	seq int64
}

type exerciseRepository struct {
	db *db
}

func (r *exerciseRepository) Create(_ context.Context, exercise *domain.Exercise) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if exercise.ID == "" {
		exercise.ID = uuid.NewString()
	}
	row := &exerciseRow{Exercise: *exercise, seq: r.db.nextSeq()}
	row.Sets = nil
	r.db.exercise[exercise.ID] = row
	return nil
}

func (r *exerciseRepository) GetByID(_ context.Context, id string) (*domain.Exercise, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	row, ok := r.db.exercise[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	e := row.Exercise
	return &e, nil
}

// ListByWorkouts returns exercises ordered by position, then insertion.
func (r *exerciseRepository) ListByWorkouts(_ context.Context, workoutIDs ...string) ([]domain.Exercise, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	ids := toSet(workoutIDs)
	rows := make([]*exerciseRow, 0)
	for _, row := range r.db.exercise {
		if _, ok := ids[row.DailyWorkoutID]; ok {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Position != rows[j].Position {
			return rows[i].Position < rows[j].Position
		}
		return rows[i].seq < rows[j].seq
	})

	exercises := make([]domain.Exercise, len(rows))
	for i, row := range rows {
		exercises[i] = row.Exercise
	}
	return exercises, nil
}

func (r *exerciseRepository) MarkCompleted(_ context.Context, id string) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	row, ok := r.db.exercise[id]
	if !ok {
		return 0, nil
	}
	row.Completed = true
	return 1, nil
}

func (r *exerciseRepository) DeleteByWorkout(_ context.Context, workoutID string) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var deleted int64
	for id, row := range r.db.exercise {
		if row.DailyWorkoutID == workoutID {
			delete(r.db.exercise, id)
			deleted++
		}
	}
	return deleted, nil
}
