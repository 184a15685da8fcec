package memory

import (
	"alcyxob/gymbuddy/internal/domain"
	"alcyxob/gymbuddy/internal/repository"
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
)

type workoutRow struct {
	domain.DailyWorkout
	seq int64
}

func (row *workoutRow) copy() domain.DailyWorkout {
	w := row.DailyWorkout
	w.SharedWith = append([]string{}, row.SharedWith...)
	if row.WeeklyWorkoutID != nil {
		id := *row.WeeklyWorkoutID
		w.WeeklyWorkoutID = &id
	}
	if row.CompletedAt != nil {
		at := *row.CompletedAt
		w.CompletedAt = &at
	}
	w.Exercises = nil
	return w
}

type workoutRepository struct {
	db *db
}

func (r *workoutRepository) Create(_ context.Context, workout *domain.DailyWorkout) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if workout.ID == "" {
		workout.ID = uuid.NewString()
	}
	if _, exists := r.db.workouts[workout.ID]; exists {
		return repository.ErrDuplicate
	}
	if workout.SharedWith == nil {
		workout.SharedWith = []string{}
	}
	workout.CreatedAt = time.Now().UTC()

	row := &workoutRow{DailyWorkout: *workout, seq: r.db.nextSeq()}
	row.DailyWorkout = row.copy()
	r.db.workouts[workout.ID] = row
	return nil
}

func (r *workoutRepository) GetByID(_ context.Context, id string) (*domain.DailyWorkout, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	row, ok := r.db.workouts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	w := row.copy()
	return &w, nil
}

// list returns matching workouts, newest first.
func (r *workoutRepository) list(match func(*domain.DailyWorkout) bool) []domain.DailyWorkout {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	rows := make([]*workoutRow, 0)
	for _, row := range r.db.workouts {
		if match(&row.DailyWorkout) {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Date.Equal(rows[j].Date) {
			return rows[i].Date.After(rows[j].Date)
		}
		return rows[i].seq > rows[j].seq
	})

	workouts := make([]domain.DailyWorkout, len(rows))
	for i, row := range rows {
		workouts[i] = row.copy()
	}
	return workouts
}

func (r *workoutRepository) ListOwned(_ context.Context, ownerID string, filter repository.WorkoutFilter) ([]domain.DailyWorkout, error) {
	return r.list(func(w *domain.DailyWorkout) bool {
		if w.OwnerID != ownerID {
			return false
		}
		if !filter.IncludeShared && w.IsShared {
			return false
		}
		if filter.FavoritesOnly && !w.IsFavorite {
			return false
		}
		if filter.Since != nil && w.Date.Before(*filter.Since) {
			return false
		}
		return true
	}), nil
}

func (r *workoutRepository) ListVisible(_ context.Context, userID string, since time.Time) ([]domain.DailyWorkout, error) {
	return r.list(func(w *domain.DailyWorkout) bool {
		if w.Date.Before(since) {
			return false
		}
		return w.OwnerID == userID || containsString(w.SharedWith, userID) || w.WeeklyWorkoutID == nil
	}), nil
}

func (r *workoutRepository) ListByWeeklyWorkout(_ context.Context, weeklyWorkoutIDs ...string) ([]domain.DailyWorkout, error) {
	ids := toSet(weeklyWorkoutIDs)
	return r.list(func(w *domain.DailyWorkout) bool {
		if w.WeeklyWorkoutID == nil {
			return false
		}
		_, ok := ids[*w.WeeklyWorkoutID]
		return ok
	}), nil
}

// update applies fn to the workout with id when owned by ownerID.
func (r *workoutRepository) update(id, ownerID string, fn func(*domain.DailyWorkout)) int64 {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	row, ok := r.db.workouts[id]
	if !ok || row.OwnerID != ownerID {
		return 0
	}
	fn(&row.DailyWorkout)
	return 1
}

func (r *workoutRepository) MarkCompleted(_ context.Context, id, ownerID string, at time.Time) (int64, error) {
	return r.update(id, ownerID, func(w *domain.DailyWorkout) {
		w.Completed = true
		w.CompletedAt = &at
	}), nil
}

func (r *workoutRepository) SetFavorite(_ context.Context, id, ownerID string, favorite bool) (int64, error) {
	return r.update(id, ownerID, func(w *domain.DailyWorkout) {
		w.IsFavorite = favorite
	}), nil
}

func (r *workoutRepository) Delete(_ context.Context, id, ownerID string) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	row, ok := r.db.workouts[id]
	if !ok || row.OwnerID != ownerID {
		return 0, nil
	}
	delete(r.db.workouts, id)
	return 1, nil
}
