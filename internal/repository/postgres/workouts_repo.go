package postgres

import (
	"alcyxob/gymbuddy/internal/domain"
	"alcyxob/gymbuddy/internal/repository"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WorkoutRepo struct {
	db *pgxpool.Pool
}

func NewWorkoutRepo(db *pgxpool.Pool) *WorkoutRepo {
	return &WorkoutRepo{
		db: db,
	}
}

var _ repository.WorkoutRepository = (*WorkoutRepo)(nil)

const workoutColumns = `id, owner_id, title, duration_minutes, difficulty, date, completed, completed_at,
	is_favorite, is_shared, shared_with, weekly_workout_id, created_at`

func (r *WorkoutRepo) Create(ctx context.Context, w *domain.DailyWorkout) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	if w.SharedWith == nil {
		w.SharedWith = []string{}
	}
	w.CreatedAt = time.Now().UTC()

	_, err := r.db.Exec(
		ctx,
		`INSERT INTO daily_workouts (`+workoutColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);`,
		w.ID, w.OwnerID, w.Title, w.DurationMinutes, string(w.Difficulty), w.Date, w.Completed, w.CompletedAt,
		w.IsFavorite, w.IsShared, w.SharedWith, w.WeeklyWorkoutID, w.CreatedAt,
	)
	return writeErr(err)
}

func (r *WorkoutRepo) GetByID(ctx context.Context, id string) (*domain.DailyWorkout, error) {
	workouts, err := r.list(ctx, `WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(workouts) == 0 {
		return nil, repository.ErrNotFound
	}
	return &workouts[0], nil
}

func (r *WorkoutRepo) ListOwned(ctx context.Context, ownerID string, filter repository.WorkoutFilter) ([]domain.DailyWorkout, error) {
	conds := []string{"owner_id = $1"}
	args := []any{ownerID}
	if !filter.IncludeShared {
		conds = append(conds, "NOT is_shared")
	}
	if filter.FavoritesOnly {
		conds = append(conds, "is_favorite")
	}
	if filter.Since != nil {
		args = append(args, *filter.Since)
		conds = append(conds, fmt.Sprintf("date >= $%d", len(args)))
	}
	return r.list(ctx, "WHERE "+strings.Join(conds, " AND "), args...)
}

func (r *WorkoutRepo) ListVisible(ctx context.Context, userID string, since time.Time) ([]domain.DailyWorkout, error) {
	return r.list(ctx,
		`WHERE date >= $2 AND (owner_id = $1 OR $1 = ANY(shared_with) OR weekly_workout_id IS NULL)`,
		userID, since,
	)
}

func (r *WorkoutRepo) ListByWeeklyWorkout(ctx context.Context, weeklyWorkoutIDs ...string) ([]domain.DailyWorkout, error) {
	if len(weeklyWorkoutIDs) == 0 {
		return []domain.DailyWorkout{}, nil
	}
	return r.list(ctx, `WHERE weekly_workout_id = ANY($1)`, weeklyWorkoutIDs)
}

func (r *WorkoutRepo) list(ctx context.Context, where string, args ...any) ([]domain.DailyWorkout, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT `+workoutColumns+` FROM daily_workouts `+where+` ORDER BY date DESC, created_at DESC;`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return rows2workouts(rows)
}

func (r *WorkoutRepo) exec(ctx context.Context, query string, args ...any) (int64, error) {
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *WorkoutRepo) MarkCompleted(ctx context.Context, id, ownerID string, at time.Time) (int64, error) {
	return r.exec(ctx,
		`UPDATE daily_workouts SET completed = TRUE, completed_at = $1 WHERE id = $2 AND owner_id = $3;`,
		at, id, ownerID)
}

func (r *WorkoutRepo) SetFavorite(ctx context.Context, id, ownerID string, favorite bool) (int64, error) {
	return r.exec(ctx,
		`UPDATE daily_workouts SET is_favorite = $1 WHERE id = $2 AND owner_id = $3;`,
		favorite, id, ownerID)
}

func (r *WorkoutRepo) Delete(ctx context.Context, id, ownerID string) (int64, error) {
	return r.exec(ctx, `DELETE FROM daily_workouts WHERE id = $1 AND owner_id = $2;`, id, ownerID)
}

func rows2workouts(rows pgx.Rows) ([]domain.DailyWorkout, error) {
	workouts := make([]domain.DailyWorkout, 0)
	for rows.Next() {
		var (
			w          domain.DailyWorkout
			difficulty string
		)
		if err := rows.Scan(
			&w.ID, &w.OwnerID, &w.Title, &w.DurationMinutes, &difficulty, &w.Date, &w.Completed, &w.CompletedAt,
			&w.IsFavorite, &w.IsShared, &w.SharedWith, &w.WeeklyWorkoutID, &w.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		w.Difficulty = domain.Difficulty(difficulty)
		workouts = append(workouts, w)
	}
	return workouts, rows.Err()
}
