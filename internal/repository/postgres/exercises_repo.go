package postgres

import (
	"alcyxob/gymbuddy/internal/domain"
	"alcyxob/gymbuddy/internal/repository"
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ExerciseRepo struct {
	db *pgxpool.Pool
}

func NewExerciseRepo(db *pgxpool.Pool) *ExerciseRepo {
	return &ExerciseRepo{
		db: db,
	}
}

var _ repository.ExerciseRepository = (*ExerciseRepo)(nil)

const exerciseColumns = `id, daily_workout_id, name, body_part, target_sets, target_reps, notes, position, completed`

func (r *ExerciseRepo) Create(ctx context.Context, e *domain.Exercise) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	_, err := r.db.Exec(
		ctx,
		`INSERT INTO exercises (`+exerciseColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`,
		e.ID, e.DailyWorkoutID, e.Name, e.BodyPart, e.TargetSets, e.TargetReps, e.Notes, e.Position, e.Completed,
	)
	return writeErr(err)
}

func (r *ExerciseRepo) GetByID(ctx context.Context, id string) (*domain.Exercise, error) {
	exercises, err := r.list(ctx, `WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(exercises) == 0 {
		return nil, repository.ErrNotFound
	}
	return &exercises[0], nil
}

func (r *ExerciseRepo) ListByWorkouts(ctx context.Context, workoutIDs ...string) ([]domain.Exercise, error) {
	if len(workoutIDs) == 0 {
		return []domain.Exercise{}, nil
	}
	return r.list(ctx, `WHERE daily_workout_id = ANY($1)`, workoutIDs)
}

func (r *ExerciseRepo) list(ctx context.Context, where string, args ...any) ([]domain.Exercise, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT `+exerciseColumns+` FROM exercises `+where+` ORDER BY daily_workout_id, position;`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return rows2exercises(rows)
}

func (r *ExerciseRepo) MarkCompleted(ctx context.Context, id string) (int64, error) {
	tag, err := r.db.Exec(ctx, `UPDATE exercises SET completed = TRUE WHERE id = $1;`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *ExerciseRepo) DeleteByWorkout(ctx context.Context, workoutID string) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM exercises WHERE daily_workout_id = $1;`, workoutID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func rows2exercises(rows pgx.Rows) ([]domain.Exercise, error) {
	exercises := make([]domain.Exercise, 0)
	for rows.Next() {
		var e domain.Exercise
		if err := rows.Scan(
			&e.ID, &e.DailyWorkoutID, &e.Name, &e.BodyPart, &e.TargetSets, &e.TargetReps, &e.Notes, &e.Position, &e.Completed,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}
