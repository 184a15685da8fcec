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

type ExerciseSetRepo struct {
	db *pgxpool.Pool
}

func NewExerciseSetRepo(db *pgxpool.Pool) *ExerciseSetRepo {
	return &ExerciseSetRepo{
		db: db,
	}
}

var _ repository.ExerciseSetRepository = (*ExerciseSetRepo)(nil)

// CreateMany inserts all sets in a single batch.
func (r *ExerciseSetRepo) CreateMany(ctx context.Context, sets []domain.ExerciseSet) error {
	if len(sets) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for i := range sets {
		if sets[i].ID == "" {
			sets[i].ID = uuid.NewString()
		}
		s := sets[i]
		batch.Queue(
			`INSERT INTO exercise_sets (id, exercise_id, set_number, weight, reps, completed) VALUES ($1, $2, $3, $4, $5, $6);`,
			s.ID, s.ExerciseID, s.SetNumber, s.Weight, s.Reps, s.Completed,
		)
	}
	return writeErr(r.db.SendBatch(ctx, batch).Close())
}

func (r *ExerciseSetRepo) Upsert(ctx context.Context, set *domain.ExerciseSet) error {
	err := r.db.QueryRow(
		ctx,
		`
			INSERT INTO exercise_sets (id, exercise_id, set_number, weight, reps, completed)
				VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (exercise_id, set_number)
				DO UPDATE SET weight = EXCLUDED.weight, reps = EXCLUDED.reps, completed = EXCLUDED.completed
			RETURNING id;`,
		uuid.NewString(), set.ExerciseID, set.SetNumber, set.Weight, set.Reps, set.Completed,
	).Scan(&set.ID)
	return writeErr(err)
}

func (r *ExerciseSetRepo) ListByExercises(ctx context.Context, exerciseIDs ...string) ([]domain.ExerciseSet, error) {
	if len(exerciseIDs) == 0 {
		return []domain.ExerciseSet{}, nil
	}
	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, exercise_id, set_number, weight, reps, completed
			FROM exercise_sets
			WHERE exercise_id = ANY($1)
			ORDER BY exercise_id, set_number;`,
		exerciseIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sets := make([]domain.ExerciseSet, 0)
	for rows.Next() {
		var s domain.ExerciseSet
		if err := rows.Scan(&s.ID, &s.ExerciseID, &s.SetNumber, &s.Weight, &s.Reps, &s.Completed); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		sets = append(sets, s)
	}
	return sets, rows.Err()
}

func (r *ExerciseSetRepo) DeleteByExercises(ctx context.Context, exerciseIDs ...string) (int64, error) {
	if len(exerciseIDs) == 0 {
		return 0, nil
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM exercise_sets WHERE exercise_id = ANY($1);`, exerciseIDs)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
