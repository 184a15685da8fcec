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

type CatalogRepo struct {
	db *pgxpool.Pool
}

func NewCatalogRepo(db *pgxpool.Pool) *CatalogRepo {
	return &CatalogRepo{
		db: db,
	}
}

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

func (r *CatalogRepo) ListByMuscleGroup(ctx context.Context, muscleGroup string) ([]domain.AvailableExercise, error) {
	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, name, main_muscle_group, primary_equipment, grip_style
			FROM available_exercises
			WHERE main_muscle_group = $1
			ORDER BY name;`,
		muscleGroup,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exercises := make([]domain.AvailableExercise, 0)
	for rows.Next() {
		var e domain.AvailableExercise
		if err := rows.Scan(&e.ID, &e.Name, &e.MainMuscleGroup, &e.PrimaryEquipment, &e.GripStyle); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}

func (r *CatalogRepo) ListMuscleGroups(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT main_muscle_group FROM available_exercises ORDER BY 1;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return pgx.CollectRows(rows, pgx.RowTo[string])
}

// Upsert writes the entries in one transaction, keyed by (main_muscle_group, name).
func (r *CatalogRepo) Upsert(ctx context.Context, exercises []domain.AvailableExercise) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for i := range exercises {
		e := &exercises[i]
		err := tx.QueryRow(
			ctx,
			`
				INSERT INTO available_exercises (id, name, main_muscle_group, primary_equipment, grip_style)
					VALUES ($1, $2, $3, $4, $5)
				ON CONFLICT (main_muscle_group, name)
					DO UPDATE SET primary_equipment = EXCLUDED.primary_equipment, grip_style = EXCLUDED.grip_style
				RETURNING id;`,
			uuid.NewString(), e.Name, e.MainMuscleGroup, e.PrimaryEquipment, e.GripStyle,
		).Scan(&e.ID)
		if err != nil {
			return 0, fmt.Errorf("upsert %q: %w", e.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return len(exercises), nil
}
