package postgres

import (
	"alcyxob/gymbuddy/internal/domain"
	"alcyxob/gymbuddy/internal/repository"
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WeeklyWorkoutRepo struct {
	db *pgxpool.Pool
}

func NewWeeklyWorkoutRepo(db *pgxpool.Pool) *WeeklyWorkoutRepo {
	return &WeeklyWorkoutRepo{
		db: db,
	}
}

var _ repository.WeeklyWorkoutRepository = (*WeeklyWorkoutRepo)(nil)

const weekColumns = `id, owner_id, week_start_date, status, created_at`

func (r *WeeklyWorkoutRepo) Create(ctx context.Context, week *domain.WeeklyWorkout) error {
	if week.ID == "" {
		week.ID = uuid.NewString()
	}
	if week.Status == "" {
		week.Status = domain.WeeklyInProgress
	}
	week.CreatedAt = time.Now().UTC()

	_, err := r.db.Exec(
		ctx,
		`INSERT INTO weekly_workouts (`+weekColumns+`) VALUES ($1, $2, $3, $4, $5);`,
		week.ID, week.OwnerID, week.WeekStartDate, string(week.Status), week.CreatedAt,
	)
	return writeErr(err)
}

func (r *WeeklyWorkoutRepo) GetByID(ctx context.Context, id string) (*domain.WeeklyWorkout, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *WeeklyWorkoutRepo) GetForWeek(ctx context.Context, ownerID string, weekStart time.Time) (*domain.WeeklyWorkout, error) {
	return r.getOne(ctx, `WHERE owner_id = $1 AND week_start_date = $2`, ownerID, weekStart)
}

func (r *WeeklyWorkoutRepo) Latest(ctx context.Context, ownerID string) (*domain.WeeklyWorkout, error) {
	return r.getOne(ctx, `WHERE owner_id = $1 ORDER BY week_start_date DESC LIMIT 1`, ownerID)
}

func (r *WeeklyWorkoutRepo) getOne(ctx context.Context, rest string, args ...any) (*domain.WeeklyWorkout, error) {
	var (
		w      domain.WeeklyWorkout
		status string
	)
	err := r.db.QueryRow(ctx, `SELECT `+weekColumns+` FROM weekly_workouts `+rest+`;`, args...).
		Scan(&w.ID, &w.OwnerID, &w.WeekStartDate, &status, &w.CreatedAt)
	if err != nil {
		return nil, rowErr(err)
	}
	w.Status = domain.WeeklyStatus(status)
	return &w, nil
}

func (r *WeeklyWorkoutRepo) UpdateStatus(ctx context.Context, id string, status domain.WeeklyStatus) (int64, error) {
	tag, err := r.db.Exec(ctx, `UPDATE weekly_workouts SET status = $1 WHERE id = $2;`, string(status), id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
