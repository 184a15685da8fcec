package postgres

import (
	"alcyxob/gymbuddy/internal/domain"
	"alcyxob/gymbuddy/internal/repository"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepo struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) *UserRepo {
	return &UserRepo{
		db: db,
	}
}

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, name, username, email, password_hash, created_at, updated_at`

func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.db.Exec(
		ctx,
		`INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7);`,
		user.ID, user.Name, user.Username, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	)
	return writeErr(err)
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1;`, id)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1);`, email)
}

func (r *UserRepo) getOne(ctx context.Context, query string, args ...any) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&u.ID, &u.Name, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, rowErr(err)
	}
	return &u, nil
}

func (r *UserRepo) GetProfiles(ctx context.Context, ids []string) (map[string]domain.PublicProfile, error) {
	profiles := make(map[string]domain.PublicProfile, len(ids))
	if len(ids) == 0 {
		return profiles, nil
	}

	rows, err := r.db.Query(ctx, `SELECT id, name, username FROM users WHERE id = ANY($1);`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	found, err := rows2profiles(rows)
	if err != nil {
		return nil, err
	}
	for _, p := range found {
		profiles[p.ID] = p
	}
	return profiles, nil
}

func (r *UserRepo) Search(ctx context.Context, query, excludeID string, limit int) ([]domain.PublicProfile, error) {
	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, name, username
			FROM users
			WHERE id <> $1
				AND (name ILIKE $2 OR username ILIKE $2 OR email ILIKE $2)
			ORDER BY username
			LIMIT $3;`,
		excludeID, "%"+escapeLike(query)+"%", limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return rows2profiles(rows)
}

func rows2profiles(rows pgx.Rows) ([]domain.PublicProfile, error) {
	profiles := make([]domain.PublicProfile, 0)
	for rows.Next() {
		var p domain.PublicProfile
		if err := rows.Scan(&p.ID, &p.Name, &p.Username); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}
