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

type PartnerRepo struct {
	db *pgxpool.Pool
}

func NewPartnerRepo(db *pgxpool.Pool) *PartnerRepo {
	return &PartnerRepo{
		db: db,
	}
}

var _ repository.PartnerRepository = (*PartnerRepo)(nil)

const partnerColumns = `id, requester_id, target_id, status, created_at, updated_at`

func (r *PartnerRepo) Create(ctx context.Context, link *domain.PartnerLink) error {
	if link.ID == "" {
		link.ID = uuid.NewString()
	}
	if link.Status == "" {
		link.Status = domain.PartnerPending
	}
	now := time.Now().UTC()
	link.CreatedAt = now
	link.UpdatedAt = now

	_, err := r.db.Exec(
		ctx,
		`INSERT INTO workout_partners (`+partnerColumns+`) VALUES ($1, $2, $3, $4, $5, $6);`,
		link.ID, link.RequesterID, link.TargetID, string(link.Status), link.CreatedAt, link.UpdatedAt,
	)
	return writeErr(err)
}

func (r *PartnerRepo) GetByID(ctx context.Context, id string) (*domain.PartnerLink, error) {
	links, err := r.list(ctx, `WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return nil, repository.ErrNotFound
	}
	return &links[0], nil
}

func (r *PartnerRepo) FindBetween(ctx context.Context, a, b string) ([]domain.PartnerLink, error) {
	return r.list(ctx, `WHERE (requester_id = $1 AND target_id = $2) OR (requester_id = $2 AND target_id = $1)`, a, b)
}

func (r *PartnerRepo) ListByRequester(ctx context.Context, requesterID string) ([]domain.PartnerLink, error) {
	return r.list(ctx, `WHERE requester_id = $1`, requesterID)
}

func (r *PartnerRepo) ListByTarget(ctx context.Context, targetID string) ([]domain.PartnerLink, error) {
	return r.list(ctx, `WHERE target_id = $1`, targetID)
}

func (r *PartnerRepo) ListAccepted(ctx context.Context, userID string) ([]domain.PartnerLink, error) {
	return r.list(ctx, `WHERE status = 'accepted' AND (requester_id = $1 OR target_id = $1)`, userID)
}

func (r *PartnerRepo) list(ctx context.Context, where string, args ...any) ([]domain.PartnerLink, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT `+partnerColumns+` FROM workout_partners `+where+` ORDER BY created_at, id;`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return rows2links(rows)
}

func (r *PartnerRepo) UpdateStatus(ctx context.Context, id string, from, to domain.PartnerStatus) (int64, error) {
	tag, err := r.db.Exec(
		ctx,
		`UPDATE workout_partners SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4;`,
		string(to), time.Now().UTC(), id, string(from),
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *PartnerRepo) Delete(ctx context.Context, id string) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM workout_partners WHERE id = $1;`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func rows2links(rows pgx.Rows) ([]domain.PartnerLink, error) {
	links := make([]domain.PartnerLink, 0)
	for rows.Next() {
		var (
			l      domain.PartnerLink
			status string
		)
		if err := rows.Scan(&l.ID, &l.RequesterID, &l.TargetID, &status, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		l.Status = domain.PartnerStatus(status)
		links = append(links, l)
	}
	return links, rows.Err()
}
