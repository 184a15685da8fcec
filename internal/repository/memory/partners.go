package memory

import (
	"alcyxob/gymbuddy/internal/domain"
	"alcyxob/gymbuddy/internal/repository"
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
)

type partnerRow struct {
	domain.PartnerLink
	seq int64
}

type partnerRepository struct {
	db *db
}

func (r *partnerRepository) Create(_ context.Context, link *domain.PartnerLink) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	// unique (requester, target)
	for _, row := range r.db.partners {
		if row.RequesterID == link.RequesterID && row.TargetID == link.TargetID {
			return repository.ErrDuplicate
		}
	}
	if link.ID == "" {
		link.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	link.CreatedAt = now
	link.UpdatedAt = now
	if link.Status == "" {
		link.Status = domain.PartnerPending
	}
	r.db.partners[link.ID] = &partnerRow{PartnerLink: *link, seq: r.db.nextSeq()}
	return nil
}

func (r *partnerRepository) GetByID(_ context.Context, id string) (*domain.PartnerLink, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	row, ok := r.db.partners[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	l := row.PartnerLink
	return &l, nil
}

func (r *partnerRepository) list(match func(*domain.PartnerLink) bool) []domain.PartnerLink {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	rows := make([]*partnerRow, 0)
	for _, row := range r.db.partners {
		if match(&row.PartnerLink) {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })

	links := make([]domain.PartnerLink, len(rows))
	for i, row := range rows {
		links[i] = row.PartnerLink
	}
	return links
}

func (r *partnerRepository) FindBetween(_ context.Context, a, b string) ([]domain.PartnerLink, error) {
	return r.list(func(l *domain.PartnerLink) bool {
		return (l.RequesterID == a && l.TargetID == b) || (l.RequesterID == b && l.TargetID == a)
	}), nil
}

func (r *partnerRepository) ListByRequester(_ context.Context, requesterID string) ([]domain.PartnerLink, error) {
	return r.list(func(l *domain.PartnerLink) bool { return l.RequesterID == requesterID }), nil
}

func (r *partnerRepository) ListByTarget(_ context.Context, targetID string) ([]domain.PartnerLink, error) {
	return r.list(func(l *domain.PartnerLink) bool { return l.TargetID == targetID }), nil
}

func (r *partnerRepository) ListAccepted(_ context.Context, userID string) ([]domain.PartnerLink, error) {
	return r.list(func(l *domain.PartnerLink) bool {
		return l.Status == domain.PartnerAccepted && l.Involves(userID)
	}), nil
}

func (r *partnerRepository) UpdateStatus(_ context.Context, id string, from, to domain.PartnerStatus) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	row, ok := r.db.partners[id]
	if !ok || row.Status != from {
		return 0, nil
	}
	row.Status = to
	row.UpdatedAt = time.Now().UTC()
	return 1, nil
}

func (r *partnerRepository) Delete(_ context.Context, id string) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.partners[id]; !ok {
		return 0, nil
	}
	delete(r.db.partners, id)
	return 1, nil
}
