package memory

import (
	"alcyxob/gymbuddy/internal/domain"
	"alcyxob/gymbuddy/internal/repository"
	"context"
	"time"

	"github.com/google/uuid"
)

type weekRow struct {
	domain.WeeklyWorkout
}

type weekRepository struct {
	db *db
}

func (r *weekRepository) Create(_ context.Context, week *domain.WeeklyWorkout) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, row := range r.db.weeks {
		if row.OwnerID == week.OwnerID && row.WeekStartDate.Equal(week.WeekStartDate) {
			return repository.ErrDuplicate
		}
	}
	if week.ID == "" {
		week.ID = uuid.NewString()
	}
	if week.Status == "" {
		week.Status = domain.WeeklyInProgress
	}
	week.CreatedAt = time.Now().UTC()
	row := &weekRow{WeeklyWorkout: *week}
	row.Workouts = nil
	r.db.weeks[week.ID] = row
	return nil
}

func (r *weekRepository) GetByID(_ context.Context, id string) (*domain.WeeklyWorkout, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	row, ok := r.db.weeks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	w := row.WeeklyWorkout
	return &w, nil
}

func (r *weekRepository) GetForWeek(_ context.Context, ownerID string, weekStart time.Time) (*domain.WeeklyWorkout, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, row := range r.db.weeks {
		if row.OwnerID == ownerID && row.WeekStartDate.Equal(weekStart) {
			w := row.WeeklyWorkout
			return &w, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *weekRepository) Latest(_ context.Context, ownerID string) (*domain.WeeklyWorkout, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var latest *weekRow
	for _, row := range r.db.weeks {
		if row.OwnerID != ownerID {
			continue
		}
		if latest == nil || row.WeekStartDate.After(latest.WeekStartDate) {
			latest = row
		}
	}
	if latest == nil {
		return nil, repository.ErrNotFound
	}
	w := latest.WeeklyWorkout
	return &w, nil
}

func (r *weekRepository) UpdateStatus(_ context.Context, id string, status domain.WeeklyStatus) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	row, ok := r.db.weeks[id]
	if !ok {
		return 0, nil
	}
	row.Status = status
	return 1, nil
}
