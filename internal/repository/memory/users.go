package memory

import (
	"alcyxob/gymbuddy/internal/domain"
	"alcyxob/gymbuddy/internal/repository"
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

type userRow struct {
	domain.User
}

type userRepository struct {
	db *db
}

func (r *userRepository) Create(_ context.Context, user *domain.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, u := range r.db.users {
		if strings.EqualFold(u.Email, user.Email) || strings.EqualFold(u.Username, user.Username) {
			return repository.ErrDuplicate
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.db.users[user.ID] = &userRow{User: *user}
	return nil
}

func (r *userRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	row, ok := r.db.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := row.User
	return &u, nil
}

func (r *userRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, row := range r.db.users {
		if strings.EqualFold(row.Email, email) {
			u := row.User
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepository) GetProfiles(_ context.Context, ids []string) (map[string]domain.PublicProfile, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	profiles := make(map[string]domain.PublicProfile, len(ids))
	for _, id := range ids {
		if row, ok := r.db.users[id]; ok {
			profiles[id] = row.Profile()
		}
	}
	return profiles, nil
}

func (r *userRepository) Search(_ context.Context, query, excludeID string, limit int) ([]domain.PublicProfile, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	q := strings.ToLower(query)
	var found []domain.PublicProfile
	for _, row := range r.db.users {
		if row.ID == excludeID {
			continue
		}
		if strings.Contains(strings.ToLower(row.Name), q) ||
			strings.Contains(strings.ToLower(row.Username), q) ||
			strings.Contains(strings.ToLower(row.Email), q) {
			found = append(found, row.Profile())
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].Username < found[j].Username })
	if limit > 0 && len(found) > limit {
		found = found[:limit]
	}
	return found, nil
}
