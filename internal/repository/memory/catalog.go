package memory

import (
	"alcyxob/gymbuddy/internal/domain"
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
)

type catalogRow struct {
	domain.AvailableExercise
}

type catalogRepository struct {
	db *db
}

func catalogKey(e *domain.AvailableExercise) string {
	return strings.ToLower(e.MainMuscleGroup) + "\x00" + strings.ToLower(e.Name)
}

func (r *catalogRepository) ListByMuscleGroup(_ context.Context, muscleGroup string) ([]domain.AvailableExercise, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	found := make([]domain.AvailableExercise, 0)
	for _, row := range r.db.catalog {
		if row.MainMuscleGroup == muscleGroup {
			found = append(found, row.AvailableExercise)
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].Name < found[j].Name })
	return found, nil
}

func (r *catalogRepository) ListMuscleGroups(_ context.Context) ([]string, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	seen := make(map[string]struct{})
	groups := make([]string, 0)
	for _, row := range r.db.catalog {
		if _, ok := seen[row.MainMuscleGroup]; ok {
			continue
		}
		seen[row.MainMuscleGroup] = struct{}{}
		groups = append(groups, row.MainMuscleGroup)
	}
	sort.Strings(groups)
	return groups, nil
}

func (r *catalogRepository) Upsert(_ context.Context, exercises []domain.AvailableExercise) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i := range exercises {
		key := catalogKey(&exercises[i])
		if existing, ok := r.db.catalog[key]; ok {
			exercises[i].ID = existing.ID
		} else if exercises[i].ID == "" {
			exercises[i].ID = uuid.NewString()
		}
		r.db.catalog[key] = &catalogRow{AvailableExercise: exercises[i]}
	}
	return len(exercises), nil
}
