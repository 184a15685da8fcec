package memory

import (
	"alcyxob/gymbuddy/internal/domain"
	"context"
	"sort"

	"github.com/google/uuid"
)

type setRow struct {
	domain.ExerciseSet
	seq int64
}

type setRepository struct {
	db *db
}

// find must be called with mu held.
func (r *setRepository) find(exerciseID string, setNumber int) *setRow {
	for _, row := range r.db.sets {
		if row.ExerciseID == exerciseID && row.SetNumber == setNumber {
			return row
		}
	}
	return nil
}

func (r *setRepository) CreateMany(_ context.Context, sets []domain.ExerciseSet) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i := range sets {
		if sets[i].ID == "" {
			sets[i].ID = uuid.NewString()
		}
		if existing := r.find(sets[i].ExerciseID, sets[i].SetNumber); existing != nil {
			delete(r.db.sets, existing.ID)
		}
		r.db.sets[sets[i].ID] = &setRow{ExerciseSet: sets[i], seq: r.db.nextSeq()}
	}
	return nil
}

func (r *setRepository) Upsert(_ context.Context, set *domain.ExerciseSet) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if existing := r.find(set.ExerciseID, set.SetNumber); existing != nil {
		set.ID = existing.ID
		existing.Weight = set.Weight
		existing.Reps = set.Reps
		existing.Completed = set.Completed
		return nil
	}
	if set.ID == "" {
		set.ID = uuid.NewString()
	}
	r.db.sets[set.ID] = &setRow{ExerciseSet: *set, seq: r.db.nextSeq()}
	return nil
}

func (r *setRepository) ListByExercises(_ context.Context, exerciseIDs ...string) ([]domain.ExerciseSet, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	ids := toSet(exerciseIDs)
	rows := make([]*setRow, 0)
	for _, row := range r.db.sets {
		if _, ok := ids[row.ExerciseID]; ok {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].ExerciseID != rows[j].ExerciseID {
			return rows[i].ExerciseID < rows[j].ExerciseID
		}
		return rows[i].SetNumber < rows[j].SetNumber
	})

	sets := make([]domain.ExerciseSet, len(rows))
	for i, row := range rows {
		sets[i] = row.ExerciseSet
	}
	return sets, nil
}

func (r *setRepository) DeleteByExercises(_ context.Context, exerciseIDs ...string) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	ids := toSet(exerciseIDs)
	var deleted int64
	for id, row := range r.db.sets {
		if _, ok := ids[row.ExerciseID]; ok {
			delete(r.db.sets, id)
			deleted++
		}
	}
	return deleted, nil
}
