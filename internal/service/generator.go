package service

import (
	"alcyxob/gymbuddy/internal/domain"
	"fmt"
	"strings"
	"time"
)

const (
	exercisesPerBodyPart = 2

	minTargetSets  = 3 // TargetSets is drawn from [3, 4]
	targetSetsSpan = 2
	repsLowMin     = 8 // low end of the rep range, drawn from [8, 11]
	repsHighMin    = 10
	repsSpan       = 4 // high end of the rep range, drawn from [10, 13]
)

// dedupBodyParts trims the parts, drops empty ones and keeps the first
// occurrence of each, preserving order.
func dedupBodyParts(parts []string) []string {
	seen := make(map[string]struct{}, len(parts))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// workoutTitle is e.g. "Chest/Back (3/4/25)".
func workoutTitle(parts []string, at time.Time) string {
	return strings.Join(parts, "/") + " (" + at.Format("1/2/06") + ")"
}

// pickExercises draws min(n, len(candidates)) distinct candidates uniformly
// at random with a partial Fisher-Yates shuffle. candidates is not modified.
func pickExercises(rnd RandomSource, candidates []domain.AvailableExercise, n int) []domain.AvailableExercise {
	pool := make([]domain.AvailableExercise, len(candidates))
	copy(pool, candidates)
	if n > len(pool) {
		n = len(pool)
	}
	for i := 0; i < n; i++ {
		j := i + rnd.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}

// planExercise turns a catalog entry into an unsaved workout exercise with
// randomized targets.
func planExercise(rnd RandomSource, available domain.AvailableExercise, bodyPart string) domain.Exercise {
	low := repsLowMin + rnd.IntN(repsSpan)
	high := repsHighMin + rnd.IntN(repsSpan)
	return domain.Exercise{
		Name:       available.Name,
		BodyPart:   bodyPart,
		TargetSets: minTargetSets + rnd.IntN(targetSetsSpan),
		// low may exceed high, e.g. "11-10"; the range is kept as drawn.
		TargetReps: fmt.Sprintf("%d-%d", low, high),
		Notes:      available.EquipmentNotes(),
	}
}

// emptySets returns sets 1..n of an exercise with zero weight and reps.
func emptySets(exerciseID string, n int) []domain.ExerciseSet {
	sets := make([]domain.ExerciseSet, n)
	for i := range sets {
		sets[i] = domain.ExerciseSet{ExerciseID: exerciseID, SetNumber: i + 1}
	}
	return sets
}
