package service

import (
	"alcyxob/gymbuddy/internal/domain"
	"alcyxob/gymbuddy/internal/metrics"
	"alcyxob/gymbuddy/internal/repository"
	"alcyxob/gymbuddy/internal/repository/memory"
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// Wednesday; with Sunday weeks the current week starts on 2025-03-02.
var testNow = time.Date(2025, time.March, 5, 10, 30, 0, 0, time.UTC)

var testWeekStart = time.Date(2025, time.March, 2, 0, 0, 0, 0, time.UTC)

// scriptedRand returns its values in order (modulo n), then zeros.
type scriptedRand struct {
	values []int
}

func (r *scriptedRand) IntN(n int) int {
	if len(r.values) == 0 {
		return 0
	}
	v := r.values[0]
	r.values = r.values[1:]
	return v % n
}

func strPtr(s string) *string { return &s }

func testCatalog() []domain.AvailableExercise {
	return []domain.AvailableExercise{
		{Name: "Bench Press", MainMuscleGroup: "Chest", PrimaryEquipment: "Barbell", GripStyle: strPtr("Overhand")},
		{Name: "Incline Dumbbell Press", MainMuscleGroup: "Chest", PrimaryEquipment: "Dumbbell"},
		{Name: "Cable Fly", MainMuscleGroup: "Chest", PrimaryEquipment: "Cable"},
		{Name: "Pull Up", MainMuscleGroup: "Back", PrimaryEquipment: "Bodyweight", GripStyle: strPtr("Overhand")},
		{Name: "Barbell Row", MainMuscleGroup: "Back", PrimaryEquipment: "Barbell", GripStyle: strPtr("Underhand")},
		{Name: "Lat Pulldown", MainMuscleGroup: "Back", PrimaryEquipment: "Cable"},
		{Name: "Plank", MainMuscleGroup: "Core", PrimaryEquipment: "Bodyweight"},
	}
}

func newTestStore(t *testing.T) repository.Store {
	t.Helper()
	store := memory.NewStore()
	_, err := store.Catalog.Upsert(context.Background(), testCatalog())
	require.NoError(t, err)
	return store
}

func newTestUser(t *testing.T, store repository.Store) *domain.User {
	t.Helper()
	user := &domain.User{
		Name:     gofakeit.Name(),
		Username: gofakeit.Username() + gofakeit.DigitN(6),
		Email:    gofakeit.DigitN(6) + gofakeit.Email(),
	}
	require.NoError(t, store.Users.Create(context.Background(), user))
	return user
}

func newTestWorkoutService(store repository.Store, rnd RandomSource) *workoutService {
	svc := NewWorkoutService(store, rnd, Calendar{}, metrics.NewTestManager()).(*workoutService)
	svc.now = func() time.Time { return testNow }
	return svc
}

func newTestProgressService(store repository.Store) *progressService {
	svc := NewProgressService(store, Calendar{}, metrics.NewTestManager()).(*progressService)
	svc.now = func() time.Time { return testNow }
	return svc
}

func newTestPartnerService(store repository.Store) PartnerService {
	return NewPartnerService(store, metrics.NewTestManager())
}

// generate creates a Chest/Back medium workout for ownerID.
func generate(t *testing.T, svc WorkoutService, ownerID string) *domain.DailyWorkout {
	t.Helper()
	w, err := svc.Generate(context.Background(), ownerID, GenerateRequest{
		DurationMinutes: 45,
		Difficulty:      domain.DifficultyMedium,
		BodyParts:       []string{"Chest", "Back"},
	})
	require.NoError(t, err)
	return w
}

// acceptedPartners links a and b with an accepted invite sent by a.
func acceptedPartners(t *testing.T, svc PartnerService, a, b string) *domain.PartnerLink {
	t.Helper()
	ctx := context.Background()
	link, err := svc.SendInvite(ctx, a, b)
	require.NoError(t, err)
	link, err = svc.RespondToInvite(ctx, b, link.ID, domain.PartnerAccepted)
	require.NoError(t, err)
	return link
}
