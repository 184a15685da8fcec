package service

import (
	"alcyxob/gymbuddy/internal/domain"
	"alcyxob/gymbuddy/internal/repository"
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartnerService_SendInvite(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	alice := newTestUser(t, store)
	bob := newTestUser(t, store)
	svc := newTestPartnerService(store)

	link, err := svc.SendInvite(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, link.ID)
	assert.Equal(t, alice.ID, link.RequesterID)
	assert.Equal(t, bob.ID, link.TargetID)
	assert.Equal(t, domain.PartnerPending, link.Status)

	// one link per pair, whichever direction
	_, err = svc.SendInvite(ctx, alice.ID, bob.ID)
	assert.True(t, errors.Is(err, ErrConflict))
	assert.True(t, errors.Is(err, ErrPartnershipExists))
	_, err = svc.SendInvite(ctx, bob.ID, alice.ID)
	assert.True(t, errors.Is(err, ErrPartnershipExists))

	links, err := store.Partners.FindBetween(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Len(t, links, 1)
}

func TestPartnerService_SendInvite_Errors(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	alice := newTestUser(t, store)
	svc := newTestPartnerService(store)

	_, err := svc.SendInvite(ctx, "", alice.ID)
	assert.True(t, errors.Is(err, ErrUnauthenticated))
	_, err = svc.SendInvite(ctx, alice.ID, alice.ID)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	_, err = svc.SendInvite(ctx, alice.ID, "nobody")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestPartnerService_SendInvite_StoreDuplicate(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	alice := newTestUser(t, store)
	bob := newTestUser(t, store)

	// a concurrent request already wrote the link; the unique index rejects ours
	existing := &domain.PartnerLink{RequesterID: alice.ID, TargetID: bob.ID, Status: domain.PartnerPending}
	require.NoError(t, store.Partners.Create(ctx, existing))
	err := store.Partners.Create(ctx, &domain.PartnerLink{RequesterID: alice.ID, TargetID: bob.ID})
	require.Error(t, err)

	_, err = newTestPartnerService(store).SendInvite(ctx, alice.ID, bob.ID)
	assert.True(t, errors.Is(err, ErrConflict))
}

func TestPartnerService_RespondToInvite(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	alice := newTestUser(t, store)
	bob := newTestUser(t, store)
	carol := newTestUser(t, store)
	svc := newTestPartnerService(store)

	link, err := svc.SendInvite(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	// only the target may answer
	_, err = svc.RespondToInvite(ctx, alice.ID, link.ID, domain.PartnerAccepted)
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = svc.RespondToInvite(ctx, carol.ID, link.ID, domain.PartnerAccepted)
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = svc.RespondToInvite(ctx, bob.ID, link.ID, domain.PartnerPending)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	_, err = svc.RespondToInvite(ctx, bob.ID, link.ID, "maybe")
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	accepted, err := svc.RespondToInvite(ctx, bob.ID, link.ID, domain.PartnerAccepted)
	require.NoError(t, err)
	assert.Equal(t, domain.PartnerAccepted, accepted.Status)

	stored, err := store.Partners.GetByID(ctx, link.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PartnerAccepted, stored.Status)

	_, err = svc.RespondToInvite(ctx, bob.ID, link.ID, domain.PartnerRejected)
	assert.True(t, errors.Is(err, ErrConflict))

	_, err = svc.RespondToInvite(ctx, bob.ID, "missing", domain.PartnerAccepted)
	assert.True(t, errors.Is(err, ErrNotFound))
}

// barrierPartners holds the first `parties` GetByID calls until all of them
// have read the link, so every caller sees the same pending snapshot.
type barrierPartners struct {
	repository.PartnerRepository
	mu      sync.Mutex
	calls   int
	parties int
	ready   sync.WaitGroup
}

func newBarrierPartners(next repository.PartnerRepository, parties int) *barrierPartners {
	b := &barrierPartners{PartnerRepository: next, parties: parties}
	b.ready.Add(parties)
	return b
}

func (b *barrierPartners) GetByID(ctx context.Context, id string) (*domain.PartnerLink, error) {
	link, err := b.PartnerRepository.GetByID(ctx, id)
	b.mu.Lock()
	b.calls++
	held := b.calls <= b.parties
	b.mu.Unlock()
	if held {
		b.ready.Done()
		b.ready.Wait()
	}
	return link, err
}

func TestPartnerService_RespondToInvite_ConcurrentAnswers(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	alice := newTestUser(t, store)
	bob := newTestUser(t, store)

	link, err := newTestPartnerService(store).SendInvite(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	store.Partners = newBarrierPartners(store.Partners, 2)
	svc := newTestPartnerService(store)

	answers := []domain.PartnerStatus{domain.PartnerAccepted, domain.PartnerRejected}
	errs := make([]error, len(answers))
	var wg sync.WaitGroup
	for i, status := range answers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = svc.RespondToInvite(ctx, bob.ID, link.ID, status)
		}()
	}
	wg.Wait()

	var winner domain.PartnerStatus
	succeeded := 0
	for i, err := range errs {
		if err == nil {
			succeeded++
			winner = answers[i]
			continue
		}
		assert.True(t, errors.Is(err, ErrInviteNotPending), "unexpected error: %v", err)
	}
	require.Equal(t, 1, succeeded, "exactly one answer may leave pending")

	stored, err := store.Partners.GetByID(ctx, link.ID)
	require.NoError(t, err)
	assert.Equal(t, winner, stored.Status)
}

// answerOnRead answers (or cancels) the link right after it has been read,
// as another request would between the read and the write.
type answerOnRead struct {
	repository.PartnerRepository
	once  sync.Once
	apply func(ctx context.Context, id string)
}

func (a *answerOnRead) GetByID(ctx context.Context, id string) (*domain.PartnerLink, error) {
	link, err := a.PartnerRepository.GetByID(ctx, id)
	a.once.Do(func() { a.apply(ctx, id) })
	return link, err
}

func TestPartnerService_RespondToInvite_StaleRead(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	alice := newTestUser(t, store)
	bob := newTestUser(t, store)
	carol := newTestUser(t, store)

	answered, err := newTestPartnerService(store).SendInvite(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	cancelled, err := newTestPartnerService(store).SendInvite(ctx, carol.ID, bob.ID)
	require.NoError(t, err)

	base := store.Partners
	store.Partners = &answerOnRead{PartnerRepository: base, apply: func(ctx context.Context, id string) {
		_, err := base.UpdateStatus(ctx, id, domain.PartnerPending, domain.PartnerAccepted)
		require.NoError(t, err)
	}}
	_, err = newTestPartnerService(store).RespondToInvite(ctx, bob.ID, answered.ID, domain.PartnerRejected)
	assert.True(t, errors.Is(err, ErrInviteNotPending))

	stored, err := base.GetByID(ctx, answered.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PartnerAccepted, stored.Status, "terminal status must not be overwritten")

	store.Partners = &answerOnRead{PartnerRepository: base, apply: func(ctx context.Context, id string) {
		_, err := base.Delete(ctx, id)
		require.NoError(t, err)
	}}
	_, err = newTestPartnerService(store).RespondToInvite(ctx, bob.ID, cancelled.ID, domain.PartnerAccepted)
	assert.True(t, errors.Is(err, ErrInviteNotFound))
}

func TestPartnerService_RejectThenNoPartnerStats(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	alice := newTestUser(t, store)
	bob := newTestUser(t, store)
	svc := newTestPartnerService(store)

	link, err := svc.SendInvite(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = svc.RespondToInvite(ctx, bob.ID, link.ID, domain.PartnerRejected)
	require.NoError(t, err)

	stats, err := newTestProgressService(store).ComputeStats(ctx, alice.ID)
	require.NoError(t, err)
	assert.Nil(t, stats.Partner)

	// a rejected link still blocks a new invite until it is cancelled
	_, err = svc.SendInvite(ctx, bob.ID, alice.ID)
	assert.True(t, errors.Is(err, ErrConflict))
	require.NoError(t, svc.CancelInvite(ctx, alice.ID, link.ID))
	_, err = svc.SendInvite(ctx, bob.ID, alice.ID)
	assert.NoError(t, err)
}

func TestPartnerService_CancelInvite(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	alice := newTestUser(t, store)
	bob := newTestUser(t, store)
	carol := newTestUser(t, store)
	svc := newTestPartnerService(store)

	link := acceptedPartners(t, svc, alice.ID, bob.ID)

	err := svc.CancelInvite(ctx, carol.ID, link.ID)
	assert.True(t, errors.Is(err, ErrNotFound))

	// cancelling an accepted link dissolves the partnership, from either side
	require.NoError(t, svc.CancelInvite(ctx, bob.ID, link.ID))
	accepted, err := store.Partners.ListAccepted(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, accepted)

	err = svc.CancelInvite(ctx, alice.ID, link.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestPartnerService_ListPartners(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	alice := newTestUser(t, store)
	bob := newTestUser(t, store)
	carol := newTestUser(t, store)
	svc := newTestPartnerService(store)

	sent, err := svc.SendInvite(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	received, err := svc.SendInvite(ctx, carol.ID, alice.ID)
	require.NoError(t, err)

	partners, err := svc.ListPartners(ctx, alice.ID)
	require.NoError(t, err)

	require.Len(t, partners.Sent, 1)
	assert.Equal(t, sent.ID, partners.Sent[0].ID)
	assert.Equal(t, bob.Profile(), partners.Sent[0].Counterpart)

	require.Len(t, partners.Received, 1)
	assert.Equal(t, received.ID, partners.Received[0].ID)
	assert.Equal(t, carol.Profile(), partners.Received[0].Counterpart)

	bobsView, err := svc.ListPartners(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, bobsView.Sent)
	require.Len(t, bobsView.Received, 1)
	assert.Equal(t, alice.Profile(), bobsView.Received[0].Counterpart)
}

func TestPartnerService_SearchUsers(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	svc := newTestPartnerService(store)

	me := &domain.User{Name: "Sam Lifter", Username: "samlift", Email: "sam@gym.test"}
	require.NoError(t, store.Users.Create(ctx, me))
	for i := 0; i < 12; i++ {
		u := &domain.User{Name: fmt.Sprintf("Lifter %02d", i), Username: fmt.Sprintf("lifter%02d", i), Email: fmt.Sprintf("l%02d@gym.test", i)}
		require.NoError(t, store.Users.Create(ctx, u))
	}
	runner := &domain.User{Name: "Rita Runner", Username: "rita", Email: "rita@track.test"}
	require.NoError(t, store.Users.Create(ctx, runner))

	found, err := svc.SearchUsers(ctx, me.ID, "LIFTER")
	require.NoError(t, err)
	assert.Len(t, found, userSearchLimit)
	for _, p := range found {
		assert.NotEqual(t, me.ID, p.ID)
	}

	found, err = svc.SearchUsers(ctx, me.ID, "track.test")
	require.NoError(t, err)
	assert.Equal(t, []domain.PublicProfile{runner.Profile()}, found)

	found, err = svc.SearchUsers(ctx, me.ID, "   ")
	require.NoError(t, err)
	assert.Empty(t, found)

	_, err = svc.SearchUsers(ctx, "", "rita")
	assert.True(t, errors.Is(err, ErrUnauthenticated))
}

func TestPartnerService_GetPartnerWeek(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	alice := newTestUser(t, store)
	bob := newTestUser(t, store)
	svc := newTestPartnerService(store)
	workouts := newTestWorkoutService(store, NewRandomSource(21))

	_, err := svc.GetPartnerWeek(ctx, alice.ID, bob.ID)
	assert.True(t, errors.Is(err, ErrNotFound), "not partners yet")

	pending, err := svc.SendInvite(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = svc.GetPartnerWeek(ctx, alice.ID, bob.ID)
	assert.True(t, errors.Is(err, ErrNotPartners), "pending is not enough")

	_, err = svc.RespondToInvite(ctx, bob.ID, pending.ID, domain.PartnerAccepted)
	require.NoError(t, err)
	_, err = svc.GetPartnerWeek(ctx, alice.ID, bob.ID)
	assert.True(t, errors.Is(err, ErrWeekNotFound))

	source := generate(t, workouts, bob.ID)
	day, err := workouts.AddToWeek(ctx, bob.ID, source.ID)
	require.NoError(t, err)

	week, err := svc.GetPartnerWeek(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, *day.WeeklyWorkoutID, week.ID)
	assert.Equal(t, bob.ID, week.OwnerID)
	require.Len(t, week.Workouts, 1)
	assert.Equal(t, day.ID, week.Workouts[0].ID)
	assert.Len(t, week.Workouts[0].Exercises, len(day.Exercises))
}
