package service

import (
	"alcyxob/gymbuddy/internal/domain"
	"alcyxob/gymbuddy/internal/metrics"
	"alcyxob/gymbuddy/internal/repository"
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
)

const userSearchLimit = 10

// --- Error Definitions ---
var (
	ErrPartnershipExists = kindError(ErrConflict, "a partnership already exists with this user")
	ErrInviteExists      = kindError(ErrConflict, "invite already exists")
	ErrInviteNotPending  = kindError(ErrConflict, "invite has already been answered")
	ErrSelfInvite        = kindError(ErrInvalidArgument, "cannot invite yourself")
	ErrInvalidResponse   = kindError(ErrInvalidArgument, "response must be accepted or rejected")
	ErrUserNotFound      = kindError(ErrNotFound, "user not found")
	ErrInviteNotFound    = kindError(ErrNotFound, "invite not found")
	ErrNotPartners       = kindError(ErrNotFound, "no accepted partnership with this user")
	ErrWeekNotFound      = kindError(ErrNotFound, "no weekly workout yet")
)

// --- Service Interface ---
type PartnerService interface {
	SendInvite(ctx context.Context, callerID, targetID string) (*domain.PartnerLink, error)
	// RespondToInvite lets the target of a pending invite accept or reject it.
	RespondToInvite(ctx context.Context, callerID, linkID string, status domain.PartnerStatus) (*domain.PartnerLink, error)
	// CancelInvite deletes a link in any state, dissolving an accepted partnership.
	CancelInvite(ctx context.Context, callerID, linkID string) error
	ListPartners(ctx context.Context, callerID string) (*domain.Partners, error)
	SearchUsers(ctx context.Context, callerID, query string) ([]domain.PublicProfile, error)
	GetPartnerWeek(ctx context.Context, callerID, partnerID string) (*domain.WeeklyWorkout, error)
}

// --- Service Implementation ---

type partnerService struct {
	store   repository.Store
	metrics *metrics.Manager
}

// NewPartnerService creates a new instance of partnerService.
func NewPartnerService(store repository.Store, metricsManager *metrics.Manager) PartnerService {
	return &partnerService{
		store:   store,
		metrics: metricsManager,
	}
}

// === Invites ===

func (s *partnerService) SendInvite(ctx context.Context, callerID, targetID string) (*domain.PartnerLink, error) {
	// 1. Validate
	if callerID == "" {
		return nil, ErrNoCaller
	}
	if targetID == "" || targetID == callerID {
		return nil, ErrSelfInvite
	}
	if _, err := s.store.Users.GetByID(ctx, targetID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get target user: %w", err)
	}

	// 2. At most one link per pair of users, whoever sent it
	existing, err := s.store.Partners.FindBetween(ctx, callerID, targetID)
	if err != nil {
		return nil, fmt.Errorf("find existing partnership: %w", err)
	}
	if len(existing) > 0 {
		return nil, ErrPartnershipExists
	}

	// 3. Create. The store's unique index still catches a concurrent duplicate.
	link := &domain.PartnerLink{RequesterID: callerID, TargetID: targetID, Status: domain.PartnerPending}
	if err := s.store.Partners.Create(ctx, link); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrInviteExists
		}
		return nil, fmt.Errorf("create invite: %w", err)
	}
	s.metrics.CounterInvitesSent.Inc()
	log.Debugf("user %s invited %s (%s)", callerID, targetID, link.ID)
	return link, nil
}

func (s *partnerService) RespondToInvite(ctx context.Context, callerID, linkID string, status domain.PartnerStatus) (*domain.PartnerLink, error) {
	if callerID == "" {
		return nil, ErrNoCaller
	}
	if status != domain.PartnerAccepted && status != domain.PartnerRejected {
		return nil, ErrInvalidResponse
	}

	link, err := s.getLink(ctx, linkID)
	if err != nil {
		return nil, err
	}
	// Only the target may answer; everyone else does not see the invite.
	if link.TargetID != callerID {
		return nil, ErrInviteNotFound
	}
	if link.Status != domain.PartnerPending {
		return nil, ErrInviteNotPending
	}

	// The write only applies while the link is still pending, so of two
	// concurrent answers exactly one wins.
	n, err := s.store.Partners.UpdateStatus(ctx, linkID, domain.PartnerPending, status)
	if err != nil {
		return nil, fmt.Errorf("update invite: %w", err)
	}
	if n == 0 {
		// Answered or cancelled since it was read
		if _, err := s.getLink(ctx, linkID); err != nil {
			return nil, err
		}
		return nil, ErrInviteNotPending
	}
	link.Status = status
	return link, nil
}

func (s *partnerService) CancelInvite(ctx context.Context, callerID, linkID string) error {
	if callerID == "" {
		return ErrNoCaller
	}
	link, err := s.getLink(ctx, linkID)
	if err != nil {
		return err
	}
	if !link.Involves(callerID) {
		return ErrInviteNotFound
	}
	if _, err := s.store.Partners.Delete(ctx, linkID); err != nil {
		return fmt.Errorf("delete invite: %w", err)
	}
	return nil
}

func (s *partnerService) getLink(ctx context.Context, linkID string) (*domain.PartnerLink, error) {
	link, err := s.store.Partners.GetByID(ctx, linkID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, fmt.Errorf("get invite: %w", err)
	}
	return link, nil
}

// === Listing ===

// ListPartners returns the links the caller sent and received, each joined
// with the other user's public profile.
func (s *partnerService) ListPartners(ctx context.Context, callerID string) (*domain.Partners, error) {
	if callerID == "" {
		return nil, ErrNoCaller
	}

	sent, err := s.store.Partners.ListByRequester(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("list sent invites: %w", err)
	}
	received, err := s.store.Partners.ListByTarget(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("list received invites: %w", err)
	}

	ids := make([]string, 0, len(sent)+len(received))
	for _, l := range sent {
		ids = append(ids, l.TargetID)
	}
	for _, l := range received {
		ids = append(ids, l.RequesterID)
	}
	profiles, err := s.store.Users.GetProfiles(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get partner profiles: %w", err)
	}

	return &domain.Partners{
		Sent:     joinProfiles(callerID, sent, profiles),
		Received: joinProfiles(callerID, received, profiles),
	}, nil
}

func joinProfiles(callerID string, links []domain.PartnerLink, profiles map[string]domain.PublicProfile) []domain.PartnerLinkView {
	views := make([]domain.PartnerLinkView, len(links))
	for i, l := range links {
		other := l.Counterpart(callerID)
		profile, ok := profiles[other]
		if !ok {
			profile = domain.PublicProfile{ID: other}
		}
		views[i] = domain.PartnerLinkView{PartnerLink: l, Counterpart: profile}
	}
	return views
}

// SearchUsers finds other users to invite by name, username or email.
func (s *partnerService) SearchUsers(ctx context.Context, callerID, query string) ([]domain.PublicProfile, error) {
	if callerID == "" {
		return nil, ErrNoCaller
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.PublicProfile{}, nil
	}
	users, err := s.store.Users.Search(ctx, query, callerID, userSearchLimit)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	return users, nil
}

// GetPartnerWeek returns the partner's most recent weekly workout with its
// days, exercises and sets. The two users must be accepted partners.
func (s *partnerService) GetPartnerWeek(ctx context.Context, callerID, partnerID string) (*domain.WeeklyWorkout, error) {
	if callerID == "" {
		return nil, ErrNoCaller
	}

	links, err := s.store.Partners.FindBetween(ctx, callerID, partnerID)
	if err != nil {
		return nil, fmt.Errorf("find partnership: %w", err)
	}
	accepted := false
	for _, l := range links {
		if l.Status == domain.PartnerAccepted {
			accepted = true
			break
		}
	}
	if !accepted {
		return nil, ErrNotPartners
	}

	week, err := s.store.Weeks.Latest(ctx, partnerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWeekNotFound
		}
		return nil, fmt.Errorf("get weekly workout: %w", err)
	}
	workouts, err := s.store.Workouts.ListByWeeklyWorkout(ctx, week.ID)
	if err != nil {
		return nil, fmt.Errorf("list weekly workouts: %w", err)
	}
	if err := attachDetails(ctx, s.store, workouts); err != nil {
		return nil, err
	}
	week.Workouts = workouts
	return week, nil
}
