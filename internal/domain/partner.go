package domain

import (
	"time"
)

// PartnerStatus type for the partner invite lifecycle
type PartnerStatus string

const (
	PartnerPending  PartnerStatus = "pending"  // Invite sent, waiting for the target
	PartnerAccepted PartnerStatus = "accepted" // Target accepted, partners can compare progress
	PartnerRejected PartnerStatus = "rejected" // Target declined
)

// Valid reports whether s is one of the known statuses.
func (s PartnerStatus) Valid() bool {
	switch s {
	case PartnerPending, PartnerAccepted, PartnerRejected:
		return true
	}
	return false
}

// PartnerLink connects a requester with a target user. At most one link may
// exist per unordered pair of users.
type PartnerLink struct {
	ID          string        `bson:"_id" json:"id"`
	RequesterID string        `bson:"requesterId" json:"requesterId"`
	TargetID    string        `bson:"targetId" json:"targetId"`
	Status      PartnerStatus `bson:"status" json:"status"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// Involves reports whether userID is either side of the link.
func (l *PartnerLink) Involves(userID string) bool {
	return l.RequesterID == userID || l.TargetID == userID
}

// Counterpart returns the id of the other side of the link, as seen by userID.
func (l *PartnerLink) Counterpart(userID string) string {
	if l.RequesterID == userID {
		return l.TargetID
	}
	return l.RequesterID
}

// PartnerLinkView is a link joined with the public profile of the other user.
type PartnerLinkView struct {
	PartnerLink
	Counterpart PublicProfile `json:"counterpart"`
}

// Partners groups the links a user has sent and received.
type Partners struct {
	Sent     []PartnerLinkView `json:"sent"`
	Received []PartnerLinkView `json:"received"`
}
